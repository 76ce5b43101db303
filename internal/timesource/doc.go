// Package timesource converts the wall clock into calendar fields for an IANA timezone.
//
// The clock is a clockwork.Clock so tests can freeze or advance time.
package timesource
