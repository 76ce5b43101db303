// Package scheduler provides the single-threaded tick source that drives the clock.
package scheduler
