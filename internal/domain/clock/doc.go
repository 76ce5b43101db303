// Package clock contains the core domain types of the flip clock.
//
// It defines Settings (timezone, theme, hour format), Alarm entries, the
// per-field Displayed triple and ClockState, the engine-owned snapshot used to
// detect which flip cards changed between ticks. Copy helpers keep callers
// from sharing mutable slices with the stores.
package clock
