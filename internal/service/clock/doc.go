// Package clock implements the flip clock engine.
//
// The Engine owns ClockState and the alarm list. Each Tick reads the time
// source, pushes only the changed cards to the Presenter, redraws the date
// labels and hands the minute to the alarm evaluator. User actions (timezone,
// hour format, theme, alarm add/toggle/remove) mutate the same state and are
// persisted immediately. The engine is not safe for concurrent use: ticks and
// user actions must come from one goroutine, which is how both the terminal UI
// loop and the headless scheduler drive it.
package clock
