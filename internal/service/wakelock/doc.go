// Package wakelock asks the operating system to keep the display awake while
// the clock runs. It is strictly best effort: callers log a failure and move on.
package wakelock
