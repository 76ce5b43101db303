package clock

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// timeOfDayLayout is the "HH:MM" layout alarms are stored and matched in.
const timeOfDayLayout = "15:04"

// ErrInvalidTimeOfDay is returned for alarm times that are not a valid HH:MM.
var ErrInvalidTimeOfDay = errors.New("invalid alarm time")

// Alarm is a single daily alarm entry.
type Alarm struct {
	// TimeOfDay is the 24-hour "HH:MM" wall time the alarm fires at.
	TimeOfDay string
	// Enabled reports whether the alarm is armed.
	Enabled bool
}

// String renders the alarm for list output.
func (a Alarm) String() string {
	state := "off"
	if a.Enabled {
		state = "on"
	}

	return a.TimeOfDay + " " + state
}

// ParseTimeOfDay validates s and normalizes it to zero-padded "HH:MM".
// A single-digit hour such as "7:05" is accepted.
func ParseTimeOfDay(s string) (string, error) {
	s = strings.TrimSpace(s)
	if len(s) == len("7:05") {
		s = "0" + s
	}

	parsed, err := time.Parse(timeOfDayLayout, s)
	if err != nil || len(s) != len(timeOfDayLayout) {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, s)
	}

	return parsed.Format(timeOfDayLayout), nil
}

// CloneAlarms returns a copy of alarms that never aliases the input.
// The result is non-nil so it encodes as an empty JSON array.
func CloneAlarms(alarms []Alarm) []Alarm {
	cloned := make([]Alarm, len(alarms))
	copy(cloned, alarms)

	return cloned
}
