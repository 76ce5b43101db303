package clock

import (
	"errors"
	"fmt"
	"strings"
)

// HourFormat selects how the hour card is projected.
type HourFormat int

const (
	// Hour24 shows hours 00-23. It is the zero value and the default.
	Hour24 HourFormat = iota
	// Hour12 shows hours 01-12.
	Hour12
)

const (
	// DefaultTimezone is used until the user picks another zone.
	DefaultTimezone = "Asia/Taipei"
	// DefaultTheme is the visual theme tag applied on first start.
	DefaultTheme = "classic"

	hoursPerHalfDay = 12
)

// ErrInvalidHourFormat is returned when an hour format string cannot be parsed.
var ErrInvalidHourFormat = errors.New("invalid hour format")

// Project maps a 0-23 hour onto the displayed hour for the format.
func (f HourFormat) Project(hour int) int {
	if f != Hour12 {
		return hour
	}

	if h := hour % hoursPerHalfDay; h != 0 {
		return h
	}

	return hoursPerHalfDay
}

// Toggle returns the other format.
func (f HourFormat) Toggle() HourFormat {
	if f == Hour12 {
		return Hour24
	}

	return Hour12
}

// Is24Hour reports whether the format shows hours 00-23.
func (f HourFormat) Is24Hour() bool {
	return f != Hour12
}

// String returns the label shown next to the format toggle.
func (f HourFormat) String() string {
	if f == Hour12 {
		return "12H"
	}

	return "24H"
}

// HourFormatFrom24 converts the persisted is24Hour flag into a HourFormat.
func HourFormatFrom24(is24Hour bool) HourFormat {
	if is24Hour {
		return Hour24
	}

	return Hour12
}

// ParseHourFormat accepts "12", "24", "12h" or "24h" in any case.
func ParseHourFormat(s string) (HourFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "24", "24h":
		return Hour24, nil
	case "12", "12h":
		return Hour12, nil
	default:
		return Hour24, fmt.Errorf("%w: %q", ErrInvalidHourFormat, s)
	}
}

// Settings are the user preferences persisted between runs.
type Settings struct {
	// Timezone is an IANA zone identifier such as "Asia/Tokyo".
	Timezone string
	// Theme is the visual theme tag understood by the presenter.
	Theme string
	// HourFormat selects 12- or 24-hour display.
	HourFormat HourFormat
}

// DefaultSettings returns the settings used when nothing is persisted.
func DefaultSettings() Settings {
	return Settings{
		Timezone:   DefaultTimezone,
		Theme:      DefaultTheme,
		HourFormat: Hour24,
	}
}

// Themes lists the theme tags shipped with the terminal presenter.
func Themes() []string {
	return []string{DefaultTheme, "dark", "light", "retro"}
}
