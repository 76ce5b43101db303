package clock

import "fmt"

// Field identifies one of the three flip cards.
type Field int

const (
	// FieldHour is the hour card.
	FieldHour Field = iota
	// FieldMinute is the minute card.
	FieldMinute
	// FieldSecond is the second card.
	FieldSecond
)

// Fields lists the cards in display order.
func Fields() []Field {
	return []Field{FieldHour, FieldMinute, FieldSecond}
}

// String returns the card identifier.
func (f Field) String() string {
	switch f {
	case FieldHour:
		return "hours"
	case FieldMinute:
		return "minutes"
	case FieldSecond:
		return "seconds"
	default:
		return fmt.Sprintf("field(%d)", int(f))
	}
}

// Displayed holds the zero-padded text last rendered on each card.
type Displayed struct {
	Hour   string
	Minute string
	Second string
}

// NewDisplayed formats the three card values as two-digit strings.
func NewDisplayed(hour, minute, second int) Displayed {
	return Displayed{
		Hour:   fmt.Sprintf("%02d", hour),
		Minute: fmt.Sprintf("%02d", minute),
		Second: fmt.Sprintf("%02d", second),
	}
}

// Value returns the text of a single card.
func (d Displayed) Value(f Field) string {
	switch f {
	case FieldHour:
		return d.Hour
	case FieldMinute:
		return d.Minute
	case FieldSecond:
		return d.Second
	default:
		return ""
	}
}

// ClockState is the engine-owned view of what is on screen.
type ClockState struct {
	// Settings is the snapshot the engine ticks with.
	Settings Settings
	// LastDisplayed is nil before the first tick and after a timezone or
	// hour format change.
	LastDisplayed *Displayed
}

// Clone returns a copy that does not share LastDisplayed.
func (s ClockState) Clone() ClockState {
	cloned := s
	if s.LastDisplayed != nil {
		last := *s.LastDisplayed
		cloned.LastDisplayed = &last
	}

	return cloned
}

// ResetDisplayed forgets the rendered values so the next tick snaps every card.
func (s *ClockState) ResetDisplayed() {
	s.LastDisplayed = nil
}
