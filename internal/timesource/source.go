package timesource

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// ErrInvalidTimezone is returned for identifiers the zone database does not know.
var ErrInvalidTimezone = errors.New("invalid timezone")

// Fields are the calendar fields of one instant in one timezone.
type Fields struct {
	// Hour is 0-23.
	Hour int
	// Minute is 0-59.
	Minute int
	// Second is 0-59.
	Second int
	// Weekday is 0 (Sunday) to 6.
	Weekday time.Weekday
	// Date is the instant expressed in the requested location.
	Date time.Time
}

// HourMinute returns the 24-hour "HH:MM" form alarms are matched against.
func (f Fields) HourMinute() string {
	return fmt.Sprintf("%02d:%02d", f.Hour, f.Minute)
}

// Source reads the clock and caches loaded locations.
type Source struct {
	// clock supplies the current instant.
	clock clockwork.Clock
	// locations caches time.LoadLocation results by identifier.
	locations map[string]*time.Location
	// mu protects locations.
	mu sync.Mutex
}

// New returns a Source reading from clock; a nil clock means the real clock.
func New(clock clockwork.Clock) *Source {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	return &Source{
		clock:     clock,
		locations: make(map[string]*time.Location),
	}
}

// Now returns the current calendar fields in timezone.
func (s *Source) Now(timezone string) (Fields, error) {
	loc, err := s.location(timezone)
	if err != nil {
		return Fields{}, err
	}

	return FieldsOf(s.clock.Now().In(loc)), nil
}

// Validate reports whether timezone can be loaded.
func (s *Source) Validate(timezone string) error {
	_, err := s.location(timezone)

	return err
}

// FieldsOf splits t into Fields without changing its location.
func FieldsOf(t time.Time) Fields {
	return Fields{
		Hour:    t.Hour(),
		Minute:  t.Minute(),
		Second:  t.Second(),
		Weekday: t.Weekday(),
		Date:    t,
	}
}

// location loads and caches a zone. An empty identifier is rejected rather
// than silently meaning UTC.
func (s *Source) location(timezone string) (*time.Location, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if loc, ok := s.locations[timezone]; ok {
		return loc, nil
	}

	if timezone == "" {
		return nil, fmt.Errorf("%w: empty identifier", ErrInvalidTimezone)
	}

	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrInvalidTimezone, timezone, err)
	}

	s.locations[timezone] = loc

	return loc, nil
}
