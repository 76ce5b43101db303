package timesource

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"
)

// TestSource_Now checks field ranges and offsets for several zones at a fixed instant.
func TestSource_Now(t *testing.T) {
	t.Parallel()

	instant := time.Date(2026, time.January, 15, 23, 30, 45, 0, time.UTC)
	source := New(clockwork.NewFakeClockAt(instant))

	cases := []struct {
		timezone string
		hour     int
		weekday  time.Weekday
	}{
		{timezone: "UTC", hour: 23, weekday: time.Thursday},
		{timezone: "Asia/Taipei", hour: 7, weekday: time.Friday},
		{timezone: "Asia/Tokyo", hour: 8, weekday: time.Friday},
		{timezone: "Europe/London", hour: 23, weekday: time.Thursday},
		{timezone: "America/New_York", hour: 18, weekday: time.Thursday},
	}

	for _, tc := range cases {
		t.Run(tc.timezone, func(t *testing.T) {
			t.Parallel()

			fields, err := source.Now(tc.timezone)
			require.NoError(t, err)
			require.Equal(t, tc.hour, fields.Hour)
			require.Equal(t, 30, fields.Minute)
			require.Equal(t, 45, fields.Second)
			require.Equal(t, tc.weekday, fields.Weekday)
			require.True(t, fields.Date.Equal(instant))
		})
	}
}

// TestSource_FieldRanges advances a fake clock across a day and checks every field stays in range.
func TestSource_FieldRanges(t *testing.T) {
	t.Parallel()

	clock := clockwork.NewFakeClockAt(time.Date(2026, time.March, 8, 0, 0, 0, 0, time.UTC))
	source := New(clock)

	for range 24 * 7 {
		clock.Advance(time.Hour + 7*time.Minute + 13*time.Second)

		for _, timezone := range []string{"Asia/Taipei", "America/New_York", "UTC"} {
			fields, err := source.Now(timezone)
			require.NoError(t, err)
			require.GreaterOrEqual(t, fields.Hour, 0)
			require.Less(t, fields.Hour, 24)
			require.GreaterOrEqual(t, fields.Minute, 0)
			require.Less(t, fields.Minute, 60)
			require.GreaterOrEqual(t, fields.Second, 0)
			require.Less(t, fields.Second, 60)
		}
	}
}

// TestSource_InvalidTimezone verifies unknown and empty identifiers are rejected.
func TestSource_InvalidTimezone(t *testing.T) {
	t.Parallel()

	source := New(clockwork.NewFakeClock())

	_, err := source.Now("Mars/Olympus_Mons")
	require.ErrorIs(t, err, ErrInvalidTimezone)

	require.ErrorIs(t, source.Validate(""), ErrInvalidTimezone)
	require.NoError(t, source.Validate("Asia/Taipei"))
}

// TestFields_HourMinute checks the zero-padded alarm key.
func TestFields_HourMinute(t *testing.T) {
	t.Parallel()

	fields := FieldsOf(time.Date(2026, time.May, 1, 7, 5, 0, 0, time.UTC))
	require.Equal(t, "07:05", fields.HourMinute())
}
