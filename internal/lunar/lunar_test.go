package lunar

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestCalendar_Convert checks well-known dates against published lunar calendars.
func TestCalendar_Convert(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		date time.Time
		want Date
	}{
		{
			name: "spring festival 2024",
			date: time.Date(2024, time.February, 10, 12, 0, 0, 0, time.UTC),
			want: Date{YearLabel: "甲辰", MonthLabel: "正", DayLabel: "初一"},
		},
		{
			name: "mid-autumn 2025",
			date: time.Date(2025, time.October, 6, 20, 0, 0, 0, time.UTC),
			want: Date{YearLabel: "乙巳", MonthLabel: "八", DayLabel: "十五"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := NewCalendar().Convert(tc.date)
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

// TestCalendar_UsesWallDate verifies the conversion follows the date in the value's own location.
func TestCalendar_UsesWallDate(t *testing.T) {
	t.Parallel()

	taipei, err := time.LoadLocation("Asia/Taipei")
	require.NoError(t, err)

	// 2024-02-09 17:00 UTC is already 2024-02-10 01:00 in Taipei.
	instant := time.Date(2024, time.February, 9, 17, 0, 0, 0, time.UTC).In(taipei)

	got, err := NewCalendar().Convert(instant)
	require.NoError(t, err)
	require.Equal(t, "初一", got.DayLabel)
}

// TestDate_String checks the rendered label.
func TestDate_String(t *testing.T) {
	t.Parallel()

	d := Date{YearLabel: "甲辰", MonthLabel: "正", DayLabel: "初一"}
	require.Equal(t, "甲辰年 正月 初一", d.String())
}

// TestConverterFunc adapts a function.
func TestConverterFunc(t *testing.T) {
	t.Parallel()

	errBoom := errors.New("boom")
	conv := ConverterFunc(func(time.Time) (Date, error) { return Date{}, errBoom })

	_, err := conv.Convert(time.Now())
	require.ErrorIs(t, err, errBoom)
}
