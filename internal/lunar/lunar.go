package lunar

import (
	"errors"
	"fmt"
	"time"

	"github.com/6tail/lunar-go/calendar"
)

// ErrConversion is returned when a date cannot be converted.
var ErrConversion = errors.New("lunar conversion failed")

// Date holds the lunar labels of one day, e.g. 丙午 / 九 / 初九.
type Date struct {
	// YearLabel is the sexagenary (ganzhi) year.
	YearLabel string
	// MonthLabel is the lunar month in Chinese numerals, prefixed with 闰 for leap months.
	MonthLabel string
	// DayLabel is the lunar day in Chinese numerals.
	DayLabel string
}

// String formats the labels the way the date line shows them.
func (d Date) String() string {
	return fmt.Sprintf("%s年 %s月 %s", d.YearLabel, d.MonthLabel, d.DayLabel)
}

// Converter maps a Gregorian date to lunar labels.
type Converter interface {
	Convert(date time.Time) (Date, error)
}

// ConverterFunc adapts a plain function to Converter.
type ConverterFunc func(date time.Time) (Date, error)

// Convert calls f.
func (f ConverterFunc) Convert(date time.Time) (Date, error) {
	return f(date)
}

// Calendar is the Converter backed by lunar-go.
type Calendar struct{}

// NewCalendar returns the lunar-go backed converter.
func NewCalendar() Calendar {
	return Calendar{}
}

// Convert converts the wall date of t, in t's own location.
func (Calendar) Convert(t time.Time) (date Date, err error) {
	defer func() {
		if r := recover(); r != nil {
			date = Date{}
			err = fmt.Errorf("%w: %v", ErrConversion, r)
		}
	}()

	// lunar-go reads the wall fields, so pin them to the caller's location.
	wall := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.Local)

	l := calendar.NewLunarFromDate(wall)
	if l == nil {
		return Date{}, fmt.Errorf("%w: %s", ErrConversion, t.Format(time.DateOnly))
	}

	date = Date{
		YearLabel:  l.GetYearInGanZhi(),
		MonthLabel: l.GetMonthInChinese(),
		DayLabel:   l.GetDayInChinese(),
	}

	if date.YearLabel == "" || date.MonthLabel == "" || date.DayLabel == "" {
		return Date{}, fmt.Errorf("%w: %s", ErrConversion, t.Format(time.DateOnly))
	}

	return date, nil
}
