package clock

import "github.com/oshokin/fliptime/internal/timesource"

//nolint:gochecknoglobals // Fixed lookup table.
var weekdayNames = [...]string{"星期日", "星期一", "星期二", "星期三", "星期四", "星期五", "星期六"}

// GregorianLabel renders the Gregorian date line, e.g. "2026年 10月 19日 星期一".
func GregorianLabel(fields timesource.Fields) string {
	return fields.Date.Format("2006年 01月 02日") + " " + weekdayNames[fields.Weekday]
}
