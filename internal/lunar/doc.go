// Package lunar renders Chinese lunar calendar labels for a Gregorian date.
//
// Conversion is delegated to github.com/6tail/lunar-go. Any failure inside
// the library, including a panic, is reported as ErrConversion so callers can
// keep their previous label.
package lunar
