// Package calendar provides a zone-free calendar date value type.
//
// A Date carries only year, month and day. All arithmetic goes through a day
// index (days since 1970-01-01) so that daylight saving transitions and local
// time zones never shift a date by one.
package calendar

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/focusflow/internal/constants"
)

// ErrInvalidDate is returned when a date string cannot be parsed or names a
// day that does not exist.
var ErrInvalidDate = errors.New("invalid date")

const secondsPerDay = 24 * 60 * 60

// Date is a calendar date with no time-of-day or time zone component.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// New returns the date for the given components. Out-of-range components are
// normalized the way time.Date normalizes them (e.g. January 32 is February 1).
func New(year int, month time.Month, day int) Date {
	return FromTime(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// Parse parses a YYYY-MM-DD string.
func Parse(s string) (Date, error) {
	t, err := time.Parse(constants.DateFormat, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w %q: expected YYYY-MM-DD", ErrInvalidDate, s)
	}
	return FromTime(t), nil
}

// MustParse is like Parse but panics on error. It is intended for constants
// and tests.
func MustParse(s string) Date {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

// FromTime returns the calendar date of t as observed in t's own location.
func FromTime(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// FromDayIndex is the inverse of DayIndex.
func FromDayIndex(index int) Date {
	return FromTime(time.Unix(int64(index)*secondsPerDay, 0).UTC())
}

// Today returns the current date in loc.
func Today(loc *time.Location) Date {
	return FromTime(time.Now().In(loc))
}

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool {
	return d == Date{}
}

// DayIndex returns the number of days between 1970-01-01 and d.
func (d Date) DayIndex() int {
	return int(d.midnightUTC().Unix() / secondsPerDay)
}

// Time returns midnight of d in loc.
func (d Date) Time(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

func (d Date) midnightUTC() time.Time {
	return d.Time(time.UTC)
}

// AddDays returns d shifted by n days.
func (d Date) AddDays(n int) Date {
	return FromDayIndex(d.DayIndex() + n)
}

// Weekday returns the day of the week of d.
func (d Date) Weekday() time.Weekday {
	return d.midnightUTC().Weekday()
}

// Compare returns -1, 0 or +1 depending on whether d is before, equal to or
// after other.
func (d Date) Compare(other Date) int {
	a, b := d.DayIndex(), other.DayIndex()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func (d Date) Before(other Date) bool { return d.Compare(other) < 0 }
func (d Date) After(other Date) bool  { return d.Compare(other) > 0 }
func (d Date) Equal(other Date) bool  { return d == other }

// String formats d as YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// MarshalText implements encoding.TextMarshaler. The zero Date encodes as an
// empty string.
func (d Date) MarshalText() ([]byte, error) {
	if d.IsZero() {
		return []byte{}, nil
	}
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Date) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*d = Date{}
		return nil
	}
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// DaysBetween returns the signed number of days from a to b.
func DaysBetween(a, b Date) int {
	return b.DayIndex() - a.DayIndex()
}

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year int, month time.Month) int {
	// Day 0 of the following month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// StartOfMonth returns the first day of d's month.
func (d Date) StartOfMonth() Date {
	return Date{Year: d.Year, Month: d.Month, Day: 1}
}

// EndOfMonth returns the last day of d's month.
func (d Date) EndOfMonth() Date {
	return Date{Year: d.Year, Month: d.Month, Day: DaysInMonth(d.Year, d.Month)}
}

// Max returns the later of a and b.
func Max(a, b Date) Date {
	if a.After(b) {
		return a
	}
	return b
}
