// Package calendar provides the date arithmetic the dashboard engine relies
// on: month lengths, YYYY-MM-DD keys and month navigation. All values are
// plain calendar dates with no time-of-day or timezone attached.
package calendar

import (
	"fmt"
	"time"

	apperrors "github.com/julianstephens/habitboard/internal/errors"
)

const keyLayout = "2006-01-02"

// Date is a calendar day. The zero value is not a valid date; construct one
// with NewDate, ParseDate or FromTime.
type Date struct {
	Year  int
	Month int
	Day   int
}

// DaysInMonth returns the number of days in the given month, accounting for
// leap years.
func DaysInMonth(year, month int) (int, error) {
	if month < 1 || month > 12 {
		return 0, fmt.Errorf("month %d out of range 1..12: %w", month, apperrors.ErrInvalidDate)
	}
	// Day 0 of the following month is the last day of this one.
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day(), nil
}

// DateKey formats a zero-padded YYYY-MM-DD key after validating the day
// against the month length.
func DateKey(year, month, day int) (string, error) {
	d, err := NewDate(year, month, day)
	if err != nil {
		return "", err
	}
	return d.String(), nil
}

// ShiftMonth moves a (year, month) pair by delta months, normalizing across
// year boundaries. Month 0 becomes December of the previous year, month 13
// January of the next.
func ShiftMonth(year, month, delta int) (int, int) {
	idx := year*12 + (month - 1) + delta
	y := idx / 12
	m := idx % 12
	if m < 0 {
		m += 12
		y--
	}
	return y, m + 1
}

// NewDate validates and builds a Date.
func NewDate(year, month, day int) (Date, error) {
	n, err := DaysInMonth(year, month)
	if err != nil {
		return Date{}, err
	}
	if day < 1 || day > n {
		return Date{}, fmt.Errorf("day %d out of range 1..%d for %04d-%02d: %w", day, n, year, month, apperrors.ErrInvalidDate)
	}
	return Date{Year: year, Month: month, Day: day}, nil
}

// ParseDate parses a YYYY-MM-DD key.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(keyLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("parse %q: %w", s, apperrors.ErrInvalidDate)
	}
	return FromTime(t), nil
}

// FromTime returns the calendar day of t in t's own location.
func FromTime(t time.Time) Date {
	return Date{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}
}

// MustDate is NewDate for literals known to be valid. It panics otherwise.
func MustDate(year, month, day int) Date {
	d, err := NewDate(year, month, day)
	if err != nil {
		panic(err)
	}
	return d
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// MarshalText encodes d as YYYY-MM-DD so it serializes as a JSON string.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText accepts a YYYY-MM-DD key. An RFC3339 timestamp is also
// accepted and truncated to its date.
func (d *Date) UnmarshalText(b []byte) error {
	s := string(b)
	if len(s) > len(keyLayout) {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return fmt.Errorf("parse %q: %w", s, apperrors.ErrInvalidDate)
		}
		*d = FromTime(t)
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool {
	return d == Date{}
}

// Compare returns -1, 0 or +1 depending on whether d is before, equal to or
// after other.
func (d Date) Compare(other Date) int {
	switch {
	case d.Year != other.Year:
		return sign(d.Year - other.Year)
	case d.Month != other.Month:
		return sign(d.Month - other.Month)
	default:
		return sign(d.Day - other.Day)
	}
}

func (d Date) Before(other Date) bool { return d.Compare(other) < 0 }
func (d Date) After(other Date) bool  { return d.Compare(other) > 0 }

// MonthRange returns the first and last day of a month.
func MonthRange(year, month int) (Date, Date, error) {
	n, err := DaysInMonth(year, month)
	if err != nil {
		return Date{}, Date{}, err
	}
	return Date{Year: year, Month: month, Day: 1}, Date{Year: year, Month: month, Day: n}, nil
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	}
	return 0
}
