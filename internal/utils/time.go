package utils

import (
	"fmt"
	"time"

	"github.com/julianstephens/habitboard/internal/calendar"
	"github.com/julianstephens/habitboard/internal/constants"
)

// Clock returns the current instant. Tests substitute a fixed clock.
type Clock func() time.Time

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == constants.DefaultTimezone {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return loc, nil
}

// TodayIn returns the calendar date of clock's current instant in loc.
func TodayIn(clock Clock, loc *time.Location) calendar.Date {
	if clock == nil {
		clock = time.Now
	}
	if loc == nil {
		loc = time.Local
	}
	return calendar.FromTime(clock().In(loc))
}

// ParseMonth parses a YYYY-MM string.
func ParseMonth(s string) (int, int, error) {
	t, err := time.Parse(constants.MonthFormat, s)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid month %q, expected YYYY-MM: %w", s, err)
	}
	return t.Year(), int(t.Month()), nil
}

// ValidateTimeFormat checks if the string is a zero-padded time in the
// standard time format.
func ValidateTimeFormat(timeStr string) bool {
	t, err := time.Parse(constants.TimeFormat, timeStr)
	return err == nil && t.Format(constants.TimeFormat) == timeStr
}
