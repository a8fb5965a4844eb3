package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/focusflow/internal/calendar"
	"github.com/julianstephens/focusflow/internal/constants"
	"github.com/julianstephens/focusflow/internal/models"
)

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// NowInTimezone returns the current time in the specified timezone.
func NowInTimezone(timezone string) (time.Time, error) {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return time.Now().In(loc), nil
}

// TodayIn returns the calendar date of now as observed in timezone. The
// clock is passed in so callers decide what "now" is.
func TodayIn(now time.Time, timezone string) (calendar.Date, error) {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return calendar.Date{}, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return calendar.FromTime(now.In(loc)), nil
}

// TodayFromSettings returns today's date using the timezone from settings.
func TodayFromSettings(now time.Time, settings models.Settings) (calendar.Date, error) {
	return TodayIn(now, settings.Timezone)
}

// ParseTime parses a time string in the standard format (HH:MM).
func ParseTime(timeStr string) (time.Time, error) {
	return time.Parse(constants.TimeFormat, timeStr)
}

// ValidateTimeFormat checks if the string matches the standard time format.
func ValidateTimeFormat(timeStr string) bool {
	_, err := ParseTime(timeStr)
	return err == nil
}

// CombineDateAndTime places an HH:MM time of day on day in loc.
func CombineDateAndTime(day calendar.Date, timeStr string, loc *time.Location) (time.Time, error) {
	timeOfDay, err := ParseTime(timeStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time format: %w", err)
	}
	return time.Date(day.Year, day.Month, day.Day, timeOfDay.Hour(), timeOfDay.Minute(), 0, 0, loc), nil
}

// ValidateTimezone checks if the timezone name is valid.
func ValidateTimezone(timezone string) bool {
	_, err := LoadLocation(timezone)
	return err == nil
}

// FormatClock renders d as MM:SS, or H:MM:SS once it reaches an hour.
// Negative durations render as zero.
func FormatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Round(time.Second) / time.Second)
	h, m, s := total/3600, (total%3600)/60, total%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}

// FormatHours renders fractional hours as "1h 30m" style text.
func FormatHours(hours float64) string {
	if hours <= 0 {
		return "0m"
	}
	minutes := int(hours*60 + 0.5)
	h, m := minutes/60, minutes%60
	var parts []string
	if h > 0 {
		parts = append(parts, fmt.Sprintf("%dh", h))
	}
	if m > 0 || h == 0 {
		parts = append(parts, fmt.Sprintf("%dm", m))
	}
	return strings.Join(parts, " ")
}
