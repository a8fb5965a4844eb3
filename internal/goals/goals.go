// Package goals computes progress toward weekly, monthly and yearly hour
// targets.
package goals

import (
	"math"
	"time"

	"github.com/julianstephens/focusflow/internal/calendar"
	"github.com/julianstephens/focusflow/internal/models"
)

type Period string

const (
	Weekly  Period = "weekly"
	Monthly Period = "monthly"
	Yearly  Period = "yearly"
)

// Ring is the progress toward one target over an inclusive date range.
type Ring struct {
	Period  Period        `json:"period"`
	Start   calendar.Date `json:"start"`
	End     calendar.Date `json:"end"`
	Hours   float64       `json:"hours"`
	Target  float64       `json:"target"`
	Percent float64       `json:"percent"`
}

// Remaining returns the hours still needed to hit the target.
func (r Ring) Remaining() float64 {
	return math.Max(0, r.Target-r.Hours)
}

// WeekRange returns the Monday to Sunday week containing day.
func WeekRange(day calendar.Date) (calendar.Date, calendar.Date) {
	// Shift so Monday is 0 and Sunday is 6.
	offset := (int(day.Weekday()) + 6) % 7
	start := day.AddDays(-offset)
	return start, start.AddDays(6)
}

// MonthRange returns the first and last day of day's month.
func MonthRange(day calendar.Date) (calendar.Date, calendar.Date) {
	return day.StartOfMonth(), day.EndOfMonth()
}

// YearRange returns January 1 and December 31 of day's year.
func YearRange(day calendar.Date) (calendar.Date, calendar.Date) {
	return calendar.New(day.Year, time.January, 1), calendar.New(day.Year, time.December, 31)
}

// Progress returns the weekly, monthly and yearly rings for the periods
// containing today.
func Progress(records []models.StudyLog, g models.Goals, today calendar.Date) []Ring {
	ws, we := WeekRange(today)
	ms, me := MonthRange(today)
	ys, ye := YearRange(today)

	return []Ring{
		ring(Weekly, records, ws, we, g.Weekly),
		ring(Monthly, records, ms, me, g.Monthly),
		ring(Yearly, records, ys, ye, g.Yearly),
	}
}

func ring(p Period, records []models.StudyLog, start, end calendar.Date, target float64) Ring {
	hours := 0.0
	for _, r := range records {
		if !r.Date.Before(start) && !r.Date.After(end) {
			hours += r.Hours
		}
	}
	return Ring{
		Period:  p,
		Start:   start,
		End:     end,
		Hours:   hours,
		Target:  target,
		Percent: Percent(hours, target),
	}
}

// Percent returns hours as a share of target, capped at 100. A non-positive
// target yields 0.
func Percent(hours, target float64) float64 {
	if target <= 0 {
		return 0
	}
	return math.Min(100, hours/target*100)
}
