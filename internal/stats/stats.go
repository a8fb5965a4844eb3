// Package stats aggregates study logs for the statistics and heatmap views.
package stats

import (
	"math"
	"time"

	"github.com/julianstephens/focusflow/internal/calendar"
	"github.com/julianstephens/focusflow/internal/models"
)

// Summary holds the headline numbers for a set of logs.
type Summary struct {
	Count          int     `json:"count"`
	TotalHours     float64 `json:"totalHours"`
	AverageHours   float64 `json:"avgHours"`
	WeekdayAverage float64 `json:"avgWeekday"`
	WeekendAverage float64 `json:"avgWeekend"`
}

// DayFrequency is the total hours logged on one weekday.
type DayFrequency struct {
	Weekday time.Weekday `json:"dayIndex"`
	Hours   float64      `json:"value"`
	Percent float64      `json:"percent"` // share of the busiest weekday, 0-100
}

// DayTotal is the hours logged on one date across projects.
type DayTotal struct {
	Date  calendar.Date `json:"date"`
	Hours float64       `json:"hours"`
}

// Range selects how far back a report looks.
type Range string

const (
	Last7Days  Range = "7days"
	Last30Days Range = "30days"
	ThisYear   Range = "year"
	AllTime    Range = "all"
)

// From returns the first date included by r relative to today. The zero Date
// means no lower bound.
func (r Range) From(today calendar.Date) calendar.Date {
	switch r {
	case Last7Days:
		return today.AddDays(-7)
	case Last30Days:
		return today.AddDays(-30)
	case ThisYear:
		return calendar.New(today.Year, time.January, 1)
	default:
		return calendar.Date{}
	}
}

// TotalHours sums the hours of all records.
func TotalHours(records []models.StudyLog) float64 {
	return models.TotalHours(records)
}

// Filter returns the records for projectID within [from, to]. An empty
// projectID matches every project and a zero bound is open.
func Filter(records []models.StudyLog, projectID string, from, to calendar.Date) []models.StudyLog {
	out := make([]models.StudyLog, 0, len(records))
	for _, r := range records {
		if projectID != "" && r.ProjectID != projectID {
			continue
		}
		if !from.IsZero() && r.Date.Before(from) {
			continue
		}
		if !to.IsZero() && r.Date.After(to) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Summarize computes totals and per-log averages, split by weekday and
// weekend.
func Summarize(records []models.StudyLog) Summary {
	var s Summary
	var weekdayHours, weekendHours float64
	var weekdays, weekends int

	for _, r := range records {
		s.Count++
		s.TotalHours += r.Hours
		if isWeekend(r.Date) {
			weekends++
			weekendHours += r.Hours
		} else {
			weekdays++
			weekdayHours += r.Hours
		}
	}

	s.AverageHours = average(s.TotalHours, s.Count)
	s.WeekdayAverage = average(weekdayHours, weekdays)
	s.WeekendAverage = average(weekendHours, weekends)
	return s
}

// Frequency returns hours per weekday, Sunday first.
func Frequency(records []models.StudyLog) []DayFrequency {
	var totals [7]float64
	for _, r := range records {
		totals[r.Date.Weekday()] += r.Hours
	}

	max := 1.0
	for _, v := range totals {
		max = math.Max(max, v)
	}

	out := make([]DayFrequency, 7)
	for i, v := range totals {
		out[i] = DayFrequency{
			Weekday: time.Weekday(i),
			Hours:   v,
			Percent: v / max * 100,
		}
	}
	return out
}

// DailyTotals returns one entry per day in [from, to], including days with no
// logs.
func DailyTotals(records []models.StudyLog, from, to calendar.Date) []DayTotal {
	if to.Before(from) {
		return nil
	}
	byDay := make(map[int]float64, len(records))
	for _, r := range records {
		byDay[r.Date.DayIndex()] += r.Hours
	}

	first := from.DayIndex()
	out := make([]DayTotal, 0, calendar.DaysBetween(from, to)+1)
	for idx := first; idx <= to.DayIndex(); idx++ {
		out = append(out, DayTotal{Date: calendar.FromDayIndex(idx), Hours: byDay[idx]})
	}
	return out
}

// Intensity buckets hours into the 0-4 heatmap scale.
func Intensity(hours float64) int {
	switch {
	case hours <= 0:
		return 0
	case hours < 2:
		return 1
	case hours < 4:
		return 2
	case hours < 6:
		return 3
	default:
		return 4
	}
}

func isWeekend(d calendar.Date) bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

func average(total float64, n int) float64 {
	if n == 0 {
		return 0
	}
	return total / float64(n)
}
