// Package streak computes consecutive-day study streaks.
package streak

import (
	"sort"

	"github.com/julianstephens/focusflow/internal/calendar"
	"github.com/julianstephens/focusflow/internal/models"
)

// Result holds the current and longest streak in days.
type Result struct {
	Current int `json:"current"`
	Longest int `json:"longest"`
}

// Compute returns the streaks over all records. Records with zero hours are
// ignored and several records on the same date count as one active day.
//
// The current streak is alive only when the most recent active day is today or
// yesterday.
func Compute(records []models.StudyLog, today calendar.Date) Result {
	days := activeDays(records)
	if len(days) == 0 {
		return Result{}
	}

	longest, run := 1, 1
	for i := 1; i < len(days); i++ {
		if days[i]-days[i-1] == 1 {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}

	current := 0
	last := days[len(days)-1]
	t := today.DayIndex()
	if last == t || last == t-1 {
		current = 1
		for i := len(days) - 1; i > 0 && days[i]-days[i-1] == 1; i-- {
			current++
		}
	}

	return Result{Current: current, Longest: longest}
}

// ComputeForProject is Compute restricted to one project's records.
func ComputeForProject(records []models.StudyLog, projectID string, today calendar.Date) Result {
	scoped := make([]models.StudyLog, 0, len(records))
	for _, r := range records {
		if r.ProjectID == projectID {
			scoped = append(scoped, r)
		}
	}
	return Compute(scoped, today)
}

// activeDays returns the sorted distinct day indices with positive hours.
func activeDays(records []models.StudyLog) []int {
	seen := make(map[int]struct{}, len(records))
	days := make([]int, 0, len(records))
	for _, r := range records {
		if !r.Active() {
			continue
		}
		idx := r.Date.DayIndex()
		if _, ok := seen[idx]; ok {
			continue
		}
		seen[idx] = struct{}{}
		days = append(days, idx)
	}
	sort.Ints(days)
	return days
}
