package models

import (
	"github.com/julianstephens/focusflow/internal/calendar"
)

// StudyLog is the hours studied on one day for one project.
// At most one log exists per (Date, ProjectID).
type StudyLog struct {
	Date      calendar.Date `json:"date"`
	Hours     float64       `json:"hours"`
	Notes     string        `json:"notes,omitempty"`
	ProjectID string        `json:"projectId"`
}

// Active reports whether the log counts toward streaks.
func (l StudyLog) Active() bool {
	return l.Hours > 0
}

// TotalHours sums the hours of all logs.
func TotalHours(logs []StudyLog) float64 {
	total := 0.0
	for _, l := range logs {
		total += l.Hours
	}
	return total
}
