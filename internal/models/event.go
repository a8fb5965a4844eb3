package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/focusflow/internal/calendar"
	"github.com/julianstephens/focusflow/internal/constants"
	"github.com/julianstephens/focusflow/internal/recurrence"
)

type EventType string

const (
	EventMeeting  EventType = "meeting"
	EventDeadline EventType = "deadline"
	EventReminder EventType = "reminder"
	EventPersonal EventType = "personal"
)

// Event is a user-defined calendar entry, optionally recurring.
type Event struct {
	ID              string          `json:"id"`
	Title           string          `json:"title"`
	Date            calendar.Date   `json:"date"`
	Time            string          `json:"time,omitempty"` // HH:MM format
	Type            EventType       `json:"type"`
	Description     string          `json:"description,omitempty"`
	Location        string          `json:"location,omitempty"`
	Color           string          `json:"color,omitempty"`
	Rule            recurrence.Rule `json:"recurrence"`
	Calendar        string          `json:"calendar,omitempty"` // e.g. Personal, Work, Family
	ReminderMinutes int             `json:"reminderMinutes,omitempty"`
}

// Definition returns the recurrence definition of the event.
func (e Event) Definition() recurrence.Definition {
	return recurrence.Definition{
		ID:     e.ID,
		Title:  e.Title,
		Anchor: e.Date,
		Rule:   e.Rule,
	}
}

// CalendarName returns the calendar the event is shown on.
func (e Event) CalendarName() string {
	if e.Calendar == "" {
		return "Personal"
	}
	return e.Calendar
}

// StartOn returns the event start time on day in loc. It fails if the event has
// no time of day.
func (e Event) StartOn(day calendar.Date, loc *time.Location) (time.Time, error) {
	if e.Time == "" {
		return time.Time{}, fmt.Errorf("event %q has no time of day", e.Title)
	}
	tod, err := time.Parse(constants.TimeFormat, e.Time)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time format (expected HH:MM): %w", err)
	}
	return time.Date(day.Year, day.Month, day.Day, tod.Hour(), tod.Minute(), 0, 0, loc), nil
}

func (e *Event) Validate() error {
	if strings.TrimSpace(e.Title) == "" {
		return fmt.Errorf("event title cannot be empty")
	}

	if e.Date.IsZero() {
		return fmt.Errorf("event date cannot be empty")
	}

	if e.Time != "" {
		if _, err := time.Parse(constants.TimeFormat, e.Time); err != nil {
			return fmt.Errorf("invalid time format (expected HH:MM): %w", err)
		}
	}

	if e.ReminderMinutes < 0 {
		return fmt.Errorf("reminder minutes cannot be negative")
	}
	if e.ReminderMinutes > 0 && e.Time == "" {
		return fmt.Errorf("a reminder requires the event to have a time")
	}

	if !e.Rule.Valid() || e.Rule == recurrence.Yearly {
		return fmt.Errorf("events support none, daily, weekly or monthly recurrence")
	}

	return nil
}
