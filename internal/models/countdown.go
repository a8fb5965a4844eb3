package models

import (
	"fmt"
	"strings"

	"github.com/julianstephens/focusflow/internal/calendar"
	"github.com/julianstephens/focusflow/internal/recurrence"
)

type CountdownType string

const (
	CountdownPlain       CountdownType = "countdown"
	CountdownAnniversary CountdownType = "anniversary"
	CountdownBirthday    CountdownType = "birthday"
	CountdownHoliday     CountdownType = "holiday"
)

// Countdown is a dated target shown as "days until" or "days since".
type Countdown struct {
	ID       string          `json:"id"`
	Title    string          `json:"title"`
	Date     calendar.Date   `json:"date"`
	Type     CountdownType   `json:"type"`
	Color    string          `json:"color,omitempty"`
	Archived bool            `json:"isArchived,omitempty"`
	Rule     recurrence.Rule `json:"recurrence"`
}

// Target returns the recurrence target of the countdown.
func (c Countdown) Target() recurrence.Target {
	return recurrence.Target{Anchor: c.Date, Rule: c.Rule}
}

// DefaultRule returns the recurrence a new countdown of type t starts with.
// Birthdays and anniversaries come around every year.
func DefaultRule(t CountdownType) recurrence.Rule {
	switch t {
	case CountdownBirthday, CountdownAnniversary:
		return recurrence.Yearly
	default:
		return recurrence.None
	}
}

func (c *Countdown) Validate() error {
	if strings.TrimSpace(c.Title) == "" {
		return fmt.Errorf("countdown title cannot be empty")
	}
	if c.Date.IsZero() {
		return fmt.Errorf("countdown date cannot be empty")
	}
	switch c.Type {
	case CountdownPlain, CountdownAnniversary, CountdownBirthday, CountdownHoliday:
	default:
		return fmt.Errorf("unknown countdown type %q", c.Type)
	}
	return nil
}
