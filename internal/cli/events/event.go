package events

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/julianstephens/focusflow/internal/calendar"
	"github.com/julianstephens/focusflow/internal/cli"
	"github.com/julianstephens/focusflow/internal/models"
	"github.com/julianstephens/focusflow/internal/recurrence"
	"github.com/julianstephens/focusflow/internal/utils"
)

type EventCmd struct {
	Add    *EventAddCmd    `cmd:"" help:"Add a calendar event."`
	List   *EventListCmd   `cmd:"" help:"List event occurrences for a month."`
	Show   *EventShowCmd   `cmd:"" help:"Show an event."`
	Delete *EventDeleteCmd `cmd:"" help:"Delete an event."`
}

type EventAddCmd struct {
	Title       string `arg:"" help:"Event title."`
	Date        string `short:"d" help:"First occurrence (YYYY-MM-DD, today, tomorrow)." default:"today"`
	Time        string `short:"t" help:"Start time (HH:MM)."`
	Type        string `help:"Event type." enum:"meeting,deadline,reminder,personal" default:"personal"`
	Recurrence  string `short:"r" help:"Recurrence (none, daily, weekly, monthly)." enum:"none,daily,weekly,monthly" default:"none"`
	Description string `help:"Description."`
	Location    string `help:"Location."`
	Calendar    string `help:"Calendar name (e.g. Personal, Work, Family)."`
	Color       string `help:"Display color."`
	Remind      int    `help:"Remind this many minutes before the start time."`
}

func (c *EventAddCmd) Validate() error {
	if c.Time != "" && !utils.ValidateTimeFormat(c.Time) {
		return fmt.Errorf("invalid time format (expected HH:MM): %s", c.Time)
	}
	if c.Remind < 0 {
		return fmt.Errorf("reminder minutes cannot be negative")
	}
	return nil
}

func (c *EventAddCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ParseDate(c.Date)
	if err != nil {
		return err
	}

	event := models.Event{
		Title:           c.Title,
		Date:            date,
		Time:            c.Time,
		Type:            models.EventType(c.Type),
		Description:     c.Description,
		Location:        c.Location,
		Color:           c.Color,
		Rule:            recurrence.ParseRule(c.Recurrence),
		Calendar:        c.Calendar,
		ReminderMinutes: c.Remind,
	}
	saved, err := ctx.Repo.SaveEvent(event)
	if err != nil {
		return fmt.Errorf("invalid event: %w", err)
	}

	fmt.Printf("Added event: %s (ID: %s)\n", saved.Title, saved.ID)
	return nil
}

type EventListCmd struct {
	Month   string `short:"m" help:"Month to list (YYYY-MM). Defaults to the current month."`
	ShowIDs bool   `help:"Show event IDs." name:"show-ids"`
}

// occurrence is one expanded event date.
type occurrence struct {
	Date  calendar.Date
	Event models.Event
}

func (c *EventListCmd) Run(ctx *cli.Context) error {
	today, err := ctx.Today()
	if err != nil {
		return err
	}
	start, err := monthStart(c.Month, today)
	if err != nil {
		return err
	}
	end := start.EndOfMonth()

	events, err := ctx.Repo.Events()
	if err != nil {
		return fmt.Errorf("failed to get events: %w", err)
	}
	occ := expandWindow(events, start, end)

	fmt.Println(cli.TitleStyle.Render(fmt.Sprintf("Events · %s %d", start.Month, start.Year)))
	if len(occ) == 0 {
		fmt.Println("No events this month.")
		return nil
	}

	var last calendar.Date
	for _, o := range occ {
		if o.Date != last {
			header := fmt.Sprintf("%s %s", o.Date, o.Date.Weekday().String()[:3])
			if o.Date == today {
				header += " " + cli.SuccessStyle.Render("(today)")
			}
			fmt.Println(cli.HeaderStyle.Render(header))
			last = o.Date
		}
		at := "all day"
		if o.Event.Time != "" {
			at = o.Event.Time
		}
		idStr := ""
		if c.ShowIDs {
			idStr = cli.MutedStyle.Render(fmt.Sprintf(" (ID: %s)", o.Event.ID))
		}
		fmt.Printf("  %-7s %s [%s]%s\n", at, o.Event.Title, o.Event.CalendarName(), idStr)
	}
	return nil
}

// monthStart parses YYYY-MM, or returns the first day of today's month.
func monthStart(month string, today calendar.Date) (calendar.Date, error) {
	if strings.TrimSpace(month) == "" {
		return today.StartOfMonth(), nil
	}
	t, err := time.Parse("2006-01", strings.TrimSpace(month))
	if err != nil {
		return calendar.Date{}, fmt.Errorf("invalid month (expected YYYY-MM): %s", month)
	}
	return calendar.New(t.Year(), t.Month(), 1), nil
}

// expandWindow expands every event into [from, to], ordered by date, then
// time of day with all-day events first.
func expandWindow(events []models.Event, from, to calendar.Date) []occurrence {
	var out []occurrence
	for _, e := range events {
		for _, d := range recurrence.Expand(e.Definition(), from, to) {
			out = append(out, occurrence{Date: d, Event: e})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].Event.Time < out[j].Event.Time
	})
	return out
}

type EventShowCmd struct {
	ID string `arg:"" help:"Event ID."`
}

func (c *EventShowCmd) Run(ctx *cli.Context) error {
	e, err := ctx.Repo.Event(c.ID)
	if err != nil {
		return err
	}
	today, err := ctx.Today()
	if err != nil {
		return err
	}

	fmt.Println(cli.TitleStyle.Render(e.Title))
	fmt.Printf("  ID:          %s\n", e.ID)
	fmt.Printf("  Type:        %s\n", e.Type)
	fmt.Printf("  Calendar:    %s\n", e.CalendarName())
	fmt.Printf("  Date:        %s\n", e.Date)
	if e.Time != "" {
		fmt.Printf("  Time:        %s\n", e.Time)
	}
	fmt.Printf("  Repeats:     %s\n", cli.FormatRecurrence(e.Rule))
	if e.Location != "" {
		fmt.Printf("  Location:    %s\n", e.Location)
	}
	if e.Description != "" {
		fmt.Printf("  Description: %s\n", e.Description)
	}
	if e.ReminderMinutes > 0 {
		fmt.Printf("  Reminder:    %d min before\n", e.ReminderMinutes)
	}

	// Next occurrence within a year
	if next := recurrence.Expand(e.Definition(), today, today.AddDays(366)); len(next) > 0 {
		fmt.Printf("  Next:        %s\n", next[0])
	}
	return nil
}

type EventDeleteCmd struct {
	ID  string `arg:"" help:"Event ID to delete."`
	Yes bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *EventDeleteCmd) Run(ctx *cli.Context) error {
	e, err := ctx.Repo.Event(c.ID)
	if err != nil {
		return fmt.Errorf("failed to find event with ID %s: %w", c.ID, err)
	}

	if !c.Yes && e.Rule != recurrence.None {
		ok, err := cli.Confirm(
			fmt.Sprintf("Delete %q?", e.Title),
			"This is a recurring event. Every occurrence will be removed.",
		)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Delete cancelled.")
			return nil
		}
	}

	if err := ctx.Repo.DeleteEvent(c.ID); err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	fmt.Printf("Deleted event: %s (ID: %s)\n", e.Title, c.ID)
	return nil
}
