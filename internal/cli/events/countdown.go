package events

import (
	"fmt"
	"sort"

	"github.com/julianstephens/focusflow/internal/calendar"
	"github.com/julianstephens/focusflow/internal/cli"
	"github.com/julianstephens/focusflow/internal/models"
	"github.com/julianstephens/focusflow/internal/recurrence"
	"github.com/julianstephens/focusflow/internal/storage"
)

type CountdownCmd struct {
	Add     *CountdownAddCmd     `cmd:"" help:"Add a countdown."`
	List    *CountdownListCmd    `cmd:"" help:"List countdowns."`
	Archive *CountdownArchiveCmd `cmd:"" help:"Archive or unarchive a countdown."`
	Delete  *CountdownDeleteCmd  `cmd:"" help:"Delete a countdown."`
}

type CountdownAddCmd struct {
	Title      string `arg:"" help:"Countdown title."`
	Date       string `arg:"" help:"Target date (YYYY-MM-DD)."`
	Type       string `help:"Countdown type." enum:"countdown,anniversary,birthday,holiday" default:"countdown"`
	Recurrence string `short:"r" help:"Recurrence (none, daily, weekly, monthly, yearly). Birthdays and anniversaries default to yearly."`
	Color      string `help:"Display color."`
}

func (c *CountdownAddCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ParseDate(c.Date)
	if err != nil {
		return err
	}
	kind := models.CountdownType(c.Type)
	rule := models.DefaultRule(kind)
	if c.Recurrence != "" {
		rule = recurrence.ParseRule(c.Recurrence)
	}

	saved, err := ctx.Repo.SaveCountdown(models.Countdown{
		Title: c.Title,
		Date:  date,
		Type:  kind,
		Color: c.Color,
		Rule:  rule,
	})
	if err != nil {
		return fmt.Errorf("invalid countdown: %w", err)
	}

	fmt.Printf("Added countdown: %s (ID: %s)\n", saved.Title, saved.ID)
	return nil
}

type CountdownListCmd struct {
	All     bool `help:"Include archived countdowns."`
	ShowIDs bool `help:"Show countdown IDs." name:"show-ids"`
}

// resolved pairs a countdown with the occurrence it points at today.
type resolved struct {
	Countdown  models.Countdown
	Resolution recurrence.Resolution
}

func (c *CountdownListCmd) Run(ctx *cli.Context) error {
	today, err := ctx.Today()
	if err != nil {
		return err
	}
	items, err := ctx.Repo.Countdowns()
	if err != nil {
		return fmt.Errorf("failed to get countdowns: %w", err)
	}

	list := resolveAll(items, today, c.All)
	if len(list) == 0 {
		fmt.Println("No countdowns.")
		return nil
	}

	fmt.Println(cli.TitleStyle.Render("Countdowns"))
	for _, r := range list {
		delta := cli.FormatDelta(r.Resolution)
		switch {
		case r.Resolution.DaysDelta == 0:
			delta = cli.SuccessStyle.Render(delta)
		case !r.Resolution.IsFuture:
			delta = cli.MutedStyle.Render(delta)
		}
		line := fmt.Sprintf("  %-12s %s  %s", delta, r.Resolution.Date, r.Countdown.Title)
		if r.Countdown.Rule != recurrence.None {
			line += cli.MutedStyle.Render(" ↻ " + cli.FormatRecurrence(r.Countdown.Rule))
		}
		if r.Countdown.Archived {
			line += cli.MutedStyle.Render(" (archived)")
		}
		if c.ShowIDs {
			line += cli.MutedStyle.Render(fmt.Sprintf(" (ID: %s)", r.Countdown.ID))
		}
		fmt.Println(line)
	}
	return nil
}

// resolveAll resolves each countdown against today. Upcoming ones come first,
// soonest first, followed by past ones, most recent first.
func resolveAll(items []models.Countdown, today calendar.Date, includeArchived bool) []resolved {
	var out []resolved
	for _, cd := range items {
		if cd.Archived && !includeArchived {
			continue
		}
		out = append(out, resolved{Countdown: cd, Resolution: recurrence.ResolveTarget(cd.Target(), today)})
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Resolution, out[j].Resolution
		if a.IsFuture != b.IsFuture {
			return a.IsFuture
		}
		return a.DaysDelta < b.DaysDelta
	})
	return out
}

type CountdownArchiveCmd struct {
	ID      string `arg:"" help:"Countdown ID."`
	Restore bool   `help:"Unarchive instead."`
}

func (c *CountdownArchiveCmd) Run(ctx *cli.Context) error {
	cd, err := findCountdown(ctx, c.ID)
	if err != nil {
		return err
	}
	cd.Archived = !c.Restore
	if _, err := ctx.Repo.SaveCountdown(cd); err != nil {
		return fmt.Errorf("failed to save countdown: %w", err)
	}
	if cd.Archived {
		fmt.Printf("Archived countdown: %s\n", cd.Title)
	} else {
		fmt.Printf("Restored countdown: %s\n", cd.Title)
	}
	return nil
}

type CountdownDeleteCmd struct {
	ID string `arg:"" help:"Countdown ID to delete."`
}

func (c *CountdownDeleteCmd) Run(ctx *cli.Context) error {
	cd, err := findCountdown(ctx, c.ID)
	if err != nil {
		return err
	}
	if err := ctx.Repo.DeleteCountdown(cd.ID); err != nil {
		return fmt.Errorf("failed to delete countdown: %w", err)
	}
	fmt.Printf("Deleted countdown: %s (ID: %s)\n", cd.Title, cd.ID)
	return nil
}

func findCountdown(ctx *cli.Context, id string) (models.Countdown, error) {
	items, err := ctx.Repo.Countdowns()
	if err != nil {
		return models.Countdown{}, fmt.Errorf("failed to get countdowns: %w", err)
	}
	for _, cd := range items {
		if cd.ID == id {
			return cd, nil
		}
	}
	return models.Countdown{}, fmt.Errorf("countdown %q: %w", id, storage.ErrNotFound)
}
