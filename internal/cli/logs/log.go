package logs

import (
	"fmt"

	"github.com/julianstephens/focusflow/internal/cli"
	"github.com/julianstephens/focusflow/internal/models"
	"github.com/julianstephens/focusflow/internal/stats"
	"github.com/julianstephens/focusflow/internal/utils"
	"github.com/julianstephens/focusflow/internal/validation"
)

type LogCmd struct {
	Add    *LogAddCmd    `cmd:"" help:"Record study hours for a day."`
	Delete *LogDeleteCmd `cmd:"" help:"Delete the log for a day."`
	List   *LogListCmd   `cmd:"" help:"List study logs."`
}

type LogAddCmd struct {
	Hours   float64 `arg:"" help:"Hours studied."`
	Date    string  `short:"d" help:"Day to log (YYYY-MM-DD, today, yesterday). Future days are rejected." default:"today"`
	Project string  `short:"p" help:"Project name or ID. Defaults to the main project."`
	Notes   string  `short:"n" help:"Notes for the day."`
	Append  bool    `short:"a" help:"Add to the existing hours instead of replacing them."`
}

func (c *LogAddCmd) Validate() error {
	if c.Hours < 0 {
		return fmt.Errorf("hours cannot be negative")
	}
	if c.Hours > validation.MaxHoursPerDay {
		return fmt.Errorf("hours cannot exceed %d", validation.MaxHoursPerDay)
	}
	return nil
}

func (c *LogAddCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ParseDate(c.Date)
	if err != nil {
		return err
	}
	today, err := ctx.Today()
	if err != nil {
		return err
	}
	// Only today and earlier can be logged
	if date.After(today) {
		return fmt.Errorf("cannot log hours for %s, which is after today (%s)", date, today)
	}
	project, err := ctx.ResolveProject(c.Project)
	if err != nil {
		return err
	}

	entry := models.StudyLog{
		Date:      date,
		Hours:     c.Hours,
		Notes:     c.Notes,
		ProjectID: project.ID,
	}
	if c.Append {
		if existing, err := ctx.Repo.Log(date, project.ID); err == nil {
			entry.Hours += existing.Hours
			if existing.Notes != "" {
				if entry.Notes == "" {
					entry.Notes = existing.Notes
				} else {
					entry.Notes = existing.Notes + "; " + entry.Notes
				}
			}
		}
	}
	if entry.Hours > validation.MaxHoursPerDay {
		return fmt.Errorf("a day cannot hold more than %d hours (would be %.1f)", validation.MaxHoursPerDay, entry.Hours)
	}

	if err := ctx.Repo.SaveLog(entry); err != nil {
		return fmt.Errorf("failed to save log: %w", err)
	}

	fmt.Printf("✓ Logged %s on %s for %s\n", utils.FormatHours(entry.Hours), date, project.Name)
	return nil
}

type LogDeleteCmd struct {
	Date    string `arg:"" help:"Day of the log (YYYY-MM-DD, today, yesterday)."`
	Project string `short:"p" help:"Project name or ID. Defaults to the main project."`
}

func (c *LogDeleteCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ParseDate(c.Date)
	if err != nil {
		return err
	}
	project, err := ctx.ResolveProject(c.Project)
	if err != nil {
		return err
	}
	if err := ctx.Repo.DeleteLog(date, project.ID); err != nil {
		return fmt.Errorf("failed to delete log: %w", err)
	}
	fmt.Printf("Deleted log for %s in %s\n", date, project.Name)
	return nil
}

type LogListCmd struct {
	Project string `short:"p" help:"Only show logs for this project."`
	Days    int    `help:"Only show the last N days (0 for all)." default:"30"`
}

func (c *LogListCmd) Run(ctx *cli.Context) error {
	today, err := ctx.Today()
	if err != nil {
		return err
	}
	all, err := ctx.Repo.Logs()
	if err != nil {
		return fmt.Errorf("failed to get logs: %w", err)
	}
	projects, err := ctx.Repo.Projects()
	if err != nil {
		return fmt.Errorf("failed to get projects: %w", err)
	}
	names := make(map[string]string, len(projects))
	for _, p := range projects {
		names[p.ID] = p.Name
	}

	projectID := ""
	if c.Project != "" {
		p, err := ctx.ResolveProject(c.Project)
		if err != nil {
			return err
		}
		projectID = p.ID
	}

	from := stats.AllTime.From(today)
	if c.Days > 0 {
		from = today.AddDays(-(c.Days - 1))
	}
	records := stats.Filter(all, projectID, from, today)
	if len(records) == 0 {
		fmt.Println("No logs found")
		return nil
	}

	fmt.Println(cli.TitleStyle.Render("Study Logs"))
	for _, l := range records {
		name, ok := names[l.ProjectID]
		if !ok {
			name = cli.MutedStyle.Render(l.ProjectID + " (deleted)")
		}
		line := fmt.Sprintf("  %s  %-8s %s", l.Date, utils.FormatHours(l.Hours), name)
		if l.Notes != "" {
			line += cli.MutedStyle.Render("  " + l.Notes)
		}
		fmt.Println(line)
	}
	fmt.Printf("\nTotal: %s across %d log(s)\n", utils.FormatHours(stats.TotalHours(records)), len(records))
	return nil
}
