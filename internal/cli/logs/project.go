package logs

import (
	"errors"
	"fmt"

	"github.com/julianstephens/focusflow/internal/cli"
	"github.com/julianstephens/focusflow/internal/models"
	"github.com/julianstephens/focusflow/internal/stats"
	"github.com/julianstephens/focusflow/internal/storage"
	"github.com/julianstephens/focusflow/internal/utils"
)

type ProjectCmd struct {
	Add    *ProjectAddCmd    `cmd:"" help:"Create a project."`
	List   *ProjectListCmd   `cmd:"" help:"List projects."`
	Delete *ProjectDeleteCmd `cmd:"" help:"Delete a project. Its logs are kept."`
}

type ProjectAddCmd struct {
	Name  string `arg:"" help:"Project name."`
	Theme string `short:"t" help:"Heatmap theme (green, blue, orange, purple). Defaults to the settings theme."`
}

func (c *ProjectAddCmd) Run(ctx *cli.Context) error {
	if _, err := ctx.Repo.Project(c.Name); err == nil {
		return fmt.Errorf("a project named %q already exists", c.Name)
	}

	theme := models.HeatmapTheme(c.Theme)
	if c.Theme == "" {
		settings, err := ctx.Repo.Settings()
		if err != nil {
			return fmt.Errorf("failed to get settings: %w", err)
		}
		theme = settings.Theme
	} else if !validTheme(theme) {
		return fmt.Errorf("unknown theme %q", c.Theme)
	}

	p, err := ctx.Repo.SaveProject(models.Project{Name: c.Name, Theme: theme})
	if err != nil {
		return fmt.Errorf("failed to save project: %w", err)
	}
	fmt.Printf("Added project: %s (ID: %s)\n", p.Name, p.ID)
	return nil
}

func validTheme(theme models.HeatmapTheme) bool {
	for _, t := range models.Themes() {
		if t == theme {
			return true
		}
	}
	return false
}

type ProjectListCmd struct {
	ShowIDs bool `help:"Show project IDs." name:"show-ids"`
}

func (c *ProjectListCmd) Run(ctx *cli.Context) error {
	projects, err := ctx.Repo.Projects()
	if err != nil {
		return fmt.Errorf("failed to get projects: %w", err)
	}
	logs, err := ctx.Repo.Logs()
	if err != nil {
		return fmt.Errorf("failed to get logs: %w", err)
	}

	fmt.Println("Projects:")
	for _, p := range projects {
		hours := 0.0
		for _, l := range logs {
			if l.ProjectID == p.ID {
				hours += l.Hours
			}
		}
		idStr := ""
		if c.ShowIDs {
			idStr = fmt.Sprintf(" (ID: %s)", p.ID)
		}
		fmt.Printf("  %s %s%s - %s\n", cli.HeatCell(string(p.Theme), 4), p.Name, idStr, utils.FormatHours(hours))
	}
	fmt.Printf("\nTotal: %s\n", utils.FormatHours(stats.TotalHours(logs)))
	return nil
}

type ProjectDeleteCmd struct {
	Project string `arg:"" help:"Project name or ID."`
	Yes     bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *ProjectDeleteCmd) Run(ctx *cli.Context) error {
	p, err := ctx.Repo.Project(c.Project)
	if err != nil {
		return fmt.Errorf("failed to find project %s: %w", c.Project, err)
	}

	if !c.Yes {
		ok, err := cli.Confirm(
			fmt.Sprintf("Delete project %q?", p.Name),
			"Logs recorded for this project are kept.",
		)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Delete cancelled.")
			return nil
		}
	}

	if err := ctx.Repo.DeleteProject(p.ID); err != nil {
		if errors.Is(err, storage.ErrLastProject) {
			return fmt.Errorf("%w: create another project first", err)
		}
		return fmt.Errorf("failed to delete project: %w", err)
	}
	fmt.Printf("Deleted project: %s (ID: %s)\n", p.Name, p.ID)
	return nil
}
