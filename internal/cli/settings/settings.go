package settings

import (
	"fmt"

	"github.com/julianstephens/focusflow/internal/cli"
	"github.com/julianstephens/focusflow/internal/models"
	"github.com/julianstephens/focusflow/internal/utils"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	Timezone         *string `help:"IANA timezone used to decide what today is (e.g. Europe/London, Local)."`
	Theme            *string `help:"Default heatmap theme for new projects (green, blue, orange, purple)."`
	WeekStartsMonday *bool   `help:"Start heatmap rows on Monday."`

	PomoDuration       *int  `help:"Focus block length in minutes."`
	ShortBreakDuration *int  `help:"Short break length in minutes."`
	LongBreakDuration  *int  `help:"Long break length in minutes."`
	PomosPerLongBreak  *int  `help:"Focus blocks before a long break."`
	AutoStartNextPomo  *bool `help:"Start the next focus block automatically after a break."`
	AutoStartBreak     *bool `help:"Start breaks automatically after a focus block."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Repo.Settings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	timer, err := ctx.Repo.TimerSettings()
	if err != nil {
		return fmt.Errorf("failed to get timer settings: %w", err)
	}

	if c.List {
		fmt.Println("Current Settings:")
		fmt.Printf("  Timezone:              %s\n", settings.Timezone)
		fmt.Printf("  Heatmap Theme:         %s\n", settings.Theme)
		fmt.Printf("  Week Starts Monday:    %v\n", settings.WeekStartsMonday)
		if ctx.Config.Timezone != "" {
			fmt.Printf("  (FOCUSFLOW_TIMEZONE overrides timezone with %s)\n", ctx.Config.Timezone)
		}
		fmt.Println("\nTimer Settings:")
		fmt.Printf("  Focus:                 %d min\n", timer.PomoDuration)
		fmt.Printf("  Short Break:           %d min\n", timer.ShortBreakDuration)
		fmt.Printf("  Long Break:            %d min\n", timer.LongBreakDuration)
		fmt.Printf("  Pomos per Long Break:  %d\n", timer.PomosPerLongBreak)
		fmt.Printf("  Auto-start Next Pomo:  %v\n", timer.AutoStartNextPomo)
		fmt.Printf("  Auto-start Break:      %v\n", timer.AutoStartBreak)
		return nil
	}

	updated := false
	if c.Timezone != nil {
		if !utils.ValidateTimezone(*c.Timezone) {
			return fmt.Errorf("invalid timezone %q", *c.Timezone)
		}
		settings.Timezone = *c.Timezone
		updated = true
	}
	if c.Theme != nil {
		theme, err := parseTheme(*c.Theme)
		if err != nil {
			return err
		}
		settings.Theme = theme
		updated = true
	}
	if c.WeekStartsMonday != nil {
		settings.WeekStartsMonday = *c.WeekStartsMonday
		updated = true
	}
	if updated {
		if err := ctx.Repo.SaveSettings(settings); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
	}

	timerUpdated := false
	setInt := func(dst *int, v *int) {
		if v != nil {
			*dst = *v
			timerUpdated = true
		}
	}
	setInt(&timer.PomoDuration, c.PomoDuration)
	setInt(&timer.ShortBreakDuration, c.ShortBreakDuration)
	setInt(&timer.LongBreakDuration, c.LongBreakDuration)
	setInt(&timer.PomosPerLongBreak, c.PomosPerLongBreak)
	if c.AutoStartNextPomo != nil {
		timer.AutoStartNextPomo = *c.AutoStartNextPomo
		timerUpdated = true
	}
	if c.AutoStartBreak != nil {
		timer.AutoStartBreak = *c.AutoStartBreak
		timerUpdated = true
	}
	if timerUpdated {
		if err := ctx.Repo.SaveTimerSettings(timer); err != nil {
			return fmt.Errorf("failed to save timer settings: %w", err)
		}
	}

	if updated || timerUpdated {
		fmt.Println("Settings updated successfully.")
	} else {
		fmt.Println("No changes specified. Use --list to view settings or flags to update them.")
	}

	return nil
}

func parseTheme(s string) (models.HeatmapTheme, error) {
	for _, t := range models.Themes() {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown theme %q (choose green, blue, orange or purple)", s)
}

// GoalsCmd shows or updates the weekly, monthly and yearly hour targets.
type GoalsCmd struct {
	Weekly  *float64 `help:"Weekly goal in hours."`
	Monthly *float64 `help:"Monthly goal in hours."`
	Yearly  *float64 `help:"Yearly goal in hours."`
}

func (c *GoalsCmd) Run(ctx *cli.Context) error {
	g, err := ctx.Repo.Goals()
	if err != nil {
		return fmt.Errorf("failed to get goals: %w", err)
	}

	if c.Weekly == nil && c.Monthly == nil && c.Yearly == nil {
		fmt.Println(cli.TitleStyle.Render("Goals"))
		fmt.Printf("  Weekly:   %s\n", utils.FormatHours(g.Weekly))
		fmt.Printf("  Monthly:  %s\n", utils.FormatHours(g.Monthly))
		fmt.Printf("  Yearly:   %s\n", utils.FormatHours(g.Yearly))
		return nil
	}

	if c.Weekly != nil {
		g.Weekly = *c.Weekly
	}
	if c.Monthly != nil {
		g.Monthly = *c.Monthly
	}
	if c.Yearly != nil {
		g.Yearly = *c.Yearly
	}
	if err := ctx.Repo.SaveGoals(g); err != nil {
		return fmt.Errorf("failed to save goals: %w", err)
	}
	fmt.Println("✓ Goals updated.")
	return nil
}
