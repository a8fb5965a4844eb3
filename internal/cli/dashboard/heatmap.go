package dashboard

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/focusflow/internal/calendar"
	"github.com/julianstephens/focusflow/internal/cli"
	"github.com/julianstephens/focusflow/internal/stats"
	"github.com/julianstephens/focusflow/internal/utils"
)

type HeatmapCmd struct {
	Weeks   int    `short:"w" help:"Number of weeks to show." default:"26"`
	Project string `short:"p" help:"Only include this project and use its theme."`
}

func (c *HeatmapCmd) Validate() error {
	if c.Weeks < 1 || c.Weeks > 53 {
		return fmt.Errorf("weeks must be between 1 and 53")
	}
	return nil
}

func (c *HeatmapCmd) Run(ctx *cli.Context) error {
	today, err := ctx.Today()
	if err != nil {
		return err
	}
	logs, err := ctx.Repo.Logs()
	if err != nil {
		return fmt.Errorf("failed to get logs: %w", err)
	}
	settings, err := ctx.Repo.Settings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	theme := string(settings.Theme)
	projectID := ""
	if c.Project != "" {
		p, err := ctx.ResolveProject(c.Project)
		if err != nil {
			return err
		}
		projectID = p.ID
		theme = string(p.Theme)
	}

	firstDay := time.Sunday
	if settings.WeekStartsMonday {
		firstDay = time.Monday
	}
	start := gridStart(today, c.Weeks, firstDay)
	totals := stats.DailyTotals(stats.Filter(logs, projectID, start, today), start, today)

	fmt.Println(cli.TitleStyle.Render(fmt.Sprintf("Study heatmap · last %d weeks", c.Weeks)))
	fmt.Print(renderHeatmap(totals, start, c.Weeks, firstDay, theme))
	fmt.Printf("\n%s  Less %s%s%s%s%s More\n",
		cli.MutedStyle.Render(fmt.Sprintf("%s total", utils.FormatHours(sumTotals(totals)))),
		cli.HeatCell(theme, 0), cli.HeatCell(theme, 1), cli.HeatCell(theme, 2), cli.HeatCell(theme, 3), cli.HeatCell(theme, 4))
	return nil
}

// gridStart returns the first cell of a grid of weeks columns ending in the
// week that contains today.
func gridStart(today calendar.Date, weeks int, firstDay time.Weekday) calendar.Date {
	offset := (int(today.Weekday()) - int(firstDay) + 7) % 7
	return today.AddDays(-offset - (weeks-1)*7)
}

// heatGrid buckets totals into 7 rows by weekday and one column per week.
// Cells after the last total stay at -1.
func heatGrid(totals []stats.DayTotal, start calendar.Date, weeks int, firstDay time.Weekday) [7][]int {
	var grid [7][]int
	for row := range grid {
		grid[row] = make([]int, weeks)
		for col := range grid[row] {
			grid[row][col] = -1
		}
	}
	for _, t := range totals {
		days := calendar.DaysBetween(start, t.Date)
		col := days / 7
		if days < 0 || col >= weeks {
			continue
		}
		row := (int(t.Date.Weekday()) - int(firstDay) + 7) % 7
		grid[row][col] = stats.Intensity(t.Hours)
	}
	return grid
}

func renderHeatmap(totals []stats.DayTotal, start calendar.Date, weeks int, firstDay time.Weekday, theme string) string {
	grid := heatGrid(totals, start, weeks, firstDay)
	var b strings.Builder
	for row := 0; row < 7; row++ {
		wd := time.Weekday((int(firstDay) + row) % 7)
		label := "   "
		if row%2 == 1 {
			label = wd.String()[:3]
		}
		b.WriteString(cli.MutedStyle.Render(label) + " ")
		for col := 0; col < weeks; col++ {
			if grid[row][col] < 0 {
				b.WriteString("  ")
				continue
			}
			b.WriteString(cli.HeatCell(theme, grid[row][col]) + " ")
		}
		b.WriteString("\n")
	}
	return b.String()
}

func sumTotals(totals []stats.DayTotal) float64 {
	sum := 0.0
	for _, t := range totals {
		sum += t.Hours
	}
	return sum
}
