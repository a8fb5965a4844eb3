package dashboard

import (
	"fmt"

	"github.com/julianstephens/focusflow/internal/cli"
	"github.com/julianstephens/focusflow/internal/stats"
	"github.com/julianstephens/focusflow/internal/utils"
)

type StatsCmd struct {
	Range   string `short:"r" help:"Time range (7days, 30days, year, all)." enum:"7days,30days,year,all" default:"30days"`
	Project string `short:"p" help:"Only include this project."`
}

func (c *StatsCmd) Run(ctx *cli.Context) error {
	today, err := ctx.Today()
	if err != nil {
		return err
	}
	logs, err := ctx.Repo.Logs()
	if err != nil {
		return fmt.Errorf("failed to get logs: %w", err)
	}

	projectID := ""
	label := "all projects"
	if c.Project != "" {
		p, err := ctx.ResolveProject(c.Project)
		if err != nil {
			return err
		}
		projectID = p.ID
		label = p.Name
	}

	rng := stats.Range(c.Range)
	records := stats.Filter(logs, projectID, rng.From(today), today)
	summary := stats.Summarize(records)

	fmt.Println(cli.TitleStyle.Render(fmt.Sprintf("Statistics · %s · %s", rangeLabel(rng), label)))
	fmt.Println()
	fmt.Printf("  Total hours:       %s\n", utils.FormatHours(summary.TotalHours))
	fmt.Printf("  Logged days:       %d\n", summary.Count)
	fmt.Printf("  Average per day:   %s\n", utils.FormatHours(summary.AverageHours))
	fmt.Printf("  Weekday average:   %s\n", utils.FormatHours(summary.WeekdayAverage))
	fmt.Printf("  Weekend average:   %s\n", utils.FormatHours(summary.WeekendAverage))
	fmt.Println()

	fmt.Println(cli.HeaderStyle.Render("By weekday"))
	for _, f := range stats.Frequency(records) {
		fmt.Printf("  %s %s %s\n", f.Weekday.String()[:3], cli.Bar(f.Percent, barWidth), utils.FormatHours(f.Hours))
	}
	return nil
}

func rangeLabel(r stats.Range) string {
	switch r {
	case stats.Last7Days:
		return "last 7 days"
	case stats.Last30Days:
		return "last 30 days"
	case stats.ThisYear:
		return "this year"
	default:
		return "all time"
	}
}
