package dashboard

import (
	"fmt"

	"github.com/julianstephens/focusflow/internal/cli"
	"github.com/julianstephens/focusflow/internal/goals"
	"github.com/julianstephens/focusflow/internal/progression"
	"github.com/julianstephens/focusflow/internal/stats"
	"github.com/julianstephens/focusflow/internal/streak"
	"github.com/julianstephens/focusflow/internal/utils"
)

const barWidth = 24

// StatusCmd prints today's overview: streak, goal rings and rank.
type StatusCmd struct {
	Project string `short:"p" help:"Scope the streak to one project."`
}

func (c *StatusCmd) Run(ctx *cli.Context) error {
	today, err := ctx.Today()
	if err != nil {
		return err
	}
	logs, err := ctx.Repo.Logs()
	if err != nil {
		return fmt.Errorf("failed to get logs: %w", err)
	}
	g, err := ctx.Repo.Goals()
	if err != nil {
		return fmt.Errorf("failed to get goals: %w", err)
	}

	var st streak.Result
	scope := "all projects"
	if c.Project != "" {
		p, err := ctx.ResolveProject(c.Project)
		if err != nil {
			return err
		}
		st = streak.ComputeForProject(logs, p.ID, today)
		scope = p.Name
	} else {
		st = streak.Compute(logs, today)
	}

	todayHours := stats.TotalHours(stats.Filter(logs, "", today, today))

	fmt.Println(cli.TitleStyle.Render(fmt.Sprintf("focusflow · %s", today)))
	fmt.Println()
	fmt.Printf("Today:   %s\n", utils.FormatHours(todayHours))
	fmt.Printf("Streak:  🔥 %d day(s) %s\n", st.Current, cli.MutedStyle.Render(fmt.Sprintf("(longest %d, %s)", st.Longest, scope)))
	fmt.Println()

	fmt.Println(cli.HeaderStyle.Render("Goals"))
	for _, r := range goals.Progress(logs, g, today) {
		line := fmt.Sprintf("  %-8s %s %5.1f%%  %s / %s", r.Period, cli.Bar(r.Percent, barWidth), r.Percent,
			utils.FormatHours(r.Hours), utils.FormatHours(r.Target))
		if r.Percent >= 100 {
			line += " " + cli.SuccessStyle.Render("✓")
		}
		fmt.Println(line)
	}
	fmt.Println()

	lvl := progression.Classify(progression.DefaultLadder(), stats.TotalHours(logs))
	printLevel(lvl)
	return nil
}

func printLevel(lvl progression.Level) {
	fmt.Println(cli.HeaderStyle.Render("Rank"))
	fmt.Printf("  %s  %s\n", rankStyle(lvl.Rank).Render(lvl.Rank.Title), xpLabel(lvl))
	if lvl.Next == nil {
		fmt.Println("  " + cli.SuccessStyle.Render("Top rank reached"))
		return
	}
	fmt.Printf("  %s %5.1f%%  %s to %s\n", cli.Bar(lvl.ProgressPercent, barWidth), lvl.ProgressPercent,
		utils.FormatHours(lvl.HoursToNext), lvl.Next.Title)
}
