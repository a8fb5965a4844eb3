package dashboard

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/julianstephens/focusflow/internal/cli"
	"github.com/julianstephens/focusflow/internal/progression"
	"github.com/julianstephens/focusflow/internal/stats"
	"github.com/julianstephens/focusflow/internal/streak"
)

// ProfileCmd shows the rank and every achievement.
type ProfileCmd struct {
	Unlocked bool `help:"Only show unlocked achievements."`
}

func (c *ProfileCmd) Run(ctx *cli.Context) error {
	today, err := ctx.Today()
	if err != nil {
		return err
	}
	logs, err := ctx.Repo.Logs()
	if err != nil {
		return fmt.Errorf("failed to get logs: %w", err)
	}

	ladder := progression.DefaultLadder()
	total := stats.TotalHours(logs)
	st := streak.Compute(logs, today)

	printLevel(progression.Classify(ladder, total))
	fmt.Println()

	statuses := progression.NewEngine(ladder).Evaluate(logs, total, st.Current)
	unlocked := 0
	for _, s := range statuses {
		if s.Unlocked {
			unlocked++
		}
	}

	fmt.Println(cli.HeaderStyle.Render(fmt.Sprintf("Achievements (%d/%d)", unlocked, len(statuses))))
	for _, s := range statuses {
		a := s.Achievement
		if s.Unlocked {
			fmt.Printf("  %s %s %s\n", a.Icon, a.Title, cli.MutedStyle.Render(a.Description))
			continue
		}
		if c.Unlocked {
			continue
		}
		fmt.Printf("  🔒 %s\n", cli.MutedStyle.Render(a.Title+" "+a.Description))
	}
	return nil
}

func rankStyle(r progression.Rank) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(r.Color)).Bold(true)
}

// xpLabel renders experience with thousands separators, plus the XP needed for
// the next rank when there is one.
func xpLabel(lvl progression.Level) string {
	current := humanize.Comma(int64(lvl.CurrentXP))
	if lvl.Next == nil {
		return current + " XP"
	}
	return current + " / " + humanize.Comma(int64(lvl.NextLevelXP)) + " XP"
}
