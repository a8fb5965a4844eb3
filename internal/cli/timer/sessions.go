package timer

import (
	"fmt"
	"time"

	"github.com/julianstephens/focusflow/internal/cli"
	"github.com/julianstephens/focusflow/internal/constants"
	"github.com/julianstephens/focusflow/internal/models"
	"github.com/julianstephens/focusflow/internal/utils"
)

type SessionsCmd struct {
	List   *SessionListCmd   `cmd:"" default:"withargs" help:"List recent timer sessions."`
	Delete *SessionDeleteCmd `cmd:"" help:"Delete a session. The day's log is not changed."`
}

type SessionListCmd struct {
	Limit   int  `short:"n" help:"Number of sessions to show." default:"10"`
	ShowIDs bool `help:"Show session IDs." name:"show-ids"`
}

func (c *SessionListCmd) Run(ctx *cli.Context) error {
	sessions, err := ctx.Repo.Sessions()
	if err != nil {
		return fmt.Errorf("failed to get sessions: %w", err)
	}
	if len(sessions) == 0 {
		fmt.Println("No sessions recorded yet. Start one with 'focusflow timer'.")
		return nil
	}
	loc, err := ctx.Location()
	if err != nil {
		return err
	}

	if c.Limit > 0 && len(sessions) > c.Limit {
		sessions = sessions[:c.Limit]
	}
	fmt.Println(cli.TitleStyle.Render("Recent sessions"))
	for _, s := range sessions {
		idStr := ""
		if c.ShowIDs {
			idStr = cli.MutedStyle.Render(fmt.Sprintf(" (ID: %s)", s.ID))
		}
		fmt.Printf("  %s  %-9s %-10s %s%s\n",
			s.End.In(loc).Format("2006-01-02 "+constants.TimeFormat),
			kindLabel(s.Kind),
			utils.FormatClock(time.Duration(s.DurationSec)*time.Second),
			s.Label, idStr)
	}
	return nil
}

func kindLabel(k models.SessionKind) string {
	if k == models.SessionStopwatch {
		return "stopwatch"
	}
	return "pomodoro"
}

type SessionDeleteCmd struct {
	ID string `arg:"" help:"Session ID to delete."`
}

func (c *SessionDeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.Repo.DeleteSession(c.ID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	fmt.Printf("Deleted session: %s\n", c.ID)
	return nil
}
