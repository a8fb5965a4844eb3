package timer

import (
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/focusflow/internal/calendar"
	"github.com/julianstephens/focusflow/internal/cli"
	"github.com/julianstephens/focusflow/internal/models"
	"github.com/julianstephens/focusflow/internal/notifier"
	"github.com/julianstephens/focusflow/internal/pomodoro"
	"github.com/julianstephens/focusflow/internal/storage"
	"github.com/julianstephens/focusflow/internal/tui"
)

type TimerCmd struct {
	Stopwatch bool   `help:"Start in stopwatch mode instead of Pomodoro."`
	Label     string `short:"l" help:"Session label, added to the day's log notes."`
	Project   string `short:"p" help:"Project to log time against. Defaults to the main project."`
}

func (c *TimerCmd) Run(ctx *cli.Context) error {
	project, err := ctx.ResolveProject(c.Project)
	if err != nil {
		return err
	}
	settings, err := ctx.Repo.TimerSettings()
	if err != nil {
		return fmt.Errorf("failed to get timer settings: %w", err)
	}

	lock := pomodoro.NewLock(ctx.LockPath())
	if err := lock.Acquire(); err != nil {
		return err
	}
	defer lock.Release()

	mode := tui.ModePomodoro
	if c.Stopwatch {
		mode = tui.ModeStopwatch
	}
	opts := tui.Options{
		Settings: settings,
		Mode:     mode,
		Label:    c.Label,
		Recorder: &Recorder{Ctx: ctx, ProjectID: project.ID},
		Now:      ctx.Now,
	}
	// Terminal output would corrupt the alt screen, so only the webhook is used.
	if w := ctx.WebhookNotifier(); w != nil {
		opts.Notifier = notifier.Multi{w}
	}

	p := tea.NewProgram(tui.NewModel(opts), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("timer failed: %w", err)
	}
	return nil
}

// Recorder saves finished timer runs as sessions and adds their hours to the
// day's study log.
type Recorder struct {
	Ctx       *cli.Context
	ProjectID string
}

func (r *Recorder) RecordSession(kind models.SessionKind, label string, d time.Duration, end time.Time) error {
	repo := r.Ctx.Repo
	session := pomodoro.NewSession(repo.NewID(), kind, label, r.ProjectID, d, end)
	if _, err := repo.AddSession(session); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	loc, err := r.Ctx.Location()
	if err != nil {
		return err
	}
	day := calendar.FromTime(end.In(loc))

	var existing *models.StudyLog
	current, err := repo.Log(day, r.ProjectID)
	switch {
	case err == nil:
		existing = &current
	case !errors.Is(err, storage.ErrNotFound):
		return err
	}

	hours, notes := pomodoro.MergeIntoLog(existing, pomodoro.HoursFor(d), session.Label)
	return repo.SaveLog(models.StudyLog{
		Date:      day,
		Hours:     hours,
		Notes:     notes,
		ProjectID: r.ProjectID,
	})
}
