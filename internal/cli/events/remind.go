package events

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/julianstephens/focusflow/internal/calendar"
	"github.com/julianstephens/focusflow/internal/cli"
	"github.com/julianstephens/focusflow/internal/constants"
	"github.com/julianstephens/focusflow/internal/logger"
	"github.com/julianstephens/focusflow/internal/notifier"
	"github.com/julianstephens/focusflow/internal/reminder"
	"github.com/julianstephens/focusflow/internal/scheduler"
)

const (
	reminderJob = "reminders"
	backupJob   = "nightly-backup"
)

// RemindCmd lists today's reminders, or with --watch keeps running and
// delivers them as they come due.
type RemindCmd struct {
	Watch bool `short:"w" help:"Keep running, deliver reminders when due and back up nightly."`
}

func (c *RemindCmd) Run(ctx *cli.Context) error {
	if c.Watch {
		return c.watch(ctx)
	}

	loc, err := ctx.Location()
	if err != nil {
		return err
	}
	now := ctx.Now().In(loc)
	events, err := ctx.Repo.Events()
	if err != nil {
		return fmt.Errorf("failed to get events: %w", err)
	}

	today := calendar.FromTime(now)
	fmt.Println(cli.TitleStyle.Render(fmt.Sprintf("Reminders · %s", today)))
	shown := 0
	for _, o := range expandWindow(events, today, today) {
		e := o.Event
		if e.Time == "" || e.ReminderMinutes <= 0 {
			continue
		}
		start, err := e.StartOn(o.Date, loc)
		if err != nil {
			continue
		}
		trigger := start.Add(-time.Duration(e.ReminderMinutes) * time.Minute)
		status := cli.MutedStyle.Render("passed")
		if trigger.After(now) {
			status = "at " + trigger.Format(constants.TimeFormat)
		}
		fmt.Printf("  %s %s (%d min before, %s)\n", e.Time, e.Title, e.ReminderMinutes, status)
		shown++
	}
	if shown == 0 {
		fmt.Println("No reminders today.")
	}
	return nil
}

func (c *RemindCmd) watch(ctx *cli.Context) error {
	loc, err := ctx.Location()
	if err != nil {
		return err
	}

	s, err := scheduler.New(loc, watchJobs(ctx, reminder.NewTracker(), ctx.Notifier())...)
	if err != nil {
		return err
	}
	s.Start()
	defer s.Stop()

	fmt.Println("Watching for reminders. Press Ctrl+C to stop.")
	fmt.Printf("  Next nightly backup: %s\n", s.Next(backupJob).Format("2006-01-02 15:04"))

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-sigCtx.Done()

	fmt.Println("\nStopped watching.")
	return nil
}

// watchJobs returns the reminder check and nightly backup jobs.
func watchJobs(ctx *cli.Context, tracker *reminder.Tracker, n notifier.Notifier) []scheduler.Job {
	return []scheduler.Job{
		{
			Name: reminderJob,
			Spec: constants.ReminderCheckSchedule,
			Run: func(context.Context) error {
				_, err := deliverDue(ctx, tracker, n)
				return err
			},
		},
		{
			Name: backupJob,
			Spec: constants.NightlyBackupSchedule,
			Run: func(context.Context) error {
				ctx.PerformAutomaticBackup()
				return nil
			},
		},
	}
}

// deliverDue sends each due reminder that the tracker has not seen yet and
// returns how many were sent.
func deliverDue(ctx *cli.Context, tracker *reminder.Tracker, n notifier.Notifier) (int, error) {
	loc, err := ctx.Location()
	if err != nil {
		return 0, err
	}
	events, err := ctx.Repo.Events()
	if err != nil {
		return 0, fmt.Errorf("failed to get events: %w", err)
	}

	sent := 0
	for _, notice := range tracker.Fresh(reminder.Due(events, ctx.Now().In(loc))) {
		if err := n.Notify(notice.Title(), notice.Body()); err != nil {
			logger.Warn("Failed to deliver reminder", "event", notice.Event.ID, "error", err)
			continue
		}
		tracker.Delivered(notice.Key)
		logger.Info("Delivered reminder", "key", notice.Key)
		sent++
	}
	return sent, nil
}
