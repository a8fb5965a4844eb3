package events

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/focusflow/internal/calendar"
	"github.com/julianstephens/focusflow/internal/cli"
	"github.com/julianstephens/focusflow/internal/config"
	"github.com/julianstephens/focusflow/internal/models"
	"github.com/julianstephens/focusflow/internal/recurrence"
	"github.com/julianstephens/focusflow/internal/reminder"
	"github.com/julianstephens/focusflow/internal/storage"
)

// 2026-03-14 09:50 UTC, a Saturday
var testNow = time.Date(2026, time.March, 14, 9, 50, 0, 0, time.UTC)

func setupTestContext(t *testing.T) *cli.Context {
	dir := t.TempDir()
	store := storage.NewJSONStore(filepath.Join(dir, "focusflow.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	ctx := cli.NewContext(store, &config.Config{Timezone: "UTC"}, dir)
	ctx.Clock = func() time.Time { return testNow }
	return ctx
}

type recordingNotifier struct {
	titles []string
	err    error
}

func (r *recordingNotifier) Notify(title, body string) error {
	if r.err != nil {
		return r.err
	}
	r.titles = append(r.titles, title)
	return nil
}

func TestEventAddCmd(t *testing.T) {
	ctx := setupTestContext(t)

	cmd := &EventAddCmd{
		Title:      "Study group",
		Date:       "2026-03-02",
		Time:       "18:00",
		Type:       "meeting",
		Recurrence: "weekly",
		Remind:     15,
	}
	if err := cmd.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("event add failed: %v", err)
	}

	events, err := ctx.Repo.Events()
	if err != nil {
		t.Fatalf("Events: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	e := events[0]
	if e.Rule != recurrence.Weekly || e.Type != models.EventMeeting || e.ReminderMinutes != 15 {
		t.Errorf("unexpected event %+v", e)
	}
}

func TestEventAddCmd_Invalid(t *testing.T) {
	ctx := setupTestContext(t)

	if err := (&EventAddCmd{Title: "x", Time: "7pm"}).Validate(); err == nil {
		t.Error("expected error for bad time format")
	}
	if err := (&EventAddCmd{Title: "x", Remind: -1}).Validate(); err == nil {
		t.Error("expected error for negative reminder")
	}
	// A reminder needs a start time
	if err := (&EventAddCmd{Title: "Exam", Date: "today", Remind: 10, Recurrence: "none"}).Run(ctx); err == nil {
		t.Error("expected error for reminder without time")
	}
	if err := (&EventAddCmd{Title: "  ", Date: "today", Recurrence: "none"}).Run(ctx); err == nil {
		t.Error("expected error for empty title")
	}
}

func TestExpandWindow(t *testing.T) {
	events := []models.Event{
		{ID: "a", Title: "Standup", Date: calendar.MustParse("2026-03-02"), Time: "09:00", Rule: recurrence.Weekly},
		{ID: "b", Title: "Deadline", Date: calendar.MustParse("2026-03-09"), Rule: recurrence.None},
		{ID: "c", Title: "Rent", Date: calendar.MustParse("2026-01-31"), Rule: recurrence.Monthly},
	}
	start := calendar.MustParse("2026-03-01")
	occ := expandWindow(events, start, start.EndOfMonth())

	// 5 Mondays, one deadline, and the 31st
	if len(occ) != 7 {
		t.Fatalf("expected 7 occurrences, got %d", len(occ))
	}
	for i := 1; i < len(occ); i++ {
		if occ[i].Date.Before(occ[i-1].Date) {
			t.Errorf("occurrences out of order: %s before %s", occ[i-1].Date, occ[i].Date)
		}
	}
	// The all-day deadline sorts ahead of the timed standup on the 9th
	for i, o := range occ {
		if o.Date.String() == "2026-03-09" {
			if o.Event.ID != "b" || occ[i+1].Event.ID != "a" {
				t.Errorf("expected deadline before standup on 2026-03-09")
			}
			break
		}
	}
	if last := occ[len(occ)-1]; last.Event.ID != "c" || last.Date.String() != "2026-03-31" {
		t.Errorf("last occurrence = %s %s, want rent on 2026-03-31", last.Event.ID, last.Date)
	}
}

func TestMonthStart(t *testing.T) {
	today := calendar.MustParse("2026-03-14")
	if got, _ := monthStart("", today); got.String() != "2026-03-01" {
		t.Errorf("monthStart(\"\") = %s", got)
	}
	if got, _ := monthStart("2026-12", today); got.String() != "2026-12-01" {
		t.Errorf("monthStart(2026-12) = %s", got)
	}
	if _, err := monthStart("March", today); err == nil {
		t.Error("expected error for bad month")
	}
}

func TestEventListShowDelete(t *testing.T) {
	ctx := setupTestContext(t)

	saved, err := ctx.Repo.SaveEvent(models.Event{
		Title: "Lab", Date: calendar.MustParse("2026-03-03"), Time: "14:00", Rule: recurrence.Weekly,
	})
	if err != nil {
		t.Fatalf("SaveEvent: %v", err)
	}

	if err := (&EventListCmd{}).Run(ctx); err != nil {
		t.Errorf("event list failed: %v", err)
	}
	if err := (&EventListCmd{Month: "2025-01"}).Run(ctx); err != nil {
		t.Errorf("event list for empty month failed: %v", err)
	}
	if err := (&EventShowCmd{ID: saved.ID}).Run(ctx); err != nil {
		t.Errorf("event show failed: %v", err)
	}
	if err := (&EventShowCmd{ID: "missing"}).Run(ctx); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	if err := (&EventDeleteCmd{ID: saved.ID, Yes: true}).Run(ctx); err != nil {
		t.Fatalf("event delete failed: %v", err)
	}
	events, _ := ctx.Repo.Events()
	if len(events) != 0 {
		t.Errorf("expected no events after delete, got %d", len(events))
	}
}

func TestCountdownAddCmd(t *testing.T) {
	ctx := setupTestContext(t)

	if err := (&CountdownAddCmd{Title: "Mum", Date: "1965-05-20", Type: "birthday"}).Run(ctx); err != nil {
		t.Fatalf("countdown add failed: %v", err)
	}
	if err := (&CountdownAddCmd{Title: "Exam", Date: "2026-06-01", Type: "countdown"}).Run(ctx); err != nil {
		t.Fatalf("countdown add failed: %v", err)
	}
	if err := (&CountdownAddCmd{Title: "Payday", Date: "2026-01-31", Type: "countdown", Recurrence: "monthly"}).Run(ctx); err != nil {
		t.Fatalf("countdown add failed: %v", err)
	}

	items, err := ctx.Repo.Countdowns()
	if err != nil {
		t.Fatalf("Countdowns: %v", err)
	}
	rules := map[string]recurrence.Rule{}
	for _, cd := range items {
		rules[cd.Title] = cd.Rule
	}
	if rules["Mum"] != recurrence.Yearly {
		t.Errorf("birthday should default to yearly, got %s", rules["Mum"])
	}
	if rules["Exam"] != recurrence.None {
		t.Errorf("plain countdown should default to none, got %s", rules["Exam"])
	}
	if rules["Payday"] != recurrence.Monthly {
		t.Errorf("explicit recurrence ignored, got %s", rules["Payday"])
	}

	if err := (&CountdownListCmd{ShowIDs: true}).Run(ctx); err != nil {
		t.Errorf("countdown list failed: %v", err)
	}
}

func TestResolveAll(t *testing.T) {
	today := calendar.MustParse("2026-03-14")
	items := []models.Countdown{
		{ID: "past", Title: "Trip", Date: calendar.MustParse("2026-03-01"), Type: models.CountdownPlain},
		{ID: "far", Title: "Exam", Date: calendar.MustParse("2026-06-01"), Type: models.CountdownPlain},
		{ID: "bday", Title: "Mum", Date: calendar.MustParse("1965-03-20"), Type: models.CountdownBirthday, Rule: recurrence.Yearly},
		{ID: "old", Title: "Archived", Date: calendar.MustParse("2026-03-15"), Type: models.CountdownPlain, Archived: true},
	}

	got := resolveAll(items, today, false)
	order := []string{"bday", "far", "past"}
	if len(got) != len(order) {
		t.Fatalf("expected %d countdowns, got %d", len(order), len(got))
	}
	for i, id := range order {
		if got[i].Countdown.ID != id {
			t.Errorf("position %d = %s, want %s", i, got[i].Countdown.ID, id)
		}
	}
	if got[0].Resolution.Date.String() != "2026-03-20" || got[0].Resolution.DaysDelta != 6 {
		t.Errorf("birthday resolved to %+v", got[0].Resolution)
	}

	if all := resolveAll(items, today, true); len(all) != 4 || all[0].Countdown.ID != "old" {
		t.Errorf("archived countdown should be included and sorted first, got %+v", all)
	}
}

func TestCountdownArchiveAndDelete(t *testing.T) {
	ctx := setupTestContext(t)

	saved, err := ctx.Repo.SaveCountdown(models.Countdown{
		Title: "Exam", Date: calendar.MustParse("2026-06-01"), Type: models.CountdownPlain,
	})
	if err != nil {
		t.Fatalf("SaveCountdown: %v", err)
	}

	if err := (&CountdownArchiveCmd{ID: saved.ID}).Run(ctx); err != nil {
		t.Fatalf("archive failed: %v", err)
	}
	cd, err := findCountdown(ctx, saved.ID)
	if err != nil {
		t.Fatalf("findCountdown: %v", err)
	}
	if !cd.Archived {
		t.Error("expected countdown to be archived")
	}

	if err := (&CountdownArchiveCmd{ID: saved.ID, Restore: true}).Run(ctx); err != nil {
		t.Fatalf("unarchive failed: %v", err)
	}
	if cd, _ := findCountdown(ctx, saved.ID); cd.Archived {
		t.Error("expected countdown to be restored")
	}

	if err := (&CountdownDeleteCmd{ID: saved.ID}).Run(ctx); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := findCountdown(ctx, saved.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestDeliverDue(t *testing.T) {
	ctx := setupTestContext(t)

	// Starts 10:00, reminder 10 minutes before: due at 09:50
	if _, err := ctx.Repo.SaveEvent(models.Event{
		Title: "Lecture", Date: calendar.MustParse("2026-03-14"), Time: "10:00", ReminderMinutes: 10,
	}); err != nil {
		t.Fatalf("SaveEvent: %v", err)
	}
	// Not due yet
	if _, err := ctx.Repo.SaveEvent(models.Event{
		Title: "Seminar", Date: calendar.MustParse("2026-03-14"), Time: "15:00", ReminderMinutes: 10,
	}); err != nil {
		t.Fatalf("SaveEvent: %v", err)
	}

	tracker := reminder.NewTracker()
	n := &recordingNotifier{}

	sent, err := deliverDue(ctx, tracker, n)
	if err != nil {
		t.Fatalf("deliverDue: %v", err)
	}
	if sent != 1 || len(n.titles) != 1 || n.titles[0] != "Reminder: Lecture" {
		t.Fatalf("expected one Lecture reminder, got %d %v", sent, n.titles)
	}

	// The same occurrence is not delivered twice
	sent, err = deliverDue(ctx, tracker, n)
	if err != nil {
		t.Fatalf("deliverDue: %v", err)
	}
	if sent != 0 {
		t.Errorf("expected no repeat delivery, got %d", sent)
	}
}

func TestDeliverDue_NotifierError(t *testing.T) {
	ctx := setupTestContext(t)
	if _, err := ctx.Repo.SaveEvent(models.Event{
		Title: "Lecture", Date: calendar.MustParse("2026-03-14"), Time: "10:00", ReminderMinutes: 10,
	}); err != nil {
		t.Fatalf("SaveEvent: %v", err)
	}

	tracker := reminder.NewTracker()
	n := &recordingNotifier{err: errors.New("offline")}
	sent, err := deliverDue(ctx, tracker, n)
	if err != nil {
		t.Fatalf("deliverDue should not fail on notifier errors: %v", err)
	}
	if sent != 0 {
		t.Errorf("expected nothing sent, got %d", sent)
	}

	// The next check within the reminder window retries the failed notice
	ctx.Clock = func() time.Time { return testNow.Add(30 * time.Second) }
	n.err = nil
	sent, err = deliverDue(ctx, tracker, n)
	if err != nil {
		t.Fatalf("deliverDue: %v", err)
	}
	if sent != 1 || len(n.titles) != 1 || n.titles[0] != "Reminder: Lecture" {
		t.Errorf("expected the reminder on retry, got %d %v", sent, n.titles)
	}
}

func TestWatchJobs(t *testing.T) {
	ctx := setupTestContext(t)
	jobs := watchJobs(ctx, reminder.NewTracker(), &recordingNotifier{})
	if len(jobs) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(jobs))
	}
	names := map[string]string{}
	for _, j := range jobs {
		names[j.Name] = j.Spec
		if err := j.Run(context.Background()); err != nil {
			t.Errorf("job %s failed: %v", j.Name, err)
		}
	}
	if names[reminderJob] != "@every 30s" || names[backupJob] != "0 0 * * *" {
		t.Errorf("unexpected job specs %v", names)
	}
}

func TestRemindCmd(t *testing.T) {
	ctx := setupTestContext(t)
	if err := (&RemindCmd{}).Run(ctx); err != nil {
		t.Fatalf("remind on empty store failed: %v", err)
	}
	if _, err := ctx.Repo.SaveEvent(models.Event{
		Title: "Lecture", Date: calendar.MustParse("2026-03-14"), Time: "10:00", ReminderMinutes: 10,
	}); err != nil {
		t.Fatalf("SaveEvent: %v", err)
	}
	if err := (&RemindCmd{}).Run(ctx); err != nil {
		t.Errorf("remind failed: %v", err)
	}
}
