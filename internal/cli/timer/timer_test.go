package timer

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/focusflow/internal/calendar"
	"github.com/julianstephens/focusflow/internal/cli"
	"github.com/julianstephens/focusflow/internal/config"
	"github.com/julianstephens/focusflow/internal/constants"
	"github.com/julianstephens/focusflow/internal/models"
	"github.com/julianstephens/focusflow/internal/pomodoro"
	"github.com/julianstephens/focusflow/internal/storage"
)

func setupTestContext(t *testing.T) *cli.Context {
	dir := t.TempDir()
	store := storage.NewJSONStore(filepath.Join(dir, "focusflow.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	ctx := cli.NewContext(store, &config.Config{Timezone: "Asia/Tokyo"}, dir)
	ctx.Clock = func() time.Time { return time.Date(2026, time.March, 14, 10, 0, 0, 0, time.UTC) }
	return ctx
}

func TestRecorder_NewLog(t *testing.T) {
	ctx := setupTestContext(t)
	rec := &Recorder{Ctx: ctx, ProjectID: constants.DefaultProjectID}

	// 16:00 UTC is already the 15th in Tokyo
	end := time.Date(2026, time.March, 14, 16, 0, 0, 0, time.UTC)
	if err := rec.RecordSession(models.SessionPomodoro, "", 25*time.Minute, end); err != nil {
		t.Fatalf("RecordSession: %v", err)
	}

	sessions, err := ctx.Repo.Sessions()
	if err != nil {
		t.Fatalf("Sessions: %v", err)
	}
	if len(sessions) != 1 || sessions[0].DurationSec != 1500 || sessions[0].Label != "Focus Session" {
		t.Fatalf("unexpected sessions %+v", sessions)
	}

	log, err := ctx.Repo.Log(calendar.MustParse("2026-03-15"), constants.DefaultProjectID)
	if err != nil {
		t.Fatalf("expected a log on the Tokyo date: %v", err)
	}
	if log.Hours != 0.4 || log.Notes != "Focus Session" {
		t.Errorf("unexpected log %+v", log)
	}
}

func TestRecorder_MergesIntoExistingLog(t *testing.T) {
	ctx := setupTestContext(t)
	physics, err := ctx.Repo.SaveProject(models.Project{Name: "Physics"})
	if err != nil {
		t.Fatalf("SaveProject: %v", err)
	}
	day := calendar.MustParse("2026-03-14")
	if err := ctx.Repo.SaveLog(models.StudyLog{Date: day, Hours: 2, Notes: "reading", ProjectID: physics.ID}); err != nil {
		t.Fatalf("SaveLog: %v", err)
	}

	rec := &Recorder{Ctx: ctx, ProjectID: physics.ID}
	end := time.Date(2026, time.March, 14, 3, 0, 0, 0, time.UTC) // noon in Tokyo
	if err := rec.RecordSession(models.SessionStopwatch, "Problem set", 90*time.Minute, end); err != nil {
		t.Fatalf("RecordSession: %v", err)
	}

	log, err := ctx.Repo.Log(day, physics.ID)
	if err != nil {
		t.Fatalf("Log: %v", err)
	}
	if log.Hours != 3.5 {
		t.Errorf("hours = %v, want 3.5", log.Hours)
	}
	if log.Notes != "reading; Problem set" {
		t.Errorf("notes = %q", log.Notes)
	}
}

func TestTimerCmd_Locked(t *testing.T) {
	ctx := setupTestContext(t)

	// Hold the lock as this process so it counts as live
	lock := pomodoro.NewLock(ctx.LockPath())
	if err := lock.Acquire(); err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	defer lock.Release()

	err := (&TimerCmd{}).Run(ctx)
	if !errors.Is(err, pomodoro.ErrLocked) {
		t.Errorf("expected ErrLocked, got %v", err)
	}
}

func TestTimerCmd_UnknownProject(t *testing.T) {
	ctx := setupTestContext(t)
	if err := (&TimerCmd{Project: "nope"}).Run(ctx); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSessionCommands(t *testing.T) {
	ctx := setupTestContext(t)

	if err := (&SessionListCmd{Limit: 5}).Run(ctx); err != nil {
		t.Fatalf("list on empty store failed: %v", err)
	}

	rec := &Recorder{Ctx: ctx, ProjectID: constants.DefaultProjectID}
	end := time.Date(2026, time.March, 14, 3, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		if err := rec.RecordSession(models.SessionPomodoro, "", 25*time.Minute, end.Add(time.Duration(i)*time.Hour)); err != nil {
			t.Fatalf("RecordSession: %v", err)
		}
	}
	if err := (&SessionListCmd{Limit: 2, ShowIDs: true}).Run(ctx); err != nil {
		t.Errorf("list failed: %v", err)
	}

	sessions, _ := ctx.Repo.Sessions()
	if err := (&SessionDeleteCmd{ID: sessions[0].ID}).Run(ctx); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	remaining, _ := ctx.Repo.Sessions()
	if len(remaining) != 2 {
		t.Errorf("expected 2 sessions left, got %d", len(remaining))
	}
	if err := (&SessionDeleteCmd{ID: "missing"}).Run(ctx); err == nil {
		t.Error("expected error deleting a missing session")
	}
}
