package system

import (
	"testing"

	"github.com/julianstephens/focusflow/internal/calendar"
	"github.com/julianstephens/focusflow/internal/constants"
	"github.com/julianstephens/focusflow/internal/models"
)

func TestMigrateCmd(t *testing.T) {
	ctx, store, cleanup := setupTestDoctorDB(t)
	defer cleanup()

	if err := (&MigrateCmd{}).Run(ctx); err != nil {
		t.Fatalf("migrate on up-to-date database failed: %v", err)
	}

	if _, err := store.GetDB().Exec("DELETE FROM schema_version"); err != nil {
		t.Fatalf("failed to reset schema version: %v", err)
	}
	// 001_init uses IF NOT EXISTS so it can be re-applied
	if err := (&MigrateCmd{}).Run(ctx); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	if err := checkMigrationsComplete(ctx); err != nil {
		t.Errorf("migrations should be complete after migrate: %v", err)
	}
}

func TestValidateCmd_FixesDuplicates(t *testing.T) {
	ctx, _, cleanup := setupTestDoctorDB(t)
	defer cleanup()

	raw := `[{"date":"2026-03-01","hours":2,"projectId":"default-project"},` +
		`{"date":"2026-03-01","hours":1.5,"projectId":"default-project","notes":"evening"}]`
	if err := ctx.Store.Set(constants.KeyLogs, raw); err != nil {
		t.Fatalf("failed to write raw logs: %v", err)
	}

	if err := (&ValidateCmd{}).Run(ctx); err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	logs, _ := ctx.Repo.Logs()
	if len(logs) != 2 {
		t.Fatalf("validate without --fix should not change data, got %d logs", len(logs))
	}

	if err := (&ValidateCmd{Fix: true}).Run(ctx); err != nil {
		t.Fatalf("validate --fix failed: %v", err)
	}
	logs, err := ctx.Repo.Logs()
	if err != nil {
		t.Fatalf("failed to get logs: %v", err)
	}
	if len(logs) != 1 {
		t.Fatalf("expected duplicates merged into one log, got %d", len(logs))
	}
	result, err := validateAll(ctx)
	if err != nil {
		t.Fatalf("validateAll: %v", err)
	}
	if result.HasConflicts() {
		t.Errorf("conflicts remain after fix: %s", result.FormatReport())
	}
}

func TestResetCmd(t *testing.T) {
	ctx, _, cleanup := setupTestDoctorDB(t)
	defer cleanup()

	if err := ctx.Repo.SaveLog(models.StudyLog{Date: calendar.MustParse("2026-03-01"), Hours: 2}); err != nil {
		t.Fatalf("SaveLog: %v", err)
	}
	if err := ctx.Repo.SaveGoals(models.Goals{Weekly: 1, Monthly: 2, Yearly: 3}); err != nil {
		t.Fatalf("SaveGoals: %v", err)
	}

	if err := (&ResetCmd{Yes: true}).Run(ctx); err != nil {
		t.Fatalf("reset failed: %v", err)
	}

	keys, err := ctx.Store.List(constants.KeyPrefix)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(keys) != 0 {
		t.Errorf("expected no keys after reset, got %v", keys)
	}

	mgr, _ := ctx.BackupManager()
	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups: %v", err)
	}
	if len(backups) != 1 {
		t.Errorf("expected a safety backup before reset, got %d", len(backups))
	}
}

func TestDebugCommands(t *testing.T) {
	ctx, _, cleanup := setupTestDoctorDB(t)
	defer cleanup()

	if err := (&DebugDBPathCmd{}).Run(ctx); err != nil {
		t.Errorf("debug db-path failed: %v", err)
	}
	if _, err := ctx.Repo.Projects(); err != nil {
		t.Fatalf("Projects: %v", err)
	}
	if err := (&DebugKeysCmd{}).Run(ctx); err != nil {
		t.Errorf("debug keys failed: %v", err)
	}
	if err := (&DebugDumpCmd{Key: "projects"}).Run(ctx); err != nil {
		t.Errorf("debug dump projects failed: %v", err)
	}
	if err := (&DebugDumpCmd{Key: "sessions"}).Run(ctx); err == nil {
		t.Error("expected error dumping a missing document")
	}
}

func TestNormalizeKey(t *testing.T) {
	tests := map[string]string{
		"logs":              "focusflow_logs_v1",
		"timer_settings":    "focusflow_timer_settings_v1",
		"logs_v1":           "focusflow_logs_v1",
		"focusflow_logs_v1": "focusflow_logs_v1",
	}
	for in, want := range tests {
		if got := normalizeKey(in); got != want {
			t.Errorf("normalizeKey(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNotifyCmd(t *testing.T) {
	ctx, _, cleanup := setupTestDoctorDB(t)
	defer cleanup()

	if err := (&NotifyCmd{Title: "t", Body: "b", DryRun: true}).Run(ctx); err != nil {
		t.Errorf("dry run failed: %v", err)
	}
	if err := (&NotifyCmd{Title: "t", Body: "b"}).Run(ctx); err != nil {
		t.Errorf("terminal notification failed: %v", err)
	}
}
