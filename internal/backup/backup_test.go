package backup

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/focusflow/internal/constants"
)

// setupTestDB creates a database with the kv table and two rows.
func setupTestDB(t *testing.T) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "focusflow.db")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	defer db.Close()

	stmts := []string{
		`CREATE TABLE kv (key TEXT PRIMARY KEY, value TEXT NOT NULL)`,
		`INSERT INTO kv (key, value) VALUES ('focusflow_logs_v1', '[]')`,
		`INSERT INTO kv (key, value) VALUES ('focusflow_goals_v1', '{"weekly":40}')`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("setup failed on %q: %v", stmt, err)
		}
	}
	return dbPath
}

// steppingClock advances one minute per call.
func steppingClock() func() time.Time {
	current := time.Date(2026, time.March, 14, 8, 0, 0, 0, time.UTC)
	return func() time.Time {
		current = current.Add(time.Minute)
		return current
	}
}

func countRows(t *testing.T, path string) int {
	t.Helper()
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("failed to open %s: %v", path, err)
	}
	defer db.Close()
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM kv").Scan(&n); err != nil {
		t.Fatalf("failed to count rows in %s: %v", path, err)
	}
	return n
}

func TestCreateBackup(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath).WithClock(steppingClock())

	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}
	if got := filepath.Base(backupPath); got != "focusflow-20260314-0801.db" {
		t.Errorf("backup name = %s, want focusflow-20260314-0801.db", got)
	}
	if filepath.Dir(backupPath) != filepath.Join(filepath.Dir(dbPath), constants.BackupDirName) {
		t.Errorf("backup written outside the backup dir: %s", backupPath)
	}
	if n := countRows(t, backupPath); n != 2 {
		t.Errorf("expected 2 rows in backup, got %d", n)
	}
}

func TestBackupRotation(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath).WithClock(steppingClock())

	for i := 0; i < constants.MaxBackups+5; i++ {
		if _, err := mgr.CreateBackup(); err != nil {
			t.Fatalf("CreateBackup #%d failed: %v", i, err)
		}
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != constants.MaxBackups {
		t.Fatalf("expected %d backups after rotation, got %d", constants.MaxBackups, len(backups))
	}
	for i := 1; i < len(backups); i++ {
		if backups[i].Timestamp.After(backups[i-1].Timestamp) {
			t.Errorf("backups are not sorted newest first at %d", i)
		}
	}
	// The five oldest (08:01..08:05) were pruned.
	oldest := backups[len(backups)-1].Name
	if oldest != "focusflow-20260314-0806.db" {
		t.Errorf("oldest kept backup = %s, want focusflow-20260314-0806.db", oldest)
	}
}

func TestUniqueBackupFilenames(t *testing.T) {
	dbPath := setupTestDB(t)
	frozen := time.Date(2026, time.March, 14, 8, 0, 30, 0, time.UTC)
	mgr := NewManager(dbPath).WithClock(func() time.Time { return frozen })

	want := []string{
		"focusflow-20260314-0800.db",
		"focusflow-20260314-080030.db",
		"focusflow-20260314-080030-1.db",
		"focusflow-20260314-080030-2.db",
	}
	for i, name := range want {
		path, err := mgr.CreateBackup()
		if err != nil {
			t.Fatalf("CreateBackup #%d failed: %v", i, err)
		}
		if got := filepath.Base(path); got != name {
			t.Errorf("backup #%d = %s, want %s", i, got, name)
		}
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != len(want) {
		t.Errorf("expected every variant to be listed, got %d", len(backups))
	}
}

func TestParseBackupName(t *testing.T) {
	tests := []struct {
		name   string
		wantOK bool
		want   string
	}{
		{"focusflow-20260314-0801.db", true, "2026-03-14 08:01:00"},
		{"focusflow-20260314-080130.db", true, "2026-03-14 08:01:30"},
		{"focusflow-20260314-080130-7.db", true, "2026-03-14 08:01:30"},
		{"otherapp-20260314-0801.db", false, ""},
		{"focusflow-notadate.db", false, ""},
		{"focusflow-20260314-0801.sqlite", false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, ok := parseBackupName(tt.name)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && ts.Format("2006-01-02 15:04:05") != tt.want {
				t.Errorf("timestamp = %s, want %s", ts.Format("2006-01-02 15:04:05"), tt.want)
			}
		})
	}
}

func TestListBackupsIgnoresStrayFiles(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath).WithClock(steppingClock())

	backups, err := mgr.ListBackups()
	if err != nil || len(backups) != 0 {
		t.Fatalf("expected no backups before the directory exists, got %v, %v", backups, err)
	}

	if _, err := mgr.CreateBackup(); err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}
	stray := filepath.Join(mgr.GetBackupDir(), "notes.txt")
	if err := os.WriteFile(stray, []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}

	backups, err = mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 1 {
		t.Fatalf("expected 1 backup, got %d", len(backups))
	}
	if backups[0].Size == 0 || backups[0].Timestamp.IsZero() {
		t.Errorf("incomplete backup info: %+v", backups[0])
	}
}

func TestRestoreBackup(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath).WithClock(steppingClock())

	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO kv (key, value) VALUES ('focusflow_sessions_v1', '[]')`); err != nil {
		t.Fatalf("failed to insert: %v", err)
	}
	db.Close()
	if n := countRows(t, dbPath); n != 3 {
		t.Fatalf("expected 3 rows before restore, got %d", n)
	}

	previous, err := mgr.RestoreBackup(backupPath)
	if err != nil {
		t.Fatalf("RestoreBackup failed: %v", err)
	}
	if n := countRows(t, dbPath); n != 2 {
		t.Errorf("expected 2 rows after restore, got %d", n)
	}

	// The pre-restore backup holds the modified database.
	if previous == "" {
		t.Fatal("expected a pre-restore backup path")
	}
	if n := countRows(t, previous); n != 3 {
		t.Errorf("pre-restore backup should have 3 rows, got %d", n)
	}

	backups, _ := mgr.ListBackups()
	if len(backups) != 2 {
		t.Errorf("expected 2 backups after restore, got %d", len(backups))
	}
}

func TestRestoreRejectsInvalidBackups(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)
	dir := t.TempDir()

	garbage := filepath.Join(dir, "garbage.db")
	if err := os.WriteFile(garbage, []byte("not a database"), 0600); err != nil {
		t.Fatal(err)
	}

	foreign := filepath.Join(dir, "foreign.db")
	db, err := sql.Open("sqlite", foreign)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec("CREATE TABLE tasks (id TEXT)"); err != nil {
		t.Fatal(err)
	}
	db.Close()

	for _, path := range []string{garbage, foreign, filepath.Join(dir, "missing.db")} {
		if _, err := mgr.RestoreBackup(path); err == nil {
			t.Errorf("RestoreBackup(%s) should fail", filepath.Base(path))
		}
	}
	if n := countRows(t, dbPath); n != 2 {
		t.Errorf("database should be untouched, has %d rows", n)
	}
}

func TestResolveAndLatest(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath).WithClock(steppingClock())

	if _, err := mgr.Latest(); !errors.Is(err, ErrNoBackups) {
		t.Errorf("Latest with no backups: expected ErrNoBackups, got %v", err)
	}

	var paths []string
	for i := 0; i < 3; i++ {
		p, err := mgr.CreateBackup()
		if err != nil {
			t.Fatalf("CreateBackup failed: %v", err)
		}
		paths = append(paths, p)
	}

	latest, err := mgr.Resolve("")
	if err != nil || latest.Path != paths[2] {
		t.Errorf("Resolve(\"\") = (%+v, %v), want %s", latest, err, paths[2])
	}
	byName, err := mgr.Resolve(filepath.Base(paths[0]))
	if err != nil || byName.Path != paths[0] {
		t.Errorf("Resolve(name) = (%+v, %v)", byName, err)
	}
	if _, err := mgr.Resolve("focusflow-19990101-0000.db"); err == nil {
		t.Error("expected error for unknown backup")
	}
}

func TestBackupWithNoDatabase(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "absent.db"))
	if _, err := mgr.CreateBackup(); err == nil {
		t.Error("expected error backing up a missing database")
	}
}

func TestPruneReportsCount(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath).WithClock(steppingClock())
	mgr.keep = 2

	for i := 0; i < 2; i++ {
		if _, err := mgr.CreateBackup(); err != nil {
			t.Fatal(err)
		}
	}
	// Create extra files directly so CreateBackup's own pruning does not hide them.
	for i := 0; i < 3; i++ {
		name := fmt.Sprintf("%s2020010%d-0000%s", constants.BackupFilePrefix, i+1, constants.BackupFileSuffix)
		if err := copyFile(dbPath, filepath.Join(mgr.GetBackupDir(), name)); err != nil {
			t.Fatal(err)
		}
	}

	removed, err := mgr.Prune()
	if err != nil {
		t.Fatalf("Prune failed: %v", err)
	}
	if removed != 3 {
		t.Errorf("Prune removed %d, want 3", removed)
	}
}
