package system

import (
	"fmt"
	"os"
	"time"

	"github.com/julianstephens/focusflow/internal/cli"
	"github.com/julianstephens/focusflow/internal/migration"
	"github.com/julianstephens/focusflow/internal/storage/sqlite"
	"github.com/julianstephens/focusflow/internal/validation"
)

// migrationStore is implemented by the SQL-backed stores.
type migrationStore interface {
	MigrationStatus() (migration.Status, error)
}

type DoctorCmd struct{}

type check struct {
	name string
	// requiresDB checks are skipped when the database is unreachable
	requiresDB bool
	// warnOnly checks report a warning instead of failing
	warnOnly bool
	run      func(ctx *cli.Context) error
}

var doctorChecks = []check{
	{name: "Schema version", requiresDB: true, run: checkSchemaVersion},
	{name: "Migrations complete", requiresDB: true, run: checkMigrationsComplete},
	{name: "Backups present", warnOnly: true, run: checkBackupsPresent},
	{name: "Data validation", requiresDB: true, run: checkValidation},
	{name: "Clock/timezone", run: checkClockTimezone},
	{name: "Timer lock", warnOnly: true, run: checkTimerLock},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	dbReachable := false

	if err := checkDBReachable(ctx); err != nil {
		fmt.Printf("❌ Database reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Database reachable: OK\n")
		dbReachable = true
	}

	for _, c := range doctorChecks {
		if c.requiresDB && !dbReachable {
			fmt.Printf("⊘ %s: SKIPPED (database not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		switch {
		case err == nil:
			fmt.Printf("✓ %s: OK\n", c.name)
		case c.warnOnly:
			fmt.Printf("⚠ %s: WARNING\n", c.name)
			fmt.Printf("   %v\n", err)
		default:
			fmt.Printf("❌ %s: FAIL\n", c.name)
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		}
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	fmt.Println("All diagnostics passed!")
	return nil
}

func checkDBReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}

	// For SQLite, also try a simple query
	if sqliteStore, ok := ctx.Store.(*sqlite.Store); ok {
		db := sqliteStore.GetDB()
		if db == nil {
			return fmt.Errorf("database connection is nil")
		}
		var result int
		if err := db.QueryRow("SELECT 1").Scan(&result); err != nil {
			return fmt.Errorf("failed to query database: %w", err)
		}
	}

	return nil
}

func migrationStatus(ctx *cli.Context) (migration.Status, bool, error) {
	ms, ok := ctx.Store.(migrationStore)
	if !ok {
		// JSON store doesn't have migrations
		return migration.Status{}, false, nil
	}
	st, err := ms.MigrationStatus()
	if err != nil {
		return migration.Status{}, true, fmt.Errorf("failed to get schema version: %w", err)
	}
	return st, true, nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	st, ok, err := migrationStatus(ctx)
	if err != nil || !ok {
		return err
	}
	if st.Current > st.Latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", st.Current, st.Latest)
	}
	return nil
}

func checkMigrationsComplete(ctx *cli.Context) error {
	st, ok, err := migrationStatus(ctx)
	if err != nil || !ok {
		return err
	}
	if st.Current < st.Latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d - run 'focusflow migrate'", st.Current, st.Latest)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	mgr, err := ctx.BackupManager()
	if err != nil {
		return err
	}
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}

	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'focusflow backup create'")
	}

	return nil
}

func checkValidation(ctx *cli.Context) error {
	result, err := validateAll(ctx)
	if err != nil {
		return err
	}
	if result.HasConflicts() {
		return fmt.Errorf("%d conflict(s) found - run 'focusflow validate' for details", len(result.Conflicts))
	}
	return nil
}

// validateAll runs every validator over the stored records.
func validateAll(ctx *cli.Context) (validation.ValidationResult, error) {
	var result validation.ValidationResult

	logs, err := ctx.Repo.Logs()
	if err != nil {
		return result, fmt.Errorf("failed to get logs: %w", err)
	}
	projects, err := ctx.Repo.Projects()
	if err != nil {
		return result, fmt.Errorf("failed to get projects: %w", err)
	}
	events, err := ctx.Repo.Events()
	if err != nil {
		return result, fmt.Errorf("failed to get events: %w", err)
	}
	countdowns, err := ctx.Repo.Countdowns()
	if err != nil {
		return result, fmt.Errorf("failed to get countdowns: %w", err)
	}

	v := validation.New()
	result.Merge(v.ValidateLogs(logs, projects))
	result.Merge(v.ValidateProjects(projects))
	result.Merge(v.ValidateEvents(events))
	result.Merge(v.ValidateCountdowns(countdowns))
	return result, nil
}

func checkClockTimezone(ctx *cli.Context) error {
	now := ctx.Now()

	// Check if time is in a reasonable range (after 2020 and before 2100)
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}

	if _, err := ctx.Location(); err != nil {
		return fmt.Errorf("invalid timezone: %w", err)
	}
	return nil
}

func checkTimerLock(ctx *cli.Context) error {
	if _, err := os.Stat(ctx.LockPath()); err == nil {
		return fmt.Errorf("timer lockfile present at %s (a timer is running or crashed)", ctx.LockPath())
	}
	return nil
}
