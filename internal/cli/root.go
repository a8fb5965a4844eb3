package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/focusflow/internal/backup"
	"github.com/julianstephens/focusflow/internal/calendar"
	"github.com/julianstephens/focusflow/internal/config"
	"github.com/julianstephens/focusflow/internal/constants"
	"github.com/julianstephens/focusflow/internal/logger"
	"github.com/julianstephens/focusflow/internal/models"
	"github.com/julianstephens/focusflow/internal/recurrence"
	"github.com/julianstephens/focusflow/internal/storage"
	"github.com/julianstephens/focusflow/internal/storage/sqlite"
	"github.com/julianstephens/focusflow/internal/utils"
)

// ErrBackupUnsupported is returned by backup commands on non-SQLite stores.
var ErrBackupUnsupported = errors.New("backups are only supported for SQLite storage")

type Context struct {
	Store  storage.KV
	Repo   *storage.Repository
	Config *config.Config
	// Dir holds logs and the timer lockfile.
	Dir string
	// Clock defaults to time.Now.
	Clock func() time.Time
}

func NewContext(store storage.KV, cfg *config.Config, dir string) *Context {
	if cfg == nil {
		cfg = &config.Config{}
	}
	c := &Context{
		Store:  store,
		Config: cfg,
		Dir:    dir,
	}
	c.Repo = storage.NewRepository(store).WithClock(c.Now)
	return c
}

func (c *Context) Now() time.Time {
	if c.Clock != nil {
		return c.Clock()
	}
	return time.Now()
}

// Location returns the timezone used to decide what "today" is. The
// FOCUSFLOW_TIMEZONE override wins over the stored setting.
func (c *Context) Location() (*time.Location, error) {
	if c.Config != nil && c.Config.Timezone != "" {
		return utils.LoadLocation(c.Config.Timezone)
	}
	settings, err := c.Repo.Settings()
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	return utils.LoadLocation(settings.Timezone)
}

// Today returns the current calendar date in the configured timezone.
func (c *Context) Today() (calendar.Date, error) {
	loc, err := c.Location()
	if err != nil {
		return calendar.Date{}, err
	}
	return calendar.FromTime(c.Now().In(loc)), nil
}

// ParseDate accepts YYYY-MM-DD or one of today, yesterday and tomorrow. An
// empty string means today.
func (c *Context) ParseDate(s string) (calendar.Date, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "today":
		return c.Today()
	case "yesterday":
		today, err := c.Today()
		return today.AddDays(-1), err
	case "tomorrow":
		today, err := c.Today()
		return today.AddDays(1), err
	}
	return calendar.Parse(strings.TrimSpace(s))
}

// ResolveProject looks a project up by ID or name. An empty reference selects
// the default project.
func (c *Context) ResolveProject(ref string) (models.Project, error) {
	if strings.TrimSpace(ref) == "" {
		ref = constants.DefaultProjectID
	}
	return c.Repo.Project(ref)
}

// LockPath is where the running timer keeps its PID lockfile.
func (c *Context) LockPath() string {
	return filepath.Join(c.Dir, constants.TimerLockfileName)
}

// BackupManager returns a backup manager for the SQLite database file.
func (c *Context) BackupManager() (*backup.Manager, error) {
	if _, ok := c.Store.(*sqlite.Store); !ok {
		return nil, ErrBackupUnsupported
	}
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if c.Clock != nil {
		mgr = mgr.WithClock(c.Clock)
	}
	return mgr, nil
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	mgr, err := c.BackupManager()
	if err != nil {
		return
	}
	if _, err := mgr.CreateBackup(); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// Confirm asks a yes/no question on the terminal.
func Confirm(title, description string) (bool, error) {
	var confirmed bool
	err := huh.NewConfirm().
		Title(title).
		Description(description).
		Affirmative("Yes").
		Negative("No").
		Value(&confirmed).
		Run()
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, err
	}
	return confirmed, nil
}

// FormatRecurrence formats a recurrence rule into a human-readable string
func FormatRecurrence(rule recurrence.Rule) string {
	switch rule {
	case recurrence.Daily:
		return "daily"
	case recurrence.Weekly:
		return "weekly"
	case recurrence.Monthly:
		return "monthly"
	case recurrence.Yearly:
		return "yearly"
	default:
		return "once"
	}
}

// FormatDelta describes a countdown distance such as "in 3 days" or
// "2 days ago".
func FormatDelta(res recurrence.Resolution) string {
	switch {
	case res.DaysDelta == 0:
		return "today"
	case res.IsFuture && res.DaysDelta == 1:
		return "tomorrow"
	case res.IsFuture:
		return fmt.Sprintf("in %d days", res.DaysDelta)
	case res.DaysDelta == 1:
		return "yesterday"
	default:
		return fmt.Sprintf("%d days ago", res.DaysDelta)
	}
}
