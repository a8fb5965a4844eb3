package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/focusflow/internal/cli"
	"github.com/julianstephens/focusflow/internal/cli/backups"
	"github.com/julianstephens/focusflow/internal/cli/dashboard"
	"github.com/julianstephens/focusflow/internal/cli/events"
	"github.com/julianstephens/focusflow/internal/cli/logs"
	"github.com/julianstephens/focusflow/internal/cli/settings"
	"github.com/julianstephens/focusflow/internal/cli/system"
	"github.com/julianstephens/focusflow/internal/cli/timer"
	"github.com/julianstephens/focusflow/internal/config"
	"github.com/julianstephens/focusflow/internal/constants"
	"github.com/julianstephens/focusflow/internal/errors"
	"github.com/julianstephens/focusflow/internal/logger"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"SQLite path, .json file, PostgreSQL connection string without credentials, or 'postgresql' to use the keyring." type:"string" default:"${config}"`
	Verbose bool   `short:"v" help:"Log debug output to stderr." default:"${debug}"`

	Init     system.InitCmd     `cmd:"" help:"Initialize focusflow storage."`
	Migrate  system.MigrateCmd  `cmd:"" help:"Run database migrations."`
	Doctor   system.DoctorCmd   `cmd:"" help:"Run health checks and diagnostics."`
	Validate system.ValidateCmd `cmd:"" help:"Check stored data for conflicts."`
	Reset    system.ResetCmd    `cmd:"" help:"Delete all focusflow data."`
	Debug    system.DebugCmd    `cmd:"" help:"Debug commands for troubleshooting."`
	Keyring  struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store a secret in the OS keyring."`
		Get    system.KeyringGetCmd    `cmd:"" help:"Show a stored secret (masked)."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove a secret from the OS keyring."`
		Status system.KeyringStatusCmd `cmd:"" help:"Show which secrets are stored." default:"1"`
	} `cmd:"" help:"Manage secrets in the OS keyring."`

	Status    dashboard.StatusCmd  `cmd:"" help:"Show streak, goal progress and rank." default:"1"`
	Log       logs.LogCmd          `cmd:"" help:"Record and review study hours."`
	Project   logs.ProjectCmd      `cmd:"" help:"Manage projects."`
	Timer     timer.TimerCmd       `cmd:"" help:"Run a Pomodoro or stopwatch timer."`
	Sessions  timer.SessionsCmd    `cmd:"" help:"Review recorded timer sessions."`
	Stats     dashboard.StatsCmd   `cmd:"" help:"Show study statistics."`
	Heatmap   dashboard.HeatmapCmd `cmd:"" help:"Show the study heatmap."`
	Profile   dashboard.ProfileCmd `cmd:"" help:"Show level, XP and achievements."`
	Event     events.EventCmd      `cmd:"" help:"Manage calendar events."`
	Countdown events.CountdownCmd  `cmd:"" help:"Manage countdowns."`
	Remind    events.RemindCmd     `cmd:"" help:"Show or watch for event reminders."`
	Goals     settings.GoalsCmd    `cmd:"" help:"Show or set study goals."`
	Settings  settings.SettingsCmd `cmd:"" help:"Manage application settings."`
	Backup    backups.BackupCmd    `cmd:"" help:"Manage database backups."`
	Notify    system.NotifyCmd     `cmd:"" hidden:"" help:"Send a notification (used internally)."`
}

// storeless commands run without loading the store.
var storeless = []string{"init", "keyring", "notify"}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, errors.Format(err))
		os.Exit(1)
	}

	ctx := kong.Parse(&CLI,
		kong.Name("focusflow"),
		kong.Description("Study tracker with streaks, goals, Pomodoro timer and calendar"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version": constants.Version,
			"config":  cfg.Config,
			"debug":   fmt.Sprint(cfg.Debug),
		},
	)
	cfg.Config = CLI.Config
	cfg.Debug = CLI.Verbose

	dir, err := config.Dir(cfg.Config)
	if err != nil {
		errors.Fatal(err)
	}
	if err := logger.Init(logger.Config{Debug: cfg.Debug, ConfigDir: dir, LogDir: cfg.LogDir}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}

	command := ctx.Command()
	skipLoad := false
	for _, name := range storeless {
		if command == name || strings.HasPrefix(command, name+" ") {
			skipLoad = true
			break
		}
	}

	// Keyring commands must work before a keyring-backed store can be opened.
	store, err := cli.OpenStore(cfg.Config)
	if err != nil {
		if !skipLoad || command == "init" {
			errors.Fatal(err)
		}
		logger.Debug("Store unavailable", "error", err)
	}
	if store != nil && !skipLoad {
		if err := store.Load(); err != nil {
			errors.Fatal(err)
		}
	}

	appCtx := cli.NewContext(store, cfg, dir)
	logger.Debug("Running command", "command", command, "config", cfg.Config)

	err = ctx.Run(appCtx)
	if store != nil {
		if cerr := store.Close(); cerr != nil {
			logger.Warn("Failed to close store", "error", cerr)
		}
	}
	errors.Fatal(err)
}
