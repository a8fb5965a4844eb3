package constants

import "time"

const (
	AppName            = "focusflow"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/focusflow/focusflow.db"
	Version            = "v0.1.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "focusflow-"
	BackupFileSuffix = ".db"

	// Timer lock constants
	TimerLockfileName = "focusflow-timer.lock"

	// Notification constants
	NotificationDurationMs = 10000

	// Reminder constants
	ReminderWindow        = 90 * time.Second
	ReminderCheckSchedule = "@every 30s"
	NightlyBackupSchedule = "0 0 * * *"

	// Storage keys. Every key the application owns carries KeyPrefix so ClearAll
	// can find them.
	KeyPrefix        = "focusflow_"
	KeyLogs          = "focusflow_logs_v1"
	KeyProjects      = "focusflow_projects_v1"
	KeyGoals         = "focusflow_goals_v1"
	KeyCountdowns    = "focusflow_countdowns_v1"
	KeySessions      = "focusflow_sessions_v1"
	KeyTimerSettings = "focusflow_timer_settings_v1"
	KeyCustomEvents  = "focusflow_custom_events_v1"
	KeySettings      = "focusflow_settings_v1"

	// Project constants
	DefaultProjectID   = "default-project"
	DefaultProjectName = "Main Project"

	// XPPerHour converts study hours into experience points.
	XPPerHour = 100
)
