package constants

const (
	// General Settings
	SettingTimezone         = "timezone"
	SettingTheme            = "theme"
	SettingWeekStartsMonday = "week_starts_monday"

	// Default Settings Values
	DefaultTimezone         = "Local" // Use system local timezone by default
	DefaultTheme            = "green"
	DefaultWeekStartsMonday = true

	// Goal defaults, in hours
	DefaultWeeklyGoal  = 40
	DefaultMonthlyGoal = 160
	DefaultYearlyGoal  = 2000

	// Timer defaults, in minutes
	DefaultPomoDuration       = 25
	DefaultShortBreakDuration = 5
	DefaultLongBreakDuration  = 15
	DefaultPomosPerLongBreak  = 4
)
