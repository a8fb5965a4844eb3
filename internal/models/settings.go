package models

// Settings represents application-wide settings
type Settings struct {
	Timezone         string       `json:"timezone"`           // IANA timezone name (e.g. "Europe/London", or "Local" for system timezone)
	Theme            HeatmapTheme `json:"theme"`              // default heatmap theme for new projects
	WeekStartsMonday bool         `json:"week_starts_monday"` // whether weekly goals and heatmap rows start on Monday
}
