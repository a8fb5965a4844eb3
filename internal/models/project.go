package models

import (
	"time"

	"github.com/julianstephens/focusflow/internal/constants"
)

// HeatmapTheme is the color family used when rendering a project's heatmap.
type HeatmapTheme string

const (
	ThemeGreen  HeatmapTheme = "green"
	ThemeBlue   HeatmapTheme = "blue"
	ThemeOrange HeatmapTheme = "orange"
	ThemePurple HeatmapTheme = "purple"
)

// Themes lists the supported heatmap themes.
func Themes() []HeatmapTheme {
	return []HeatmapTheme{ThemeGreen, ThemeBlue, ThemeOrange, ThemePurple}
}

type Project struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Theme     HeatmapTheme `json:"theme"`
	CreatedAt time.Time    `json:"createdAt"`
}

// DefaultProject is the project every install starts with and that legacy logs
// without a project are assigned to.
func DefaultProject(now time.Time) Project {
	return Project{
		ID:        constants.DefaultProjectID,
		Name:      constants.DefaultProjectName,
		Theme:     ThemeGreen,
		CreatedAt: now,
	}
}
