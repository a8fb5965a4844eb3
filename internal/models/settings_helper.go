package models

import (
	"fmt"
	"strconv"

	"github.com/julianstephens/focusflow/internal/constants"
)

// MapToSettings converts a map of key-value pairs to a Settings struct. Keys
// missing from data keep their defaults.
func MapToSettings(data map[string]string) (Settings, error) {
	settings := Settings{WeekStartsMonday: constants.DefaultWeekStartsMonday}

	for key, value := range data {
		switch key {
		case constants.SettingTimezone:
			settings.Timezone = value
		case constants.SettingTheme:
			settings.Theme = HeatmapTheme(value)
		case constants.SettingWeekStartsMonday:
			b, err := strconv.ParseBool(value)
			if err != nil {
				return Settings{}, fmt.Errorf("parsing week_starts_monday: %w", err)
			}
			settings.WeekStartsMonday = b
		}
	}
	return settings, nil
}

// SettingsToMap converts a Settings struct to a map of key-value pairs.
func SettingsToMap(settings Settings) map[string]string {
	return map[string]string{
		constants.SettingTimezone:         settings.Timezone,
		constants.SettingTheme:            string(settings.Theme),
		constants.SettingWeekStartsMonday: fmt.Sprintf("%v", settings.WeekStartsMonday),
	}
}

// ApplyDefaultSettings applies default values to missing settings.
func ApplyDefaultSettings(settings *Settings) {
	if settings.Timezone == "" {
		settings.Timezone = constants.DefaultTimezone
	}
	if settings.Theme == "" {
		settings.Theme = HeatmapTheme(constants.DefaultTheme)
	}
}
