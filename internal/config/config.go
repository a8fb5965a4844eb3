// Package config reads environment overrides for the focusflow CLI.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kelseyhightower/envconfig"

	"github.com/julianstephens/focusflow/internal/constants"
	"github.com/julianstephens/focusflow/internal/utils"
)

// Prefix is the environment variable prefix, e.g. FOCUSFLOW_CONFIG.
const Prefix = "FOCUSFLOW"

// Config holds the settings that may come from the environment. Command-line
// flags take precedence over every field. Keys are derived from the field
// names so that unprefixed variables such as DEBUG are never consulted.
type Config struct {
	// Store location: a .db path, a .json path or a PostgreSQL connection string.
	Config string `default:"~/.config/focusflow/focusflow.db"`
	Debug  bool   `default:"false"`

	// Timezone overrides the stored timezone setting when set.
	Timezone string
	LogDir   string `split_words:"true"`

	WebhookURL string `split_words:"true"`
}

// Load reads FOCUSFLOW_* variables and validates the result.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.Config) == "" {
		return fmt.Errorf("%s_CONFIG cannot be empty", Prefix)
	}
	if c.Timezone != "" && !utils.ValidateTimezone(c.Timezone) {
		return fmt.Errorf("%s_TIMEZONE: unknown timezone %q", Prefix, c.Timezone)
	}
	if c.WebhookURL != "" && !strings.HasPrefix(c.WebhookURL, "http://") && !strings.HasPrefix(c.WebhookURL, "https://") {
		return fmt.Errorf("%s_WEBHOOK_URL must be an http(s) URL", Prefix)
	}
	return nil
}

// IsPostgres reports whether the store location is a PostgreSQL connection
// string.
func IsPostgres(location string) bool {
	return strings.HasPrefix(location, "postgres://") ||
		strings.HasPrefix(location, "postgresql://") ||
		location == "postgresql"
}

// IsJSON reports whether the store location is a JSON file.
func IsJSON(location string) bool {
	return strings.EqualFold(filepath.Ext(location), ".json")
}

// ExpandPath replaces a leading ~ with the user's home directory.
func ExpandPath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// Dir returns the directory holding the store file, logs and lockfiles. For
// PostgreSQL it falls back to the default config directory.
func Dir(location string) (string, error) {
	if IsPostgres(location) {
		location = constants.DefaultConfigPath
	}
	expanded, err := ExpandPath(location)
	if err != nil {
		return "", err
	}
	return filepath.Dir(expanded), nil
}
