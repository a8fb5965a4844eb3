// Package keyring stores focusflow secrets in the OS keyring.
package keyring

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"

	"github.com/julianstephens/focusflow/internal/constants"
)

var (
	// ErrNotFound is returned when no secret is stored under the requested entry
	ErrNotFound = errors.New("credentials not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring is not available
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// Entry names a secret kept in the keyring.
type Entry string

const (
	// ConnectionString is the PostgreSQL connection string.
	ConnectionString Entry = constants.DefaultKeyringUser
	// WebhookSecret authenticates reminder notifications sent to a webhook.
	WebhookSecret Entry = "notification-webhook-secret"
)

// Entries lists every entry the application manages.
func Entries() []Entry {
	return []Entry{ConnectionString, WebhookSecret}
}

// ParseEntry maps a user-facing name to an Entry.
func ParseEntry(name string) (Entry, error) {
	switch name {
	case "db", "database", string(ConnectionString):
		return ConnectionString, nil
	case "webhook", string(WebhookSecret):
		return WebhookSecret, nil
	default:
		return "", fmt.Errorf("unknown keyring entry %q (expected db or webhook)", name)
	}
}

// Get retrieves the secret stored under e. Returns ErrNotFound if nothing is
// stored.
func Get(e Entry) (string, error) {
	value, err := keyring.Get(constants.AppName, string(e))
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return value, nil
}

// Set stores value under e.
func Set(e Entry, value string) error {
	if value == "" {
		return fmt.Errorf("%s cannot be empty", e)
	}
	if err := keyring.Set(constants.AppName, string(e), value); err != nil {
		return fmt.Errorf("failed to store credentials in keyring: %w", err)
	}
	return nil
}

// Delete removes the secret stored under e.
func Delete(e Entry) error {
	if err := keyring.Delete(constants.AppName, string(e)); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete credentials from keyring: %w", err)
	}
	return nil
}

// GetConnectionString retrieves the database connection string.
func GetConnectionString() (string, error) {
	return Get(ConnectionString)
}

// SetConnectionString stores the database connection string.
func SetConnectionString(connStr string) error {
	return Set(ConnectionString, connStr)
}

// DeleteConnectionString removes the database connection string.
func DeleteConnectionString() error {
	return Delete(ConnectionString)
}

// IsAvailable checks if the OS keyring is available on the current system.
// This is a best-effort check and may not catch all failure scenarios.
func IsAvailable() bool {
	_, err := keyring.Get(constants.AppName, "test-availability")
	// ErrNotFound means the keyring answered but is empty
	return err == nil || errors.Is(err, keyring.ErrNotFound)
}
