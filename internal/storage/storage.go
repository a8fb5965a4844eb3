// Package storage persists focusflow data as JSON documents in a key/value
// store. Backends implement KV; Repository layers typed access on top.
package storage

import (
	"errors"
	"sort"
	"strings"
)

var (
	// ErrNotFound is returned when a record with the requested ID does not exist.
	ErrNotFound = errors.New("not found")
	// ErrNotInitialized is returned by Load when the backing store was never created.
	ErrNotInitialized = errors.New("storage not initialized")
	// ErrCorrupt is returned when a stored collection cannot be decoded.
	ErrCorrupt = errors.New("stored document is unreadable")
)

// KV is a string key/value store with a lifecycle. Values are opaque to the
// backend; the Repository stores JSON documents under well-known keys.
type KV interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
	// List returns the keys starting with prefix in ascending order.
	List(prefix string) ([]string, error)

	// Utils
	GetConfigPath() string
}

// FilterKeys returns the keys with the given prefix, sorted. Backends that
// cannot filter natively use it to implement List.
func FilterKeys(keys []string, prefix string) []string {
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if strings.HasPrefix(k, prefix) {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}
