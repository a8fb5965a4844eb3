package cli

import (
	"errors"
	"fmt"

	"github.com/julianstephens/focusflow/internal/config"
	"github.com/julianstephens/focusflow/internal/keyring"
	"github.com/julianstephens/focusflow/internal/storage"
	"github.com/julianstephens/focusflow/internal/storage/postgres"
	"github.com/julianstephens/focusflow/internal/storage/sqlite"
)

// KeyringLocation selects the PostgreSQL connection string stored in the OS
// keyring.
const KeyringLocation = "postgresql"

// OpenStore returns the store for location without loading it. location is a
// SQLite path, a .json path, a PostgreSQL connection string, or
// KeyringLocation.
func OpenStore(location string) (storage.KV, error) {
	switch {
	case location == KeyringLocation:
		connStr, err := keyring.GetConnectionString()
		if err != nil {
			return nil, fmt.Errorf("failed to read connection string from keyring: %w", err)
		}
		// Credentials are allowed here since the keyring itself is encrypted.
		if _, err := postgres.ValidateConnString(connStr); err != nil && !errors.Is(err, postgres.ErrEmbeddedCredentials) {
			return nil, err
		}
		return postgres.New(connStr), nil
	case config.IsPostgres(location):
		if _, err := postgres.ValidateConnString(location); err != nil {
			return nil, err
		}
		return postgres.New(location), nil
	case config.IsJSON(location):
		path, err := config.ExpandPath(location)
		if err != nil {
			return nil, err
		}
		return storage.NewJSONStore(path), nil
	default:
		path, err := config.ExpandPath(location)
		if err != nil {
			return nil, err
		}
		return sqlite.NewStore(path), nil
	}
}
