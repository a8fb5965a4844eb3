package system

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/focusflow/internal/cli"
	"github.com/julianstephens/focusflow/internal/constants"
	"github.com/julianstephens/focusflow/internal/storage"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting existing database before initialization."`
	Source string `help:"Source store (database path, .json file or connection string) to copy data from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	// If force flag is provided, delete existing database
	if c.Force {
		dbPath := ctx.Store.GetConfigPath()
		// Don't delete if it's the source (user error protection)
		if c.Source != "" {
			// Normalize paths to absolute for accurate comparison
			absDbPath, err := filepath.Abs(dbPath)
			if err == nil {
				dbPath = absDbPath
			}
			absSource, err := filepath.Abs(c.Source)
			if err == nil && absSource == dbPath {
				return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
			}
		}
		if _, err := os.Stat(dbPath); err == nil {
			// Database exists, close it first to prevent file locking issues
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing database: %w", err)
			}
			if err := os.Remove(dbPath); err != nil {
				return fmt.Errorf("failed to delete existing database: %w", err)
			}
			fmt.Printf("Deleted existing database at: %s\n", dbPath)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing database: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized focusflow storage at: %s\n", ctx.Store.GetConfigPath())

	// Seed the default project so every command sees at least one.
	if _, err := ctx.Repo.Projects(); err != nil {
		return fmt.Errorf("failed to seed default project: %w", err)
	}

	if c.Source != "" {
		fmt.Printf("Migrating data from: %s\n", c.Source)
		n, err := c.migrateData(ctx, c.Source)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		fmt.Printf("Migration completed successfully! Copied %d document(s).\n", n)
	}

	return nil
}

// migrateData copies every focusflow document from the source store. Documents
// are opaque JSON so any pair of backends can be combined.
func (c *InitCmd) migrateData(ctx *cli.Context, sourcePath string) (int, error) {
	source, err := cli.OpenStore(sourcePath)
	if err != nil {
		return 0, err
	}
	if err := source.Load(); err != nil {
		return 0, fmt.Errorf("failed to load source database: %w", err)
	}
	defer source.Close()

	return copyDocuments(source, ctx.Store)
}

func copyDocuments(src, dst storage.KV) (int, error) {
	keys, err := src.List(constants.KeyPrefix)
	if err != nil {
		return 0, fmt.Errorf("failed to list source documents: %w", err)
	}
	for _, key := range keys {
		value, ok, err := src.Get(key)
		if err != nil {
			return 0, fmt.Errorf("failed to read %s: %w", key, err)
		}
		if !ok {
			continue
		}
		fmt.Printf("  Migrating %s...\n", key)
		if err := dst.Set(key, value); err != nil {
			return 0, fmt.Errorf("failed to write %s: %w", key, err)
		}
	}
	return len(keys), nil
}
