package backups

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/focusflow/internal/cli"
	"github.com/julianstephens/focusflow/internal/constants"
)

type BackupCmd struct {
	Create  *BackupCreateCmd  `cmd:"" help:"Create a backup now."`
	List    *BackupListCmd    `cmd:"" help:"List available backups."`
	Restore *BackupRestoreCmd `cmd:"" help:"Restore the database from a backup."`
	Prune   *BackupPruneCmd   `cmd:"" help:"Delete backups beyond the retention limit."`
}

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *cli.Context) error {
	mgr, err := ctx.BackupManager()
	if err != nil {
		return err
	}
	backupPath, err := mgr.CreateBackup()
	if err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}

	fmt.Printf("✓ Backup created: %s\n", filepath.Base(backupPath))
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *cli.Context) error {
	mgr, err := ctx.BackupManager()
	if err != nil {
		return err
	}
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}

	if len(backups) == 0 {
		fmt.Println("No backups found.")
		fmt.Printf("Backups are stored in: %s\n", mgr.GetBackupDir())
		return nil
	}

	fmt.Printf("Available backups (%d total, keeping most recent %d):\n\n", len(backups), constants.MaxBackups)
	for _, b := range backups {
		sizeKB := float64(b.Size) / 1024.0
		timestamp := b.Timestamp.Format("2006-01-02 15:04:05")
		fmt.Printf("  %s  %s  (%.1f KB)\n", timestamp, b.Name, sizeKB)
	}
	fmt.Printf("\nBackup directory: %s\n", mgr.GetBackupDir())

	return nil
}

type BackupRestoreCmd struct {
	BackupFile string `arg:"" optional:"" help:"Path or filename of the backup to restore. Defaults to the latest."`
	Yes        bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *BackupRestoreCmd) Run(ctx *cli.Context) error {
	mgr, err := ctx.BackupManager()
	if err != nil {
		return err
	}

	info, err := mgr.Resolve(c.BackupFile)
	if err != nil {
		return fmt.Errorf("backup file not found: %w", err)
	}
	backupPath, err := filepath.Abs(info.Path)
	if err != nil {
		return fmt.Errorf("failed to resolve backup path: %w", err)
	}

	fmt.Println("⚠️  WARNING: This will replace your current database with the backup.")
	fmt.Println("⚠️  IMPORTANT: Stop any running focusflow timer or reminder watcher first.")
	fmt.Println("A backup of your current database will be created before restoring.")
	fmt.Printf("\nRestore from: %s\n", backupPath)

	if !c.Yes {
		ok, err := cli.Confirm("Restore this backup?", info.Name)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Restore cancelled.")
			return nil
		}
	}

	// Close the current store connection before restoring
	if err := ctx.Store.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to close database connection: %v\n", err)
	}

	previous, err := mgr.RestoreBackup(backupPath)
	if err != nil {
		return fmt.Errorf("restore failed: %w", err)
	}

	fmt.Println("✓ Database restored successfully!")
	if previous != "" {
		fmt.Printf("  Previous database saved as %s\n", filepath.Base(previous))
	}

	return nil
}

type BackupPruneCmd struct{}

func (c *BackupPruneCmd) Run(ctx *cli.Context) error {
	mgr, err := ctx.BackupManager()
	if err != nil {
		return err
	}
	n, err := mgr.Prune()
	if err != nil {
		return fmt.Errorf("prune failed: %w", err)
	}
	fmt.Printf("✓ Removed %d old backup(s).\n", n)
	return nil
}
