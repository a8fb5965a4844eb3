package system

import (
	"fmt"

	"github.com/julianstephens/focusflow/internal/cli"
)

// ResetCmd deletes every focusflow document from the store.
type ResetCmd struct {
	Yes bool `short:"y" help:"Skip the confirmation prompt."`
}

func (c *ResetCmd) Run(ctx *cli.Context) error {
	if !c.Yes {
		ok, err := cli.Confirm(
			"Delete all focusflow data?",
			"Logs, projects, events, countdowns, goals, sessions and settings will be removed.",
		)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Reset cancelled.")
			return nil
		}
	}

	// Keep a copy around in case the reset was a mistake.
	ctx.PerformAutomaticBackup()

	n, err := ctx.Repo.ClearAll()
	if err != nil {
		return fmt.Errorf("reset failed: %w", err)
	}
	fmt.Printf("✓ Removed %d document(s). focusflow starts fresh next time.\n", n)
	return nil
}
