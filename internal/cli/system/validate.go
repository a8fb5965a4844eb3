package system

import (
	"fmt"

	"github.com/julianstephens/focusflow/internal/cli"
	"github.com/julianstephens/focusflow/internal/validation"
)

type ValidateCmd struct {
	Fix bool `help:"Merge duplicate logs for the same date and project."`
}

func (c *ValidateCmd) Run(ctx *cli.Context) error {
	result, err := validateAll(ctx)
	if err != nil {
		return err
	}

	fmt.Print(result.FormatReport())
	if !result.HasConflicts() {
		fmt.Println()
		return nil
	}

	if !c.Fix {
		fmt.Println("\nRun with --fix to merge duplicate logs.")
		return nil
	}

	logs, err := ctx.Repo.Logs()
	if err != nil {
		return fmt.Errorf("failed to get logs: %w", err)
	}
	fixed, actions := validation.New().FixDuplicateLogs(logs)
	if len(actions) == 0 {
		fmt.Println("\nNothing to fix automatically.")
		return nil
	}
	if err := ctx.Repo.SaveLogs(fixed); err != nil {
		return fmt.Errorf("failed to save fixed logs: %w", err)
	}

	fmt.Println("\nApplied fixes:")
	for _, a := range actions {
		fmt.Printf("  ✓ %s\n", a.Action)
	}
	return nil
}
