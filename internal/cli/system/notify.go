package system

import (
	"fmt"

	"github.com/julianstephens/focusflow/internal/cli"
)

// NotifyCmd sends a test notification through the configured channels.
type NotifyCmd struct {
	Title  string `help:"Notification title." default:"focusflow"`
	Body   string `arg:"" optional:"" help:"Notification body." default:"Notifications are working."`
	DryRun bool   `help:"Print the notification to stdout instead of sending it."`
}

func (c *NotifyCmd) Run(ctx *cli.Context) error {
	if c.DryRun {
		fmt.Printf("[DryRun] %s: %s\n", c.Title, c.Body)
		return nil
	}
	if err := ctx.Notifier().Notify(c.Title, c.Body); err != nil {
		return fmt.Errorf("notification failed: %w", err)
	}
	return nil
}
