package cli

import (
	"os"

	"github.com/julianstephens/focusflow/internal/keyring"
	"github.com/julianstephens/focusflow/internal/logger"
	"github.com/julianstephens/focusflow/internal/notifier"
)

// Notifier returns the terminal notifier, plus the webhook notifier when
// FOCUSFLOW_WEBHOOK_URL is set.
func (c *Context) Notifier() notifier.Multi {
	channels := notifier.Multi{notifier.NewTerminal(os.Stdout)}
	if w := c.WebhookNotifier(); w != nil {
		channels = append(channels, w)
	}
	return channels
}

// WebhookNotifier returns nil when no webhook is configured. The shared
// secret is read from the keyring.
func (c *Context) WebhookNotifier() *notifier.Webhook {
	if c.Config == nil || c.Config.WebhookURL == "" {
		return nil
	}
	secret, err := keyring.Get(keyring.WebhookSecret)
	if err != nil {
		logger.Debug("No webhook secret in keyring", "error", err)
		secret = ""
	}
	return notifier.NewWebhook(c.Config.WebhookURL, secret)
}
