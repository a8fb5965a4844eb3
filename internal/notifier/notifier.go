// Package notifier delivers reminder notifications.
package notifier

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/focusflow/internal/constants"
)

// Notifier sends a single notification.
type Notifier interface {
	Notify(title, body string) error
}

type WebhookPayload struct {
	Title      string `json:"title"`
	Text       string `json:"text"`
	DurationMs uint32 `json:"duration_ms"`
}

// Webhook posts notifications as JSON to a local listener such as a tray app.
type Webhook struct {
	URL    string
	Secret string
	Client *http.Client
}

func NewWebhook(url, secret string) *Webhook {
	return &Webhook{
		URL:    url,
		Secret: secret,
		Client: &http.Client{Timeout: 5 * time.Second},
	}
}

func (w *Webhook) Notify(title, body string) error {
	if strings.TrimSpace(w.URL) == "" {
		return fmt.Errorf("notification webhook URL is empty")
	}

	payload := WebhookPayload{
		Title:      title,
		Text:       body,
		DurationMs: constants.NotificationDurationMs,
	}
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, w.URL, bytes.NewBuffer(jsonData))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if w.Secret != "" {
		req.Header.Set("X-Focusflow-Secret", w.Secret)
	}

	res, err := w.Client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusOK {
		return nil
	}

	resBody, _ := io.ReadAll(res.Body)
	return fmt.Errorf("notification failed with status %d: %s", res.StatusCode, string(resBody))
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#f59e0b"))
	bodyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#9ca3af"))
)

// Terminal prints notifications to an io.Writer, usually stdout.
type Terminal struct {
	Out io.Writer
	Now func() time.Time
}

func NewTerminal(out io.Writer) *Terminal {
	return &Terminal{Out: out, Now: time.Now}
}

func (t *Terminal) Notify(title, body string) error {
	_, err := fmt.Fprintf(t.Out, "🔔 %s %s %s\n",
		bodyStyle.Render(t.Now().Format(constants.TimeFormat)),
		titleStyle.Render(title),
		bodyStyle.Render(body))
	return err
}

// Multi fans a notification out to several notifiers. Every notifier is tried
// and the first error is returned.
type Multi []Notifier

func (m Multi) Notify(title, body string) error {
	var first error
	for _, n := range m {
		if err := n.Notify(title, body); err != nil && first == nil {
			first = err
		}
	}
	return first
}
