package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// DiscordWebhook posts gate outcomes to a Discord webhook. It is a secondary
// sink next to Slack and carries the same messages.
type DiscordWebhook struct {
	URL    string
	Client *http.Client
}

// NewDiscordWebhook creates a webhook sink for the given URL.
func NewDiscordWebhook(url string) *DiscordWebhook {
	return &DiscordWebhook{
		URL:    url,
		Client: &http.Client{Timeout: 10 * time.Second},
	}
}

// Post sends a message to the configured webhook.
func (d *DiscordWebhook) Post(ctx context.Context, message string) error {
	if d.URL == "" {
		return fmt.Errorf("discord webhook URL is not configured")
	}

	payload := map[string]string{
		"username": "swegrep-bench",
		"content":  message,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal discord payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create discord request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := d.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send discord notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("discord webhook returned status %d", resp.StatusCode)
	}
	return nil
}
