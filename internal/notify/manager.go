// Package notify posts regression-gate outcomes to Slack and Discord.
// Delivery is best effort: the gate's exit code reflects the benchmarks,
// never chat availability, so every failure here is a logged warning.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/slack-go/slack"
	"github.com/spf13/viper"
)

// Event types
const (
	EventSuccess = "on_success"
	EventFailure = "on_failure"
)

// slackPoster is the slice of the Slack API the manager uses.
type slackPoster interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

// Manager fans gate outcomes out to the configured sinks.
type Manager struct {
	client    slackPoster
	channelID string
	discord   *DiscordWebhook
	logger    *slog.Logger
}

// NewManager builds a Manager from viper configuration. Slack stays disabled
// unless notifications.slack.enabled is set and the bot token is present in
// the environment; Discord unless notifications.discord.enabled is set and
// DISCORD_WEBHOOK_URL is present.
func NewManager(logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	m := &Manager{logger: logger}

	if viper.GetBool("notifications.slack.enabled") {
		if botToken := os.Getenv("SLACK_BOT_USER_TOKEN"); botToken != "" {
			m.client = slack.New(botToken)
			m.channelID = viper.GetString("notifications.slack.channel")
		} else {
			logger.Warn("SLACK_BOT_USER_TOKEN not set, slack notifications disabled")
		}
	}

	if viper.GetBool("notifications.discord.enabled") {
		if webhookURL := os.Getenv("DISCORD_WEBHOOK_URL"); webhookURL != "" {
			m.discord = NewDiscordWebhook(webhookURL)
		} else {
			logger.Warn("DISCORD_WEBHOOK_URL not set, discord notifications disabled")
		}
	}

	return m
}

// Enabled reports whether any sink is configured at all.
func (m *Manager) Enabled() bool {
	return m.client != nil || m.discord != nil
}

// NotifyGateOutcome posts the gate verdict to every sink that has the
// matching event enabled in configuration.
func (m *Manager) NotifyGateOutcome(ctx context.Context, passed bool, violations []string) {
	event := EventFailure
	if passed {
		event = EventSuccess
	}

	var message string
	if passed {
		message = ":white_check_mark: swe-grep benchmarks passed the regression gate"
	} else {
		message = fmt.Sprintf(":rotating_light: swe-grep benchmark regression detected:\n• %s",
			strings.Join(violations, "\n• "))
	}

	m.post(ctx, event, message)
}

// NotifyGateError posts a gate that could not run at all (missing or
// unreadable summary log).
func (m *Manager) NotifyGateError(ctx context.Context, err error) {
	m.post(ctx, EventFailure, fmt.Sprintf(":warning: swe-grep regression gate could not run: %v", err))
}

func (m *Manager) post(ctx context.Context, event, message string) {
	if m.client != nil && m.eventEnabled("slack", event) {
		channelID := m.channelID
		if channelID == "" {
			channelID = "#general"
		}
		_, _, err := m.client.PostMessageContext(ctx, channelID,
			slack.MsgOptionText(message, false))
		if err != nil {
			m.logger.Warn("Failed to send Slack notification", "error", err)
		}
	}

	if m.discord != nil && m.eventEnabled("discord", event) {
		if err := m.discord.Post(ctx, message); err != nil {
			m.logger.Warn("Failed to send Discord notification", "error", err)
		}
	}
}

func (m *Manager) eventEnabled(sink, event string) bool {
	return viper.GetBool("notifications." + sink + ".events." + event)
}
