// Package notify tells the people running the bot about what it does.
package notify

import (
	"context"

	"github.com/nlopes/slack"
)

// Notifier delivers operator notifications.
type Notifier interface {
	Notify(ctx context.Context, text string) error
}

// New returns a Slack notifier posting to channel, or Nop when token or
// channel is empty.
func New(token, channel string, options ...slack.Option) Notifier {
	if token == "" || channel == "" {
		return Nop{}
	}
	return NewSlack(token, channel, options...)
}

// Nop drops every notification.
type Nop struct{}

// Notify does nothing.
func (Nop) Notify(context.Context, string) error { return nil }

// Slack posts notifications to a Slack channel as the bot user.
type Slack struct {
	api     *slack.Client
	channel string
}

// NewSlack constructs a *Slack.
func NewSlack(token, channel string, options ...slack.Option) *Slack {
	return &Slack{
		api:     slack.New(token, options...),
		channel: channel,
	}
}

// Notify posts text to the channel.
func (s *Slack) Notify(ctx context.Context, text string) error {
	_, _, err := s.api.PostMessageContext(ctx, s.channel,
		slack.MsgOptionText(text, false),
		slack.MsgOptionAsUser(true),
	)
	return err
}
