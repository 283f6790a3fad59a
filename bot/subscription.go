package bot

import (
	"context"
	"sync"

	"github.com/bwmarrin/discordgo"
	"go.opentelemetry.io/otel/attribute"

	"github.com/gobridge/rolebot/reactionrole"
)

// Subscription is a registered ReactionHandler. It stays active until
// Unsubscribe or Bot.Close is called.
type Subscription struct {
	b      *Bot
	once   sync.Once
	remove []func()
}

// Unsubscribe stops delivering reactions to the handler. It is safe to call
// more than once.
func (s *Subscription) Unsubscribe() {
	s.once.Do(func() {
		for _, remove := range s.remove {
			remove()
		}
		s.b.mu.Lock()
		delete(s.b.subscriptions, s)
		s.b.mu.Unlock()
	})
}

// Subscribe delivers every reaction added or removed to h.
func (b *Bot) Subscribe(h ReactionHandler) *Subscription {
	s := &Subscription{b: b}
	s.remove = []func(){
		b.session.AddHandler(func(_ *discordgo.Session, r *discordgo.MessageReactionAdd) {
			var user *discordgo.User
			if r.Member != nil {
				user = r.Member.User
			}
			b.handleReaction(h, "b.ReactionAdd", r.MessageReaction, user, reactionrole.Add)
		}),
		b.session.AddHandler(func(_ *discordgo.Session, r *discordgo.MessageReactionRemove) {
			b.handleReaction(h, "b.ReactionRemove", r.MessageReaction, nil, reactionrole.Remove)
		}),
	}

	b.mu.Lock()
	b.subscriptions[s] = struct{}{}
	b.mu.Unlock()
	return s
}

func (b *Bot) handleReaction(h ReactionHandler, name string, r *discordgo.MessageReaction, user *discordgo.User, d reactionrole.Direction) {
	if r == nil {
		return
	}

	ctx, span := b.tracer.Start(context.Background(), name)
	defer span.End()

	ev := reactionEvent(r, d)
	ev.Bot = b.isBot(ctx, r.GuildID, r.UserID, user)
	span.SetAttributes(
		attribute.String("channel", ev.ChannelID),
		attribute.String("message", ev.MessageID),
		attribute.String("emoji", ev.Emoji),
	)

	if b.devMode {
		b.logf("reaction %s: %s on %s/%s by %s\n", d, ev.Emoji, ev.ChannelID, ev.MessageID, ev.UserID)
	}
	h.HandleReaction(ctx, ev)
}

func reactionEvent(r *discordgo.MessageReaction, d reactionrole.Direction) reactionrole.ReactionEvent {
	return reactionrole.ReactionEvent{
		GuildID:   r.GuildID,
		ChannelID: r.ChannelID,
		MessageID: r.MessageID,
		UserID:    r.UserID,
		Emoji:     r.Emoji.MessageFormat(),
		Direction: d,
	}
}

// isBot looks the reacting user up in the event, then the state cache, then
// the API. Users that can't be found are treated as people.
func (b *Bot) isBot(ctx context.Context, guildID, userID string, user *discordgo.User) bool {
	if user != nil {
		return user.Bot
	}
	if userID == b.SelfID() {
		return true
	}
	if b.session.State != nil {
		if m, err := b.session.State.Member(guildID, userID); err == nil && m.User != nil {
			return m.User.Bot
		}
	}
	u, err := b.session.User(userID, discordgo.WithContext(ctx))
	if err != nil {
		b.logf("fetching user %s: %v\n", userID, err)
		return false
	}
	return u.Bot
}
