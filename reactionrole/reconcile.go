package reactionrole

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Direction tells whether a reaction was added or removed.
type Direction int

const (
	Add Direction = iota
	Remove
)

func (d Direction) String() string {
	if d == Remove {
		return "remove"
	}
	return "add"
}

// ReactionEvent is a reaction added to or removed from a message.
type ReactionEvent struct {
	GuildID   string
	ChannelID string
	MessageID string
	UserID    string
	Bot       bool

	// Emoji is in message format: the character itself for unicode emoji,
	// <:name:id> or <a:name:id> for custom ones.
	Emoji     string
	Direction Direction
}

// Reconciler applies reactions on boards to role membership.
//
// It keeps no state between events, every event re-reads the board.
type Reconciler struct {
	platform Platform
	logf     func(message string, args ...interface{})
	outcomes metric.Int64Counter
}

// NewReconciler constructs a *Reconciler. logf receives membership changes
// the platform refused.
func NewReconciler(p Platform, logf func(message string, args ...interface{})) *Reconciler {
	if logf == nil {
		logf = func(string, ...interface{}) {}
	}
	outcomes, err := otel.Meter("github.com/gobridge/rolebot/reactionrole").Int64Counter(
		"rolebot.reactions",
		metric.WithDescription("Reaction events seen on messages, by outcome."),
	)
	if err != nil {
		logf("creating reactions counter: %v\n", err)
	}
	return &Reconciler{
		platform: p,
		logf:     logf,
		outcomes: outcomes,
	}
}

// Reconcile adds or removes the role bound to ev.Emoji on the board ev
// targets. It returns a *SkipError when the event does not concern a board
// definition. Refused membership changes are logged, not returned.
func (r *Reconciler) Reconcile(ctx context.Context, ev ReactionEvent) error {
	err := r.reconcile(ctx, ev)
	if r.outcomes != nil {
		outcome := "applied"
		if err != nil {
			outcome = "skipped"
		}
		r.outcomes.Add(ctx, 1, metric.WithAttributes(
			attribute.String("outcome", outcome),
			attribute.String("direction", ev.Direction.String()),
		))
	}
	return err
}

func (r *Reconciler) reconcile(ctx context.Context, ev ReactionEvent) error {
	if ev.Bot {
		return skip("reaction by a bot")
	}

	msg, err := r.platform.Message(ctx, ev.ChannelID, ev.MessageID)
	if err != nil {
		return skip("message not found")
	}
	defs, ok := r.board(msg)
	if !ok {
		return skip("not a board")
	}

	def, ok := find(defs, ev.Emoji)
	if !ok {
		return skip("emoji not on board")
	}
	if !def.Resolved() {
		return skip("role not resolved")
	}

	guildID := ev.GuildID
	if guildID == "" {
		guildID = msg.GuildID
	}
	member, err := r.platform.Member(ctx, guildID, ev.UserID)
	if err != nil {
		return skip("member not found")
	}

	switch ev.Direction {
	case Add:
		err = r.platform.AddMemberRole(ctx, member.GuildID, member.UserID, def.RoleID)
	case Remove:
		err = r.platform.RemoveMemberRole(ctx, member.GuildID, member.UserID, def.RoleID)
	}
	if err != nil {
		r.logf("%s role %s for %s: %v\n", ev.Direction, def.RoleID, member.UserID, err)
	}
	return nil
}

// board returns the definitions of msg when msg is a board.
func (r *Reconciler) board(msg Message) ([]Definition, bool) {
	if msg.AuthorID != r.platform.SelfID() || msg.Content != "" || len(msg.Embeds) != 1 {
		return nil, false
	}
	defs := Parse(msg.Embeds[0].Description)
	return defs, defs != nil
}

func find(defs []Definition, emoji string) (Definition, bool) {
	for _, d := range defs {
		if d.Emoji == emoji {
			return d, true
		}
	}
	return Definition{}, false
}
