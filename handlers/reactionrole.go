package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gobridge/rolebot/bot"
	"github.com/gobridge/rolebot/journal"
	"github.com/gobridge/rolebot/notify"
	"github.com/gobridge/rolebot/reactionrole"
)

// ReactionRoleOptions configures ReactionRole.
type ReactionRoleOptions struct {
	// Usage is the command as typed by users, shown in the usage message.
	Usage string
	// Journal records published boards. It may be nil.
	Journal  journal.Store
	Notifier notify.Notifier
	Logf     bot.Logger
}

// ReactionRole publishes a reaction role board from Message.TrimmedText,
// which must start with a channel mention followed by the board text.
func ReactionRole(pub *reactionrole.Publisher, opts ReactionRoleOptions) bot.Handler {
	usage := reactionrole.Usage(opts.Usage)
	logf := opts.Logf
	if logf == nil {
		logf = func(string, ...interface{}) {}
	}
	notifier := opts.Notifier
	if notifier == nil {
		notifier = notify.Nop{}
	}

	return bot.HandlerFunc(func(ctx context.Context, m bot.Message, r bot.Responder) {
		channelID, text, ok := reactionrole.ParseCommand(m.TrimmedText)
		if !ok {
			r.Reply(ctx, usage)
			return
		}

		board, err := pub.Publish(ctx, m.GuildID, channelID, text)
		var resErr *reactionrole.ResolutionError
		switch {
		case err == nil:
		case errors.Is(err, reactionrole.ErrUnknownChannel):
			r.Reply(ctx, "I couldn't find that channel.")
			return
		case errors.Is(err, reactionrole.ErrNoDefinitions):
			r.Reply(ctx, usage)
			return
		case errors.As(err, &resErr):
			logf("%v\n", err)
			r.Reply(ctx, "I need permission to manage roles in order to create new roles.")
			if err := notifier.Notify(ctx, fmt.Sprintf("Board by <@%s> failed: %v", m.AuthorID, err)); err != nil {
				logf("notifying: %v\n", err)
			}
			return
		default:
			logf("publishing board in %s: %v\n", channelID, err)
			return
		}

		for _, e := range board.ReactErrors {
			logf("%v\n", e)
			r.Respond(ctx, "Unable to react with: "+e.Emoji+", you may have to do this manually.")
		}

		entry := journalEntry(board, m.AuthorID)
		if opts.Journal != nil {
			if err := opts.Journal.Put(ctx, entry); err != nil {
				logf("recording board %s: %v\n", board.MessageID, err)
			}
		}
		msg := fmt.Sprintf("Reaction role board with %d roles published by <@%s>: %s", len(board.Definitions), m.AuthorID, entry.Link())
		if err := notifier.Notify(ctx, msg); err != nil {
			logf("notifying: %v\n", err)
		}
	})
}

func journalEntry(board *reactionrole.Board, authorID string) journal.Entry {
	e := journal.Entry{
		GuildID:   board.GuildID,
		ChannelID: board.ChannelID,
		MessageID: board.MessageID,
		AuthorID:  authorID,
		CreatedAt: time.Now(),
	}
	for _, d := range board.Definitions {
		e.RoleIDs = append(e.RoleIDs, d.RoleID)
		e.Emoji = append(e.Emoji, d.Emoji)
	}
	return e
}

// ReactionRoleBoards lists the most recent boards of the guild.
func ReactionRoleBoards(store journal.Store, limit int, logf bot.Logger) bot.Handler {
	return bot.HandlerFunc(func(ctx context.Context, m bot.Message, r bot.Responder) {
		if store == nil {
			r.Reply(ctx, "I'm not keeping track of boards.")
			return
		}

		entries, err := store.List(ctx, m.GuildID, limit)
		if err != nil {
			logf("listing boards of %s: %v\n", m.GuildID, err)
			return
		}
		if len(entries) == 0 {
			r.Reply(ctx, "No boards were published yet.")
			return
		}

		var b strings.Builder
		b.WriteString("Recent reaction role boards:")
		for _, e := range entries {
			fmt.Fprintf(&b, "\n- %s (%d roles)", e.Link(), len(e.RoleIDs))
		}
		r.Reply(ctx, b.String())
	})
}

// ReactionRoles reconciles memberships for every reaction the bot sees.
func ReactionRoles(rec *reactionrole.Reconciler, debugf bot.Logger) bot.ReactionHandler {
	if debugf == nil {
		debugf = func(string, ...interface{}) {}
	}
	return bot.ReactionHandlerFunc(func(ctx context.Context, ev reactionrole.ReactionEvent) {
		err := rec.Reconcile(ctx, ev)
		var skipped *reactionrole.SkipError
		switch {
		case err == nil:
		case errors.As(err, &skipped):
			debugf("%s %s on %s: %s\n", ev.Direction, ev.Emoji, ev.MessageID, skipped.Reason)
		default:
			debugf("reconciling %s on %s: %v\n", ev.Emoji, ev.MessageID, err)
		}
	})
}
