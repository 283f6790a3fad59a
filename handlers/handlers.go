package handlers

import (
	"context"
	"strings"
	"unicode"

	"github.com/gobridge/rolebot/bot"
	"github.com/gobridge/rolebot/reactionrole"
)

type (
	// Condition will check whether a message matches a condition.
	Condition func(bot.Message, []string) bool
)

var (
	// Exact will return true if a message contains an exact match to one
	// or more strings.
	Exact Condition = func(m bot.Message, strs []string) bool {
		for _, str := range strs {
			if m.TrimmedText == str {
				return true
			}
		}
		return false
	}
	// HasPrefix will return true if a message begins with one or more strings.
	HasPrefix Condition = func(m bot.Message, strs []string) bool {
		for _, str := range strs {
			if strings.HasPrefix(m.TrimmedText, str) {
				return true
			}
		}
		return false
	}
)

// ProcessLinear calls handlers in order.
func ProcessLinear(hs ...bot.Handler) bot.Handler {
	return bot.HandlerFunc(func(ctx context.Context, m bot.Message, r bot.Responder) {
		for _, h := range hs {
			h.Handle(ctx, m, r)
		}
	})
}

// Command calls h when Message.TrimmedText is name, optionally followed by
// arguments. h sees the arguments as Message.TrimmedText.
func Command(name string, h bot.Handler) bot.Handler {
	return bot.HandlerFunc(func(ctx context.Context, m bot.Message, r bot.Responder) {
		if !HasPrefix(m, []string{name}) {
			return
		}
		args, ok := arguments(m.TrimmedText[len(name):])
		if !ok {
			return
		}
		m.TrimmedText = args
		h.Handle(ctx, m, r)
	})
}

// arguments returns what follows a command name, which must be nothing or
// start with whitespace.
func arguments(rest string) (string, bool) {
	if rest == "" {
		return "", true
	}
	if !unicode.IsSpace(rune(rest[0])) {
		return "", false
	}
	return strings.TrimSpace(rest), true
}

// GuildOnly calls h for messages sent in a guild and tells the author
// otherwise.
func GuildOnly(h bot.Handler) bot.Handler {
	return bot.HandlerFunc(func(ctx context.Context, m bot.Message, r bot.Responder) {
		if m.GuildID == "" {
			r.Reply(ctx, "This command is only available in a guild.")
			return
		}
		h.Handle(ctx, m, r)
	})
}

// RequireRole calls h when the author holds a role named roleName.
func RequireRole(roles reactionrole.RoleService, roleName string, logf bot.Logger, h bot.Handler) bot.Handler {
	refusal := "You are not the bot " + strings.ToLower(roleName) + "."
	return bot.HandlerFunc(func(ctx context.Context, m bot.Message, r bot.Responder) {
		guildRoles, err := roles.Roles(ctx, m.GuildID)
		if err != nil {
			logf("fetching roles of guild %s: %v\n", m.GuildID, err)
			return
		}

		held := make(map[string]bool, len(m.MemberRoleIDs))
		for _, id := range m.MemberRoleIDs {
			held[id] = true
		}
		for _, role := range guildRoles {
			if role.Name == roleName && held[role.ID] {
				h.Handle(ctx, m, r)
				return
			}
		}
		r.Reply(ctx, refusal)
	})
}

// BotVersion responds to messages with the bot's version when Message.TrimmedText
// matches prompt.
func BotVersion(prompt, version string) bot.Handler {
	msg := "My version is: " + version
	return bot.HandlerFunc(func(ctx context.Context, m bot.Message, r bot.Responder) {
		if !Exact(m, []string{prompt}) {
			return
		}
		r.Respond(ctx, msg)
	})
}
