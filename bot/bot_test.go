package bot

import (
	"testing"

	"github.com/bwmarrin/discordgo"

	"github.com/gobridge/rolebot/reactionrole"
)

func testBot(t *testing.T) *Bot {
	session, err := discordgo.New("Bot test-token")
	if err != nil {
		t.Fatal(err)
	}
	return New(session, Options{Name: "rolebot", Prefix: "!", Logf: t.Logf})
}

func TestCommand(t *testing.T) {
	b := testBot(t)
	testMsg := func(text string) *discordgo.MessageCreate {
		return &discordgo.MessageCreate{
			Message: &discordgo.Message{
				ID:        "m1",
				ChannelID: "c1",
				GuildID:   "g1",
				Content:   text,
				Author:    &discordgo.User{ID: "u1"},
				Member:    &discordgo.Member{Roles: []string{"r1"}},
			},
		}
	}

	t.Run("skips messages without the prefix", func(t *testing.T) {
		if _, ok := b.command(testMsg("reaction-role <#1>")); ok {
			t.Error("expected message without prefix to be skipped")
		}
	})

	t.Run("trims the prefix", func(t *testing.T) {
		m, ok := b.command(testMsg("  !reaction-role <#1>\n<@&2> 🎉 "))
		if !ok {
			t.Fatal("expected command to be accepted")
		}
		expected := "reaction-role <#1>\n<@&2> 🎉"
		if m.TrimmedText != expected {
			t.Errorf("expected: %q\nactual:%q", expected, m.TrimmedText)
		}
		if m.GuildID != "g1" || m.ChannelID != "c1" || m.AuthorID != "u1" {
			t.Errorf("unexpected ids: %#v", m)
		}
		if len(m.MemberRoleIDs) != 1 || m.MemberRoleIDs[0] != "r1" {
			t.Errorf("unexpected member roles: %q", m.MemberRoleIDs)
		}
	})
}

func TestAPIEmoji(t *testing.T) {
	for token, expected := range map[string]string{
		"🎉":             "🎉",
		"<:pog:123>":    "pog:123",
		"<a:dance:456>": "dance:456",
		"<:angry:789>":  "angry:789",
		":smile:":       "smile",
	} {
		if actual := apiEmoji(token); actual != expected {
			t.Errorf("%s: expected: %q\nactual:%q", token, expected, actual)
		}
	}
}

func TestReactionEvent(t *testing.T) {
	r := &discordgo.MessageReaction{
		UserID:    "u1",
		MessageID: "m1",
		ChannelID: "c1",
		GuildID:   "g1",
		Emoji:     discordgo.Emoji{ID: "123", Name: "pog"},
	}

	ev := reactionEvent(r, reactionrole.Remove)
	expected := reactionrole.ReactionEvent{
		GuildID:   "g1",
		ChannelID: "c1",
		MessageID: "m1",
		UserID:    "u1",
		Emoji:     "<:pog:123>",
		Direction: reactionrole.Remove,
	}
	if ev != expected {
		t.Errorf("expected: %#v\nactual:%#v", expected, ev)
	}

	r.Emoji = discordgo.Emoji{Name: "🔔"}
	if ev := reactionEvent(r, reactionrole.Add); ev.Emoji != "🔔" {
		t.Errorf("expected: %q\nactual:%q", "🔔", ev.Emoji)
	}
}

func TestMessage(t *testing.T) {
	m := message(&discordgo.Message{
		ID:        "m1",
		ChannelID: "c1",
		Author:    &discordgo.User{ID: "bot"},
		Embeds:    []*discordgo.MessageEmbed{{Description: "<@&1> 🎉"}},
	})
	if m.AuthorID != "bot" || m.Content != "" || len(m.Embeds) != 1 || m.Embeds[0].Description != "<@&1> 🎉" {
		t.Errorf("unexpected message: %#v", m)
	}
}

func TestSubscription(t *testing.T) {
	b := testBot(t)
	s := b.Subscribe(ReactionHandlerFunc(nil))
	if len(b.subscriptions) != 1 {
		t.Fatalf("expected one subscription, got %d", len(b.subscriptions))
	}
	s.Unsubscribe()
	s.Unsubscribe()
	if len(b.subscriptions) != 0 {
		t.Errorf("expected no subscriptions, got %d", len(b.subscriptions))
	}
}
