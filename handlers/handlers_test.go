package handlers

import (
	"context"
	"testing"

	"github.com/gobridge/rolebot/bot"
	"github.com/gobridge/rolebot/reactionrole/reactionroletest"
)

type testResponder struct {
	responses []string
	replies   []string
}

func (tr *testResponder) Respond(ctx context.Context, msg string) {
	tr.responses = append(tr.responses, msg)
}

func (tr *testResponder) Reply(ctx context.Context, msg string) {
	tr.replies = append(tr.replies, msg)
}

func (tr *testResponder) last() string {
	if len(tr.replies) == 0 {
		return ""
	}
	return tr.replies[len(tr.replies)-1]
}

func TestCommand(t *testing.T) {
	run := func(text string) (string, bool) {
		var (
			got    string
			called bool
		)
		h := Command("reaction-role", bot.HandlerFunc(func(ctx context.Context, m bot.Message, r bot.Responder) {
			got, called = m.TrimmedText, true
		}))
		h.Handle(context.Background(), bot.Message{TrimmedText: text}, &testResponder{})
		return got, called
	}

	t.Run("without arguments", func(t *testing.T) {
		args, ok := run("reaction-role")
		if !ok || args != "" {
			t.Errorf("expected: %q\nactual:%q (called %v)", "", args, ok)
		}
	})

	t.Run("with arguments", func(t *testing.T) {
		args, ok := run("reaction-role   <#1>\n<@&2> 🎉 ")
		expected := "<#1>\n<@&2> 🎉"
		if !ok || args != expected {
			t.Errorf("expected: %q\nactual:%q (called %v)", expected, args, ok)
		}
	})

	t.Run("argument on next line", func(t *testing.T) {
		args, ok := run("reaction-role\n<#1>")
		if !ok || args != "<#1>" {
			t.Errorf("expected: %q\nactual:%q (called %v)", "<#1>", args, ok)
		}
	})

	t.Run("skips longer command names", func(t *testing.T) {
		if _, ok := run("reaction-role-boards"); ok {
			t.Errorf("expected reaction-role-boards not to match")
		}
	})

	t.Run("skips other commands", func(t *testing.T) {
		if _, ok := run("version"); ok {
			t.Errorf("expected version not to match")
		}
	})
}

func TestConditions(t *testing.T) {
	m := bot.Message{Text: "!reaction-role <#1>", TrimmedText: "reaction-role <#1>"}

	t.Run("has prefix", func(t *testing.T) {
		if !HasPrefix(m, []string{"version", "reaction-role"}) {
			t.Errorf("expected %q to have prefix reaction-role", m.TrimmedText)
		}
		if HasPrefix(m, []string{"!reaction-role", "role"}) {
			t.Errorf("expected prefixes to be matched against the trimmed text")
		}
	})

	t.Run("exact", func(t *testing.T) {
		if Exact(m, []string{"reaction-role"}) {
			t.Errorf("expected %q not to match exactly", m.TrimmedText)
		}
		if !Exact(m, []string{"reaction-role <#1>"}) {
			t.Errorf("expected %q to match exactly", m.TrimmedText)
		}
	})
}

func TestGuildOnly(t *testing.T) {
	var called bool
	h := GuildOnly(bot.HandlerFunc(func(ctx context.Context, m bot.Message, r bot.Responder) {
		called = true
	}))

	var tr testResponder
	h.Handle(context.Background(), bot.Message{}, &tr)
	expected := "This command is only available in a guild."
	if called || tr.last() != expected {
		t.Errorf("expected: %q\nactual:%q (called %v)", expected, tr.last(), called)
	}

	tr = testResponder{}
	h.Handle(context.Background(), bot.Message{GuildID: "g1"}, &tr)
	if !called || len(tr.replies) != 0 {
		t.Errorf("expected handler to be called without replies, got %q", tr.replies)
	}
}

func TestRequireRole(t *testing.T) {
	p := reactionroletest.New("bot")
	p.AddRole("g1", "10", "Wizard")
	p.AddRole("g1", "11", "Member")

	run := func(roleIDs ...string) (string, bool) {
		var called bool
		h := RequireRole(p, "Wizard", t.Logf, bot.HandlerFunc(func(ctx context.Context, m bot.Message, r bot.Responder) {
			called = true
		}))
		var tr testResponder
		h.Handle(context.Background(), bot.Message{GuildID: "g1", MemberRoleIDs: roleIDs}, &tr)
		return tr.last(), called
	}

	t.Run("member with the role", func(t *testing.T) {
		reply, called := run("11", "10")
		if !called || reply != "" {
			t.Errorf("expected handler to be called, reply %q", reply)
		}
	})

	t.Run("member without the role", func(t *testing.T) {
		reply, called := run("11")
		expected := "You are not the bot wizard."
		if called || reply != expected {
			t.Errorf("expected: %q\nactual:%q (called %v)", expected, reply, called)
		}
	})

	t.Run("role ids from another guild", func(t *testing.T) {
		reply, called := run("12")
		if called || reply == "" {
			t.Errorf("expected refusal, got %q (called %v)", reply, called)
		}
	})
}

func TestBotVersion(t *testing.T) {
	h := BotVersion("version", "v1.0.0")

	var tr testResponder
	h.Handle(context.Background(), bot.Message{TrimmedText: "version"}, &tr)
	expected := "My version is: v1.0.0"
	if len(tr.responses) != 1 || tr.responses[0] != expected {
		t.Errorf("expected: %q\nactual:%q", expected, tr.responses)
	}

	tr = testResponder{}
	h.Handle(context.Background(), bot.Message{TrimmedText: "versions"}, &tr)
	if len(tr.responses) != 0 {
		t.Errorf("expected no response, got %q", tr.responses)
	}
}

func TestProcessLinear(t *testing.T) {
	var order []int
	step := func(i int) bot.Handler {
		return bot.HandlerFunc(func(ctx context.Context, m bot.Message, r bot.Responder) {
			order = append(order, i)
		})
	}
	ProcessLinear(step(1), step(2), step(3)).Handle(context.Background(), bot.Message{}, &testResponder{})
	if len(order) != 3 || order[0] != 1 || order[2] != 3 {
		t.Errorf("expected handlers in order, got %v", order)
	}
}
