package reactionrole_test

import (
	"reflect"
	"testing"

	"github.com/gobridge/rolebot/reactionrole"
)

func TestRender(t *testing.T) {
	t.Run("replaces resolved names", func(t *testing.T) {
		text := "Roles\n<@&1> news :news:\n<@New Role> party 🎉"
		defs := []reactionrole.Definition{
			{RoleID: "1", Emoji: ":news:"},
			{RoleID: "9", Name: "New Role", Emoji: "🎉"},
		}

		published, emoji := reactionrole.Render(text, defs)
		expected := "Roles\n<@&1> news :news:\n<@&9> party 🎉"
		if published != expected {
			t.Errorf("expected: %q\nactual:%q", expected, published)
		}
		if !reflect.DeepEqual(emoji, []string{":news:", "🎉"}) {
			t.Errorf("unexpected emoji: %q", emoji)
		}
	})

	t.Run("leaves unknown names untouched", func(t *testing.T) {
		text := "<@Other> is not a board role\n<@&3> 🎉"
		published, _ := reactionrole.Render(text, []reactionrole.Definition{{RoleID: "3", Emoji: "🎉"}})
		if published != text {
			t.Errorf("expected: %q\nactual:%q", text, published)
		}
	})

	t.Run("replaces every occurrence of a name", func(t *testing.T) {
		text := "<@Pingable> get pinged, <@Pingable> 🔔"
		published, _ := reactionrole.Render(text, []reactionrole.Definition{{RoleID: "4", Name: "Pingable", Emoji: "🔔"}})
		expected := "<@&4> get pinged, <@&4> 🔔"
		if published != expected {
			t.Errorf("expected: %q\nactual:%q", expected, published)
		}
	})

	t.Run("keeps duplicate emoji", func(t *testing.T) {
		_, emoji := reactionrole.Render("", []reactionrole.Definition{
			{RoleID: "1", Emoji: "🎉"},
			{RoleID: "2", Emoji: "🎉"},
		})
		if !reflect.DeepEqual(emoji, []string{"🎉", "🎉"}) {
			t.Errorf("unexpected emoji: %q", emoji)
		}
	})

	t.Run("round trips through the parser", func(t *testing.T) {
		text := "<@A> 🎉\n<@&2> 🔔"
		defs := reactionrole.Parse(text)
		defs[0].RoleID = "1"

		published, _ := reactionrole.Render(text, defs)
		expected := []reactionrole.Definition{
			{RoleID: "1", Emoji: "🎉"},
			{RoleID: "2", Emoji: "🔔"},
		}
		if actual := reactionrole.Parse(published); !reflect.DeepEqual(actual, expected) {
			t.Errorf("expected: %#v\nactual:%#v", expected, actual)
		}
	})
}
