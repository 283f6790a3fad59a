package journal

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSQLiteStore(t *testing.T) {
	ctx := context.Background()
	s, err := OpenSQLite(ctx, ":memory:")
	require.NoError(t, err)
	defer s.Close()

	base := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	for i, e := range []Entry{
		{GuildID: "g1", ChannelID: "c1", MessageID: "m1", AuthorID: "u1", RoleIDs: []string{"1"}, Emoji: []string{"🎉"}},
		{GuildID: "g1", ChannelID: "c1", MessageID: "m2", AuthorID: "u1", RoleIDs: []string{"2", "3"}, Emoji: []string{"🔔", "<:pog:9>"}},
		{GuildID: "g2", ChannelID: "c9", MessageID: "m3", AuthorID: "u2"},
	} {
		e.CreatedAt = base.Add(time.Duration(i) * time.Hour)
		require.NoError(t, s.Put(ctx, e))
	}

	t.Run("lists newest first", func(t *testing.T) {
		entries, err := s.List(ctx, "g1", 0)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		require.Equal(t, "m2", entries[0].MessageID)
		require.Equal(t, []string{"2", "3"}, entries[0].RoleIDs)
		require.Equal(t, []string{"🔔", "<:pog:9>"}, entries[0].Emoji)
		require.True(t, base.Add(time.Hour).Equal(entries[0].CreatedAt))
		require.Equal(t, "m1", entries[1].MessageID)
	})

	t.Run("honours the limit", func(t *testing.T) {
		entries, err := s.List(ctx, "g1", 1)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		require.Equal(t, "m2", entries[0].MessageID)
	})

	t.Run("keeps empty lists", func(t *testing.T) {
		entries, err := s.List(ctx, "g2", 0)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		require.Empty(t, entries[0].RoleIDs)
	})

	t.Run("replaces entries of the same message", func(t *testing.T) {
		require.NoError(t, s.Put(ctx, Entry{GuildID: "g2", ChannelID: "c9", MessageID: "m3", AuthorID: "u3", CreatedAt: base}))
		entries, err := s.List(ctx, "g2", 0)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		require.Equal(t, "u3", entries[0].AuthorID)
	})
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	s, err := Open(ctx, Config{})
	require.NoError(t, err)
	require.Nil(t, s)

	_, err = Open(ctx, Config{Driver: "postgres"})
	require.ErrorIs(t, err, ErrUnknownDriver)
}

func TestEntryLink(t *testing.T) {
	e := Entry{GuildID: "1", ChannelID: "2", MessageID: "3"}
	require.Equal(t, "https://discord.com/channels/1/2/3", e.Link())
}
