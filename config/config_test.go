package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ROLEBOT_DISCORD_TOKEN", "secret")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "secret", cfg.Discord.Token)
	require.Equal(t, "!", cfg.Command.Prefix)
	require.Equal(t, "Wizard", cfg.Command.Role)
	require.Equal(t, ":8080", cfg.HTTP.Addr)
	require.Equal(t, "none", cfg.Telemetry.Exporter)
	require.Empty(t, cfg.Journal.Driver)
	require.False(t, cfg.DevMode)
	require.Equal(t, "rolebot", cfg.Name)
	require.Equal(t, "rolebot.db", cfg.Journal.DSN)
}

func TestLoadFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rolebot.yaml")
	err := os.WriteFile(path, []byte(`
discord:
  token: from-file
command:
  prefix: "?"
  role: Moderator
journal:
  driver: sqlite
  dsn: /tmp/boards.db
`), 0o600)
	require.NoError(t, err)

	t.Setenv("ROLEBOT_COMMAND_ROLE", "Admin")
	t.Setenv("ROLEBOT_DEVMODE", "true")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "from-file", cfg.Discord.Token)
	require.Equal(t, "?", cfg.Command.Prefix)
	require.Equal(t, "Admin", cfg.Command.Role)
	require.Equal(t, "sqlite", cfg.Journal.Driver)
	require.Equal(t, "/tmp/boards.db", cfg.Journal.DSN)
	require.True(t, cfg.DevMode)
}

func TestValidate(t *testing.T) {
	t.Run("requires a token", func(t *testing.T) {
		cfg := &Config{Command: CommandConfig{Prefix: "!"}}
		require.ErrorContains(t, cfg.Validate(), "ROLEBOT_DISCORD_TOKEN")
	})

	t.Run("rejects unknown drivers", func(t *testing.T) {
		cfg := &Config{
			Discord: DiscordConfig{Token: "x"},
			Command: CommandConfig{Prefix: "!"},
			Journal: JournalConfig{Driver: "postgres"},
		}
		require.ErrorContains(t, cfg.Validate(), "unknown journal driver")
	})

	t.Run("requires an otlp endpoint", func(t *testing.T) {
		cfg := &Config{
			Discord:   DiscordConfig{Token: "x"},
			Command:   CommandConfig{Prefix: "!"},
			Telemetry: TelemetryConfig{Exporter: "otlp"},
		}
		require.ErrorContains(t, cfg.Validate(), "endpoint")
	})

	t.Run("accepts a datastore project", func(t *testing.T) {
		cfg := &Config{
			Discord: DiscordConfig{Token: "x"},
			Command: CommandConfig{Prefix: "!"},
			Journal: JournalConfig{Driver: "datastore", Project: "gophers"},
		}
		require.NoError(t, cfg.Validate())
	})
}
