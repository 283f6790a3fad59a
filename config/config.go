// Package config loads the bot configuration from defaults, an optional
// YAML file and ROLEBOT_ environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "ROLEBOT_"

// Config is the complete bot configuration.
type Config struct {
	Name      string          `koanf:"name"`
	DevMode   bool            `koanf:"devmode"`
	Discord   DiscordConfig   `koanf:"discord"`
	Command   CommandConfig   `koanf:"command"`
	Journal   JournalConfig   `koanf:"journal"`
	Slack     SlackConfig     `koanf:"slack"`
	HTTP      HTTPConfig      `koanf:"http"`
	Telemetry TelemetryConfig `koanf:"telemetry"`
}

// DiscordConfig holds the Discord credentials.
type DiscordConfig struct {
	Token string `koanf:"token"`
}

// CommandConfig controls how commands are recognised.
type CommandConfig struct {
	Prefix string `koanf:"prefix"`
	// Role is the role a member needs to publish boards.
	Role string `koanf:"role"`
}

// JournalConfig selects where published boards are recorded.
type JournalConfig struct {
	Driver  string `koanf:"driver"` // "", sqlite, datastore
	DSN     string `koanf:"dsn"`
	Project string `koanf:"project"`
}

// SlackConfig points operator notifications at a Slack channel.
type SlackConfig struct {
	Token   string `koanf:"token"`
	Channel string `koanf:"channel"`
}

// HTTPConfig configures the health endpoints.
type HTTPConfig struct {
	Addr string `koanf:"addr"`
}

// TelemetryConfig selects the OpenTelemetry exporter.
type TelemetryConfig struct {
	Exporter string `koanf:"exporter"` // none, stdout, otlp
	Endpoint string `koanf:"endpoint"`
	Insecure bool   `koanf:"insecure"`
}

var defaults = map[string]interface{}{
	"name":               "rolebot",
	"devmode":            false,
	"command.prefix":     "!",
	"command.role":       "Wizard",
	"journal.dsn":        "rolebot.db",
	"http.addr":          ":8080",
	"telemetry.exporter": "none",
}

// Load reads the configuration. path may be empty.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	for key, value := range defaults {
		if err := k.Set(key, value); err != nil {
			return nil, fmt.Errorf("setting default %s: %w", key, err)
		}
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("loading %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.Replace(strings.ToLower(
			strings.TrimPrefix(s, EnvPrefix)), "_", ".", -1)
	}), nil); err != nil {
		return nil, err
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, cfg.Validate()
}

// Validate reports settings the bot can't start with.
func (c *Config) Validate() error {
	var errs []error
	if c.Discord.Token == "" {
		errs = append(errs, errors.New("discord token must be set in the "+EnvPrefix+"DISCORD_TOKEN environment variable"))
	}
	if c.Command.Prefix == "" {
		errs = append(errs, errors.New("command prefix must not be empty"))
	}
	switch c.Journal.Driver {
	case "", "sqlite":
	case "datastore":
		if c.Journal.Project == "" {
			errs = append(errs, errors.New("journal project is required for the datastore driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown journal driver: %s", c.Journal.Driver))
	}
	switch c.Telemetry.Exporter {
	case "", "none", "stdout":
	case "otlp":
		if c.Telemetry.Endpoint == "" {
			errs = append(errs, errors.New("telemetry endpoint is required for the otlp exporter"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown telemetry exporter: %s", c.Telemetry.Exporter))
	}
	return errors.Join(errs...)
}
