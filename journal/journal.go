// Package journal keeps a record of the boards the bot published.
//
// The journal is only an audit trail. Boards work without it and reactions
// never consult it.
package journal

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Entry describes a published board.
type Entry struct {
	GuildID   string    `datastore:"GuildID"`
	ChannelID string    `datastore:"ChannelID,noindex"`
	MessageID string    `datastore:"MessageID,noindex"`
	AuthorID  string    `datastore:"AuthorID,noindex"`
	RoleIDs   []string  `datastore:"RoleIDs,noindex"`
	Emoji     []string  `datastore:"Emoji,noindex"`
	CreatedAt time.Time `datastore:"CreatedAt"`
}

// Link returns the Discord URL of the board message.
func (e Entry) Link() string {
	return fmt.Sprintf("https://discord.com/channels/%s/%s/%s", e.GuildID, e.ChannelID, e.MessageID)
}

// Store persists entries.
type Store interface {
	// Put records an entry, replacing any entry for the same message.
	Put(context.Context, Entry) error
	// List returns the newest entries of a guild first. A limit <= 0
	// returns all of them.
	List(_ context.Context, guildID string, limit int) ([]Entry, error)
	Close() error
}

// Config selects and configures a Store driver.
type Config struct {
	// Driver is "sqlite", "datastore" or "" to disable the journal.
	Driver string
	// DSN is the SQLite database path.
	DSN string
	// Project is the Google Cloud project holding the Datastore.
	Project string
}

// ErrUnknownDriver is returned by Open for unsupported drivers.
var ErrUnknownDriver = errors.New("unknown journal driver")

// Open returns the Store selected by cfg. It returns a nil Store when the
// journal is disabled.
func Open(ctx context.Context, cfg Config) (Store, error) {
	switch cfg.Driver {
	case "":
		return nil, nil
	case "sqlite":
		s, err := OpenSQLite(ctx, cfg.DSN)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "datastore":
		s, err := OpenDatastore(ctx, cfg.Project)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}
}
