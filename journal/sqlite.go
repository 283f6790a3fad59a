package journal

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS boards (
	guild_id   TEXT NOT NULL,
	channel_id TEXT NOT NULL,
	message_id TEXT NOT NULL,
	author_id  TEXT NOT NULL,
	role_ids   TEXT NOT NULL,
	emoji      TEXT NOT NULL,
	created_at INTEGER NOT NULL,
	PRIMARY KEY (channel_id, message_id)
);
CREATE INDEX IF NOT EXISTS boards_guild_created ON boards (guild_id, created_at);
`

// SQLiteStore implements Store on a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens or creates the database at path.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening journal database: %w", err)
	}
	// SQLite has a single writer, and ":memory:" databases are per
	// connection.
	db.SetMaxOpenConns(1)

	s, err := NewSQLiteStore(ctx, db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// NewSQLiteStore creates a SQLite backed store and ensures its schema.
func NewSQLiteStore(ctx context.Context, db *sql.DB) (*SQLiteStore, error) {
	if db == nil {
		return nil, errors.New("db is nil")
	}
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		return nil, fmt.Errorf("creating journal schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Put(ctx context.Context, e Entry) error {
	roleIDs, err := json.Marshal(nonNil(e.RoleIDs))
	if err != nil {
		return err
	}
	emoji, err := json.Marshal(nonNil(e.Emoji))
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO boards (
			guild_id, channel_id, message_id, author_id, role_ids, emoji, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		e.GuildID,
		e.ChannelID,
		e.MessageID,
		e.AuthorID,
		string(roleIDs),
		string(emoji),
		e.CreatedAt.UTC().UnixNano(),
	)
	return err
}

func (s *SQLiteStore) List(ctx context.Context, guildID string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT guild_id, channel_id, message_id, author_id, role_ids, emoji, created_at
		FROM boards
		WHERE guild_id = ?
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`, guildID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e              Entry
			roleIDs, emoji string
			createdAt      int64
		)
		if err := rows.Scan(&e.GuildID, &e.ChannelID, &e.MessageID, &e.AuthorID, &roleIDs, &emoji, &createdAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(roleIDs), &e.RoleIDs); err != nil {
			return nil, fmt.Errorf("decoding role ids: %w", err)
		}
		if err := json.Unmarshal([]byte(emoji), &e.Emoji); err != nil {
			return nil, fmt.Errorf("decoding emoji: %w", err)
		}
		e.CreatedAt = time.Unix(0, createdAt).UTC()
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
