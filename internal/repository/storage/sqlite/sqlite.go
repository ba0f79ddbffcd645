package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	// import the SQLite driver to register it with the database/sql package.
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS players (
	id     INTEGER PRIMARY KEY AUTOINCREMENT,
	name   TEXT    NOT NULL,
	score  INTEGER NOT NULL DEFAULT 0 CHECK (score >= 0),
	hash   TEXT    NOT NULL
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_players_name ON players (name);

CREATE TABLE IF NOT EXISTS games (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	player_1_id INTEGER NOT NULL REFERENCES players (id),
	player_2_id INTEGER NOT NULL REFERENCES players (id),
	turn        INTEGER NOT NULL,
	board       INTEGER NOT NULL,
	version     INTEGER NOT NULL DEFAULT 0,
	CHECK (player_1_id <> player_2_id)
);
`

type Storage struct {
	Connection *sql.DB
}

// New opens the database file and creates the schema if needed. The busy
// timeout bounds how long a writer waits on a locked database, so store
// operations never hang.
func New(ctx context.Context, path string) (*Storage, error) {
	conn, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("can't open database: %w", err)
	}

	if err = conn.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("can't connect to database: %w", err)
	}

	if _, err = conn.ExecContext(ctx, schema); err != nil {
		return nil, fmt.Errorf("can't create schema: %w", err)
	}

	return &Storage{Connection: conn}, nil
}

func (that *Storage) Close() error {
	return that.Connection.Close()
}
