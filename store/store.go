// Package store persists scan history, recommendation lifecycle, and access
// codes in a single SQLite database.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	_ "modernc.org/sqlite"
)

// schema is executed on every open; all statements are idempotent.
const schema = `
CREATE TABLE IF NOT EXISTS scans (
	id                      INTEGER PRIMARY KEY AUTOINCREMENT,
	url                     TEXT    NOT NULL,
	scan_date               INTEGER NOT NULL, -- unix milliseconds
	total_score             INTEGER NOT NULL,
	content_structure_score INTEGER NOT NULL,
	technical_score         INTEGER NOT NULL,
	metadata_score          INTEGER NOT NULL,
	accessibility_score     INTEGER NOT NULL,
	speed_score             INTEGER NOT NULL,
	structured_data_present INTEGER NOT NULL,
	faq_present             INTEGER NOT NULL,
	mobile_friendly         INTEGER NOT NULL,
	fingerprint             INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_scans_url_date ON scans(url, scan_date);

CREATE TABLE IF NOT EXISTS recommendations (
	id                  INTEGER PRIMARY KEY AUTOINCREMENT,
	url                 TEXT    NOT NULL,
	creation_date       INTEGER NOT NULL, -- unix milliseconds
	type                TEXT    NOT NULL,
	description         TEXT    NOT NULL,
	priority            INTEGER NOT NULL,
	points_potential    INTEGER NOT NULL,
	status              TEXT    NOT NULL DEFAULT 'pending',
	implementation_date INTEGER,          -- unix milliseconds, NULL unless implemented
	notes               TEXT    NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_recommendations_url ON recommendations(url);

CREATE TABLE IF NOT EXISTS access_codes (
	id    INTEGER PRIMARY KEY AUTOINCREMENT,
	email TEXT    NOT NULL UNIQUE,
	code  TEXT    NOT NULL UNIQUE,
	used  INTEGER NOT NULL DEFAULT 0
);
`

// pragmas applied on open, in order.
var pragmas = []string{
	"PRAGMA journal_mode = WAL",
	"PRAGMA busy_timeout = 10000",
	"PRAGMA synchronous = NORMAL",
	"PRAGMA foreign_keys = ON",
}

// Store wraps the SQLite handle. The now field is the clock used for every
// timestamp write so tests can simulate time passing.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (creating if needed) the database at path and ensures the
// schema exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open: %w", err)
	}

	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("store: apply %q: %w", p, err)
		}
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: create schema: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: ping: %w", err)
	}

	return &Store{db: db, now: time.Now}, nil
}

// OpenMemory opens an in-memory database for tests. The connection pool is
// capped at one connection so every query sees the same :memory: database.
func OpenMemory(tb testing.TB) *Store {
	tb.Helper()
	s, err := Open(":memory:")
	if err != nil {
		tb.Fatalf("store: open memory: %v", err)
	}
	s.db.SetMaxOpenConns(1)
	tb.Cleanup(func() { s.Close() })
	return s
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping verifies the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
