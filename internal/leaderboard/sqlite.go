package leaderboard

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/gob"
	"errors"
	"fmt"
	"sync"

	_ "github.com/mattn/go-sqlite3"
)

const (
	sqliteTable = "leaderboard"
	entriesKey  = "entries"
)

// SQLiteStore keeps gob-encoded values in a key/value table. The ranked
// list lives under a single key.
type SQLiteStore struct {
	mu sync.Mutex
	db *sql.DB
}

// OpenSQLite opens (or creates) the database file at path.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("unable to open sqlite db: %w", err)
	}
	s, err := NewSQLiteStore(ctx, db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func NewSQLiteStore(ctx context.Context, db *sql.DB) (*SQLiteStore, error) {
	_, err := db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS `+sqliteTable+` (
	key		TEXT PRIMARY KEY,
	value	BLOB
);`)
	if err != nil {
		return nil, fmt.Errorf("unable to create %s table: %w", sqliteTable, err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Load(ctx context.Context) ([]Entry, error) {
	var v []byte
	err := s.db.QueryRowContext(
		ctx, `SELECT value FROM `+sqliteTable+` WHERE key = ?;`, entriesKey,
	).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var entries []Entry
	if err := gob.NewDecoder(bytes.NewReader(v)).Decode(&entries); err != nil {
		return nil, fmt.Errorf("malformed leaderboard value: %w", err)
	}
	return entries, nil
}

// Save inserts the list or replaces the stored one.
func (s *SQLiteStore) Save(ctx context.Context, entries []Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(entries); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `
INSERT INTO `+sqliteTable+` (key, value)
VALUES(?, ?)
ON CONFLICT(key)
DO UPDATE SET value=excluded.value;`,
		entriesKey, buf.Bytes())
	return err
}
