package store

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"

	// use the sqlite db driver.
	_ "github.com/mattn/go-sqlite3"
)

//go:embed base.sql
var baseSQL string

// Store persists named records in a sqlite file. Each record is an opaque
// serialized document; callers own the encoding. Every write replaces the
// record wholesale, so a record is always either its previous or its new
// value, never a mix.
type Store struct {
	conn *sql.DB
}

// Open connects to the sqlite database at the given filename and initializes
// the structure if not present.
func Open(ctx context.Context, filename string) (*Store, error) {
	conn, err := sql.Open("sqlite3", filename)
	if err != nil {
		return nil, fmt.Errorf("error connecting to sqlite db at %s: %w", filename, err)
	}

	if _, err := conn.ExecContext(ctx, baseSQL); err != nil {
		return nil, fmt.Errorf("error running base sql: %w", err)
	}

	return &Store{conn: conn}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

// Get returns the record stored under key. The second return value is false
// when no such record exists.
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte

	row := s.conn.QueryRowContext(ctx, `SELECT value FROM record WHERE key = $1`, key)
	if err := row.Scan(&value); err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}

		return nil, false, fmt.Errorf("error reading record %s: %w", key, err)
	}

	return value, true, nil
}

// Set stores value under key, replacing any existing record.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.conn.ExecContext(
		ctx,
		`INSERT INTO record (key, value) VALUES ($1, $2)
		     ON CONFLICT (key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("error writing record %s: %w", key, err)
	}

	return nil
}

// Delete removes the record stored under key, if any.
func (s *Store) Delete(ctx context.Context, key string) error {
	if _, err := s.conn.ExecContext(ctx, `DELETE FROM record WHERE key = $1`, key); err != nil {
		return fmt.Errorf("error deleting record %s: %w", key, err)
	}

	return nil
}

// Clear removes all records.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.conn.ExecContext(ctx, `DELETE FROM record`); err != nil {
		return fmt.Errorf("error clearing records: %w", err)
	}

	return nil
}
