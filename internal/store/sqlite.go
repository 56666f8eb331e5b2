package store

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// SQLite is a Store kept in a single SQLite file, the on-disk counterpart of
// browser local storage.
type SQLite struct {
	conn *sql.DB
}

// OpenSQLite opens (or creates) the database at path and ensures the kv table exists.
func OpenSQLite(ctx context.Context, path string) (*SQLite, error) {
	if path == "" {
		return nil, &Error{Driver: DriverSQLite, Op: "open", Message: "database path is empty"}
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, &Error{Driver: DriverSQLite, Op: "open", Message: "failed to create db directory", Cause: err}
		}
	}

	conn, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, &Error{Driver: DriverSQLite, Op: "open", Message: "failed to open database", Cause: err}
	}
	// SQLite allows a single writer; one connection also keeps :memory: databases shared.
	conn.SetMaxOpenConns(1)

	_, err = conn.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`)
	if err != nil {
		_ = conn.Close()
		return nil, &Error{Driver: DriverSQLite, Op: "open", Message: "failed to create kv table", Cause: err}
	}

	return &SQLite{conn: conn}, nil
}

// Get implements Store.
func (s *SQLite) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.conn.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, &Error{Driver: DriverSQLite, Op: "get", Key: key, Message: "query failed", Cause: err}
	}
	return value, true, nil
}

// Set implements Store.
func (s *SQLite) Set(ctx context.Context, key, value string) error {
	_, err := s.conn.ExecContext(ctx,
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, value,
	)
	if err != nil {
		return &Error{Driver: DriverSQLite, Op: "set", Key: key, Message: "upsert failed", Cause: err}
	}
	return nil
}

// Close implements Store.
func (s *SQLite) Close() error {
	return s.conn.Close()
}
