// Package store provides the key-value stores that portfolio state is persisted to.
package store

import (
	"context"
	"fmt"
)

// Store is a string-keyed store of string values.
type Store interface {
	// Get returns the value for key; ok is false when the key was never set.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	// Set overwrites the value for key.
	Set(ctx context.Context, key, value string) error
	// Close releases any underlying resources.
	Close() error
}

// Supported driver names
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Error represents a failure talking to a backing store
type Error struct {
	Driver  string
	Op      string
	Key     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	target := e.Driver
	if e.Key != "" {
		target = fmt.Sprintf("%s key %q", e.Driver, e.Key)
	}
	if e.Cause != nil {
		return fmt.Sprintf("store %s %s: %s: %v", e.Op, target, e.Message, e.Cause)
	}
	return fmt.Sprintf("store %s %s: %s", e.Op, target, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Open creates the store for driver. dsn is a file path for sqlite and a
// connection URL for postgres; it is ignored for memory.
func Open(ctx context.Context, driver, dsn string) (Store, error) {
	switch driver {
	case "", DriverMemory:
		return NewMemory(), nil
	case DriverSQLite:
		return OpenSQLite(ctx, dsn)
	case DriverPostgres:
		return ConnectPostgres(ctx, dsn)
	default:
		return nil, &Error{Driver: driver, Op: "open", Message: "unknown driver"}
	}
}
