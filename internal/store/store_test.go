package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exerciseStore runs the behaviour every Store must share
func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	_, ok, err := s.Get(ctx, "portfolioData")
	require.NoError(t, err)
	assert.False(t, ok, "unset key should report ok=false")

	require.NoError(t, s.Set(ctx, "portfolioData", `{"name":"Jo"}`))
	v, ok, err := s.Get(ctx, "portfolioData")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"name":"Jo"}`, v)

	// Set overwrites
	require.NoError(t, s.Set(ctx, "portfolioData", `{"name":"Sam"}`))
	v, _, err = s.Get(ctx, "portfolioData")
	require.NoError(t, err)
	assert.Equal(t, `{"name":"Sam"}`, v)

	// Keys are independent and empty values are still "set"
	require.NoError(t, s.Set(ctx, "theme", ""))
	v, ok, err = s.Get(ctx, "theme")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "", v)
}

func TestMemory(t *testing.T) {
	s := NewMemory()
	defer func() { _ = s.Close() }()
	exerciseStore(t, s)
}

func TestSQLite(t *testing.T) {
	s, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "nested", "portfolio.db"))
	require.NoError(t, err)
	defer func() { _ = s.Close() }()
	exerciseStore(t, s)
}

func TestSQLite_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "portfolio.db")

	s, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "theme", "dark"))
	require.NoError(t, s.Close())

	reopened, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()

	v, ok, err := reopened.Get(ctx, "theme")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "dark", v)
}

func TestSQLite_EmptyPath(t *testing.T) {
	_, err := OpenSQLite(context.Background(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database path is empty")
}

func TestSQLite_ClosedStoreReturnsError(t *testing.T) {
	ctx := context.Background()
	s, err := OpenSQLite(ctx, filepath.Join(t.TempDir(), "portfolio.db"))
	require.NoError(t, err)
	require.NoError(t, s.Close())

	err = s.Set(ctx, "theme", "dark")
	require.Error(t, err)

	var storeErr *Error
	require.True(t, errors.As(err, &storeErr))
	assert.Equal(t, "set", storeErr.Op)
	assert.Equal(t, "theme", storeErr.Key)
}

func TestOpen_SelectsDriver(t *testing.T) {
	ctx := context.Background()

	s, err := Open(ctx, "", "")
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, s)

	s, err = Open(ctx, DriverSQLite, filepath.Join(t.TempDir(), "p.db"))
	require.NoError(t, err)
	assert.IsType(t, &SQLite{}, s)
	_ = s.Close()

	_, err = Open(ctx, "redis", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown driver")
}

func TestConnectPostgres_EmptyURL(t *testing.T) {
	_, err := ConnectPostgres(context.Background(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database URL is empty")
}

func TestError_Format(t *testing.T) {
	err := &Error{Driver: "sqlite", Op: "get", Key: "theme", Message: "query failed", Cause: errors.New("disk I/O")}
	assert.Equal(t, `store get sqlite key "theme": query failed: disk I/O`, err.Error())
	assert.EqualError(t, errors.Unwrap(err), "disk I/O")
}
