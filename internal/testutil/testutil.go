package testutil

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
	"github.com/vytor/ivanachess/internal/db"
)

// NewTestDB creates an in-memory SQLite database with all migrations applied.
// The pool is held to one connection: every new connection to ":memory:"
// would see a fresh, empty database.
func NewTestDB(t *testing.T) *sql.DB {
	conn, err := sql.Open("sqlite3", ":memory:?_foreign_keys=on")
	require.NoError(t, err)
	conn.SetMaxOpenConns(1)

	require.NoError(t, db.Migrate(context.Background(), conn), "failed to apply migrations")
	return conn
}

// MustClose closes a resource and fails the test on error.
func MustClose(t *testing.T, closer interface{ Close() error }) {
	require.NoError(t, closer.Close())
}
