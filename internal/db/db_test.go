package db_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/ivanachess/internal/db"
)

func TestOpen_AppliesMigrationsOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "games.db")
	ctx := context.Background()

	conn, err := db.Open(path)
	require.NoError(t, err)

	var applied int
	require.NoError(t, conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM schema_migrations`).Scan(&applied))
	assert.Equal(t, 3, applied)

	require.NoError(t, db.Migrate(ctx, conn.DB))
	require.NoError(t, conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM schema_migrations`).Scan(&applied))
	assert.Equal(t, 3, applied)

	assert.NoError(t, conn.Ping(ctx))
	require.NoError(t, conn.Close())

	reopened, err := db.Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	var tables int
	require.NoError(t, reopened.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name IN ('games', 'moves', 'game_tags')`).Scan(&tables))
	assert.Equal(t, 3, tables)
}
