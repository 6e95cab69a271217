package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAndMigrate(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "dir", "backoffice.db")

	db, err := Open(path)
	require.NoError(t, err)
	defer db.Close()

	pending, err := HasPending(ctx, db)
	require.NoError(t, err)
	assert.True(t, pending)

	applied, err := Migrate(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, 2, applied)

	version, err := SchemaVersion(ctx, db)
	require.NoError(t, err)
	assert.EqualValues(t, 2, version)

	applied, err = Migrate(ctx, db)
	require.NoError(t, err)
	assert.Zero(t, applied)

	pending, err = HasPending(ctx, db)
	require.NoError(t, err)
	assert.False(t, pending)
}

func TestForeignKeysEnforced(t *testing.T) {
	db, err := Open(MemoryPath)
	require.NoError(t, err)
	defer db.Close()
	_, err = Migrate(context.Background(), db)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO portfolio (id, client_id, name) VALUES ('p1', 'missing', 'Orphan')`)

	assert.Error(t, err)
}
