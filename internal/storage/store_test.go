package storage

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openTestStore creates a migrated in-memory Store for testing.
func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	runner := NewMigrationRunner(db)
	require.NoError(t, runner.Run())

	store, err := NewSQLiteStore(db)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return store
}

func TestSetGet_Roundtrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, KeyPrefix+"notes", `[{"title":"a"}]`))

	got, ok, err := store.Get(ctx, KeyPrefix+"notes")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"title":"a"}]`, got)
}

func TestGet_AbsentKey(t *testing.T) {
	store := openTestStore(t)

	got, ok, err := store.Get(context.Background(), KeyPrefix+"missing")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, got)
}

func TestSet_ReplacesExistingValue(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, KeyPrefix+"habits", `[]`))
	require.NoError(t, store.Set(ctx, KeyPrefix+"habits", `[{"id":1}]`))

	got, ok, err := store.Get(ctx, KeyPrefix+"habits")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":1}]`, got)
}

func TestDelete_RemovesKey(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, KeyPrefix+"journal", `[]`))
	require.NoError(t, store.Delete(ctx, KeyPrefix+"journal"))

	_, ok, err := store.Get(ctx, KeyPrefix+"journal")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDelete_AbsentKeyIsNotAnError(t *testing.T) {
	store := openTestStore(t)
	assert.NoError(t, store.Delete(context.Background(), KeyPrefix+"nothing"))
}

func TestKeys_FiltersByPrefix(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, KeyPrefix+"notes", `[]`))
	require.NoError(t, store.Set(ctx, KeyPrefix+"kanban", `[]`))
	require.NoError(t, store.Set(ctx, "other_app_notes", `[]`))

	keys, err := store.Keys(ctx, KeyPrefix)
	require.NoError(t, err)
	assert.Equal(t, []string{KeyPrefix + "kanban", KeyPrefix + "notes"}, keys)
}

func TestKeys_PrefixUnderscoreIsLiteral(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	// A LIKE '_' wildcard would match this key; the literal prefix must not.
	require.NoError(t, store.Set(ctx, "studystreamXnotes", `[]`))

	keys, err := store.Keys(ctx, KeyPrefix)
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestDeletePrefix_RemovesOnlyOwnKeys(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, KeyPrefix+"notes", `[]`))
	require.NoError(t, store.Set(ctx, KeyPrefix+"pomodoro", `{}`))
	require.NoError(t, store.Set(ctx, "unrelated", `x`))

	n, err := store.DeletePrefix(ctx, KeyPrefix)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	_, ok, err := store.Get(ctx, "unrelated")
	require.NoError(t, err)
	assert.True(t, ok, "keys outside the prefix must survive a purge")
}

func TestPersistence_SurvivesStoreReopen(t *testing.T) {
	dir := t.TempDir()
	db, err := sql.Open("sqlite3", dir+"/studystream.db")
	require.NoError(t, err)

	runner := NewMigrationRunner(db)
	require.NoError(t, runner.Run())

	store, err := NewSQLiteStore(db)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, store.Set(ctx, KeyPrefix+"calendar", `[{"id":7}]`))
	require.NoError(t, store.Close())
	require.NoError(t, db.Close())

	db2, err := sql.Open("sqlite3", dir+"/studystream.db")
	require.NoError(t, err)
	defer db2.Close()

	require.NoError(t, NewMigrationRunner(db2).Run())
	store2, err := NewSQLiteStore(db2)
	require.NoError(t, err)
	defer store2.Close()

	got, ok, err := store2.Get(ctx, KeyPrefix+"calendar")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":7}]`, got)
}
