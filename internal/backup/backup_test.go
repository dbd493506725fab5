package backup

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runnerr0/studystream/internal/storage"
	"github.com/runnerr0/studystream/internal/study"
)

func openTestStore(t *testing.T) *storage.SQLiteStore {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, storage.NewMigrationRunner(db).Run())

	store, err := storage.NewSQLiteStore(db)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func testNow(t *testing.T) time.Time {
	t.Helper()
	now, err := time.Parse(time.RFC3339, "2026-08-28T18:00:00Z")
	require.NoError(t, err)
	return now
}

func TestExport_AbsentKeysAreNull(t *testing.T) {
	store := openTestStore(t)
	archive, err := Export(context.Background(), store, testNow(t))
	require.NoError(t, err)

	assert.Nil(t, archive.Flashcards)
	assert.Nil(t, archive.Pomodoro)
	assert.Equal(t, "2026-08-28T18:00:00Z", archive.ExportedAt)
}

func TestExport_CarriesStoredValuesVerbatim(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, study.KeyPomodoro, `{"2026-08-28":3}`))
	require.NoError(t, store.Set(ctx, study.KeyNotes, `[{"title":"a","content":"b","date":"x"}]`))

	archive, err := Export(ctx, store, testNow(t))
	require.NoError(t, err)

	require.NotNil(t, archive.Pomodoro)
	assert.Equal(t, `{"2026-08-28":3}`, *archive.Pomodoro)
	require.NotNil(t, archive.Notes)
	assert.Nil(t, archive.Checklist)
}

func TestImport_ThenReload_ReproducesState(t *testing.T) {
	ctx := context.Background()
	now := testNow(t)

	// Build real state on the source store.
	source := openTestStore(t)
	tasks := study.NewChecklist(source)
	require.NoError(t, tasks.Load(ctx))
	_, err := tasks.Add(ctx, "revise chapter 2", now)
	require.NoError(t, err)

	pomo := study.NewPomodoro(source)
	require.NoError(t, pomo.Load(ctx))
	_, err = pomo.Increment(ctx, "2026-08-28")
	require.NoError(t, err)

	archive, err := Export(ctx, source, now)
	require.NoError(t, err)

	// Round-trip through the JSON form like a file on disk.
	data, err := Encode(archive)
	require.NoError(t, err)
	decoded, err := Decode(data)
	require.NoError(t, err)

	// Import into a fresh store and reload.
	target := openTestStore(t)
	require.NoError(t, Import(ctx, target, decoded))

	restoredTasks := study.NewChecklist(target)
	require.NoError(t, restoredTasks.Load(ctx))
	assert.Equal(t, tasks.Tasks(study.TaskFilterAll), restoredTasks.Tasks(study.TaskFilterAll))

	restoredPomo := study.NewPomodoro(target)
	require.NoError(t, restoredPomo.Load(ctx))
	assert.Equal(t, 1, restoredPomo.CountOn("2026-08-28"))
}

func TestImport_NullFieldsLeaveStateAlone(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, study.KeyNotes, `[]`))

	value := `{"2026-08-28":5}`
	require.NoError(t, Import(ctx, store, Archive{Pomodoro: &value}))

	notes, ok, err := store.Get(ctx, study.KeyNotes)
	require.NoError(t, err)
	require.True(t, ok, "null archive field must not delete existing data")
	assert.Equal(t, `[]`, notes)

	pomo, ok, err := store.Get(ctx, study.KeyPomodoro)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, value, pomo)
}

func TestDecode_RejectsGarbage(t *testing.T) {
	_, err := Decode([]byte("not json at all"))
	require.Error(t, err)
}

func TestPurge_RemovesOnlyOwnedKeys(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, study.KeyNotes, `[]`))
	require.NoError(t, store.Set(ctx, study.KeyPomodoro, `{}`))
	require.NoError(t, store.Set(ctx, "other_app_data", "keep"))

	n, err := Purge(ctx, store)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	_, ok, err := store.Get(ctx, study.KeyNotes)
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = store.Get(ctx, "other_app_data")
	require.NoError(t, err)
	assert.True(t, ok)
}
