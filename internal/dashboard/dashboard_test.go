package dashboard

import (
	"context"
	"database/sql"
	"fmt"
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

func TestBuild(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	now, err := time.Parse(time.RFC3339, "2026-08-28T17:00:00Z")
	require.NoError(t, err)

	pomo := study.NewPomodoro(store)
	cards := study.NewFlashcards(store)
	tasks := study.NewChecklist(store)
	require.NoError(t, pomo.Load(ctx))
	require.NoError(t, cards.Load(ctx))
	require.NoError(t, tasks.Load(ctx))

	for i := 0; i < 3; i++ {
		_, err := pomo.Increment(ctx, "2026-08-28")
		require.NoError(t, err)
	}
	_, err = pomo.Increment(ctx, "2026-08-27")
	require.NoError(t, err)

	require.NoError(t, cards.MarkReviewed(ctx, "2026-08-28", 12))

	for i := 0; i < 7; i++ {
		_, err := tasks.Add(ctx, fmt.Sprintf("task %d", i), now.Add(time.Duration(i)*time.Second))
		require.NoError(t, err)
	}
	require.NoError(t, tasks.Toggle(ctx, tasks.Tasks(study.TaskFilterAll)[0].ID))
	require.NoError(t, tasks.Toggle(ctx, tasks.Tasks(study.TaskFilterAll)[1].ID))

	s := Build(now, pomo, cards, tasks, 5)

	assert.Equal(t, "2026-08-28", s.Date)
	assert.Equal(t, 3, s.PomodorosToday)
	assert.Equal(t, 12, s.CardsReviewedToday)
	assert.Equal(t, 2, s.TasksCompletedToday)
	assert.Equal(t, 2, s.Streak)
	assert.Equal(t, [7]int{0, 0, 0, 0, 0, 1, 3}, s.Week)

	require.Len(t, s.Focus, 5, "focus list holds the first incomplete tasks")
	assert.Equal(t, "task 2", s.Focus[0].Text)
}

func TestBuild_EmptyState(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	now, err := time.Parse(time.RFC3339, "2026-08-28T17:00:00Z")
	require.NoError(t, err)

	pomo := study.NewPomodoro(store)
	cards := study.NewFlashcards(store)
	tasks := study.NewChecklist(store)
	require.NoError(t, pomo.Load(ctx))
	require.NoError(t, cards.Load(ctx))
	require.NoError(t, tasks.Load(ctx))

	s := Build(now, pomo, cards, tasks, 0)
	assert.Zero(t, s.PomodorosToday)
	assert.Zero(t, s.Streak)
	assert.Empty(t, s.Focus)
}
