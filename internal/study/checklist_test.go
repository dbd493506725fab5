package study

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChecklist_AddToggleDelete(t *testing.T) {
	c := NewChecklist(openTestStore(t))
	ctx := context.Background()
	require.NoError(t, c.Load(ctx))

	now := mustTime(t, "2026-08-28T09:00:00Z")
	task, err := c.Add(ctx, "read chapter 4", now)
	require.NoError(t, err)
	assert.Equal(t, now.UnixMilli(), task.ID)
	assert.False(t, task.Completed)

	require.NoError(t, c.Toggle(ctx, task.ID))
	assert.True(t, c.Tasks(TaskFilterAll)[0].Completed)

	// Toggle is its own inverse.
	require.NoError(t, c.Toggle(ctx, task.ID))
	assert.False(t, c.Tasks(TaskFilterAll)[0].Completed)

	require.NoError(t, c.Delete(ctx, task.ID))
	assert.Empty(t, c.Tasks(TaskFilterAll))
}

func TestChecklist_Toggle_NotFound(t *testing.T) {
	c := NewChecklist(openTestStore(t))
	ctx := context.Background()
	require.NoError(t, c.Load(ctx))

	err := c.Toggle(ctx, 12345)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestChecklist_Filters(t *testing.T) {
	c := NewChecklist(openTestStore(t))
	ctx := context.Background()
	require.NoError(t, c.Load(ctx))

	base := mustTime(t, "2026-08-28T09:00:00Z")
	var ids []int64
	for i := 0; i < 4; i++ {
		task, err := c.Add(ctx, fmt.Sprintf("task %d", i), base.Add(time.Duration(i)*time.Second))
		require.NoError(t, err)
		ids = append(ids, task.ID)
	}
	require.NoError(t, c.Toggle(ctx, ids[1]))
	require.NoError(t, c.Toggle(ctx, ids[3]))

	assert.Len(t, c.Tasks(TaskFilterAll), 4)
	assert.Len(t, c.Tasks(TaskFilterActive), 2)
	assert.Len(t, c.Tasks(TaskFilterCompleted), 2)
	assert.Equal(t, 2, c.Remaining())
}

func TestChecklist_ClearCompleted(t *testing.T) {
	c := NewChecklist(openTestStore(t))
	ctx := context.Background()
	require.NoError(t, c.Load(ctx))

	base := mustTime(t, "2026-08-28T09:00:00Z")
	keep, err := c.Add(ctx, "keep me", base)
	require.NoError(t, err)
	done, err := c.Add(ctx, "done with me", base.Add(time.Second))
	require.NoError(t, err)
	require.NoError(t, c.Toggle(ctx, done.ID))

	require.NoError(t, c.ClearCompleted(ctx))

	remaining := c.Tasks(TaskFilterAll)
	require.Len(t, remaining, 1)
	assert.Equal(t, keep.ID, remaining[0].ID)
}

func TestChecklist_Focus_BoundedAndOrdered(t *testing.T) {
	c := NewChecklist(openTestStore(t))
	ctx := context.Background()
	require.NoError(t, c.Load(ctx))

	base := mustTime(t, "2026-08-28T09:00:00Z")
	for i := 0; i < 8; i++ {
		_, err := c.Add(ctx, fmt.Sprintf("task %d", i), base.Add(time.Duration(i)*time.Second))
		require.NoError(t, err)
	}
	// Complete task 2; it must not appear in the focus list.
	require.NoError(t, c.Toggle(ctx, c.Tasks(TaskFilterAll)[2].ID))

	focus := c.Focus(5)
	require.Len(t, focus, 5)
	assert.Equal(t, "task 0", focus[0].Text)
	assert.Equal(t, "task 1", focus[1].Text)
	assert.Equal(t, "task 3", focus[2].Text, "completed tasks are skipped, order preserved")
}

func TestChecklist_CompletedOn(t *testing.T) {
	c := NewChecklist(openTestStore(t))
	ctx := context.Background()
	require.NoError(t, c.Load(ctx))

	today, err := c.Add(ctx, "today's task", mustTime(t, "2026-08-28T08:00:00Z"))
	require.NoError(t, err)
	yesterday, err := c.Add(ctx, "yesterday's task", mustTime(t, "2026-08-27T08:00:00Z"))
	require.NoError(t, err)

	require.NoError(t, c.Toggle(ctx, today.ID))
	require.NoError(t, c.Toggle(ctx, yesterday.ID))

	assert.Equal(t, 1, c.CompletedOn("2026-08-28"))
	assert.Equal(t, 1, c.CompletedOn("2026-08-27"))
	assert.Equal(t, 0, c.CompletedOn("2026-08-26"))
}
