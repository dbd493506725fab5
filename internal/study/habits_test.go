package study

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHabits_ToggleCompletion_IsItsOwnInverse(t *testing.T) {
	h := NewHabits(openTestStore(t))
	ctx := context.Background()
	require.NoError(t, h.Load(ctx))

	habit, err := h.Add(ctx, "morning review", "daily", mustTime(t, "2026-08-28T07:00:00Z"))
	require.NoError(t, err)

	day := "2026-08-28"
	assert.False(t, h.CompletedOn(habit.ID, day))

	require.NoError(t, h.ToggleCompletion(ctx, habit.ID, day))
	assert.True(t, h.CompletedOn(habit.ID, day))

	require.NoError(t, h.ToggleCompletion(ctx, habit.ID, day))
	assert.False(t, h.CompletedOn(habit.ID, day), "double toggle returns to the original state")
	assert.Empty(t, h.Habits()[0].Completions)
}

func TestHabits_CompletionsAreKeyedByDay(t *testing.T) {
	h := NewHabits(openTestStore(t))
	ctx := context.Background()
	require.NoError(t, h.Load(ctx))

	habit, err := h.Add(ctx, "flashcard session", "daily", mustTime(t, "2026-08-28T07:00:00Z"))
	require.NoError(t, err)

	require.NoError(t, h.ToggleCompletion(ctx, habit.ID, "2026-08-27"))
	require.NoError(t, h.ToggleCompletion(ctx, habit.ID, "2026-08-28"))

	assert.True(t, h.CompletedOn(habit.ID, "2026-08-27"))
	assert.True(t, h.CompletedOn(habit.ID, "2026-08-28"))
	assert.False(t, h.CompletedOn(habit.ID, "2026-08-26"))
}

func TestHabits_Toggle_UnknownHabit(t *testing.T) {
	h := NewHabits(openTestStore(t))
	ctx := context.Background()
	require.NoError(t, h.Load(ctx))

	err := h.ToggleCompletion(ctx, 999, "2026-08-28")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestHabits_Add_DefaultsFrequency(t *testing.T) {
	h := NewHabits(openTestStore(t))
	ctx := context.Background()
	require.NoError(t, h.Load(ctx))

	habit, err := h.Add(ctx, "stretch", "", mustTime(t, "2026-08-28T07:00:00Z"))
	require.NoError(t, err)
	assert.Equal(t, "daily", habit.Frequency)
}

func TestHabits_Delete(t *testing.T) {
	h := NewHabits(openTestStore(t))
	ctx := context.Background()
	require.NoError(t, h.Load(ctx))

	habit, err := h.Add(ctx, "temp", "weekly", mustTime(t, "2026-08-28T07:00:00Z"))
	require.NoError(t, err)
	require.NoError(t, h.Delete(ctx, habit.ID))
	assert.Empty(t, h.Habits())
}
