package cli

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runnerr0/studystream/internal/study"
)

func TestDashboardHumanOutput(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	now := time.Date(2026, 8, 28, 17, 0, 0, 0, time.UTC)

	pomo := study.NewPomodoro(store)
	require.NoError(t, pomo.Load(ctx))
	_, err := pomo.Increment(ctx, "2026-08-28")
	require.NoError(t, err)

	tasks := study.NewChecklist(store)
	require.NoError(t, tasks.Load(ctx))
	_, err = tasks.Add(ctx, "finish lab writeup", now)
	require.NoError(t, err)

	cmd := &DashboardCommand{globals: &GlobalFlags{}, version: "test"}
	output := captureOutput(t, func() {
		require.NoError(t, cmd.executeWithStore(store, 5, now))
	})

	assert.Contains(t, output, "StudyStream Dashboard")
	assert.Contains(t, output, "2026-08-28")
	assert.Contains(t, output, "Streak:          1 day")
	assert.Contains(t, output, "finish lab writeup")
}

func TestDashboardJSONOutput(t *testing.T) {
	store := openTestStore(t)
	now := time.Date(2026, 8, 28, 17, 0, 0, 0, time.UTC)

	cmd := &DashboardCommand{globals: &GlobalFlags{JSON: true}, version: "test"}
	output := captureOutput(t, func() {
		require.NoError(t, cmd.executeWithStore(store, 5, now))
	})

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(output), &decoded))
	assert.Equal(t, "2026-08-28", decoded["date"])
	assert.EqualValues(t, 0, decoded["pomodoros_today"])
}
