package pomodoro

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fastTick makes one countdown second take 2 ms of wall time.
const fastTick = 2 * time.Millisecond

func TestTimer_RunsToCompletion(t *testing.T) {
	var mu sync.Mutex
	var completed []Mode
	var ticks int

	timer := NewTimer(
		WithDurations(Durations{Work: 3 * time.Second, ShortBreak: time.Second, LongBreak: time.Second}),
		WithTickInterval(fastTick),
		OnTick(func(time.Duration) {
			mu.Lock()
			ticks++
			mu.Unlock()
		}),
		OnComplete(func(m Mode) {
			mu.Lock()
			completed = append(completed, m)
			mu.Unlock()
		}),
	)

	timer.Start()
	timer.Wait()

	assert.Equal(t, StateIdle, timer.State())
	assert.Equal(t, time.Duration(0), timer.Remaining())

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []Mode{ModeWork}, completed)
	assert.Equal(t, 3, ticks)
}

func TestTimer_StartWhileRunningIsNoOp(t *testing.T) {
	var mu sync.Mutex
	var completions int

	timer := NewTimer(
		WithDurations(Durations{Work: 5 * time.Second, ShortBreak: time.Minute, LongBreak: time.Minute}),
		WithTickInterval(fastTick),
		OnComplete(func(Mode) {
			mu.Lock()
			completions++
			mu.Unlock()
		}),
	)

	timer.Start()
	timer.Start() // must not double-schedule
	timer.Start()
	timer.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, completions)
}

func TestTimer_PauseKeepsRemaining(t *testing.T) {
	timer := NewTimer(
		WithDurations(Durations{Work: time.Hour, ShortBreak: time.Minute, LongBreak: time.Minute}),
		WithTickInterval(fastTick),
	)

	timer.Start()
	time.Sleep(20 * time.Millisecond)
	timer.Pause()

	assert.Equal(t, StatePaused, timer.State())
	remaining := timer.Remaining()
	assert.Less(t, remaining, time.Hour)
	assert.Greater(t, remaining, time.Hour-time.Minute)

	// Paused means no more ticking.
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, remaining, timer.Remaining())
}

func TestTimer_ResetRestoresFullDuration(t *testing.T) {
	timer := NewTimer(
		WithDurations(Durations{Work: time.Hour, ShortBreak: time.Minute, LongBreak: time.Minute}),
		WithTickInterval(fastTick),
	)

	timer.Start()
	time.Sleep(20 * time.Millisecond)
	timer.Reset()

	assert.Equal(t, StateIdle, timer.State())
	assert.Equal(t, time.Hour, timer.Remaining())
}

func TestTimer_PauseWhenIdleIsNoOp(t *testing.T) {
	timer := NewTimer()
	timer.Pause()
	assert.Equal(t, StateIdle, timer.State())
	assert.Equal(t, 25*time.Minute, timer.Remaining())
}

func TestTimer_SetMode(t *testing.T) {
	timer := NewTimer()

	require.NoError(t, timer.SetMode(ModeShortBreak))
	assert.Equal(t, ModeShortBreak, timer.Mode())
	assert.Equal(t, 5*time.Minute, timer.Remaining())

	require.NoError(t, timer.SetMode(ModeLongBreak))
	assert.Equal(t, 15*time.Minute, timer.Remaining())

	require.Error(t, timer.SetMode(Mode("nap")))
}

func TestTimer_SetMode_RejectedWhileRunning(t *testing.T) {
	timer := NewTimer(
		WithDurations(Durations{Work: time.Hour, ShortBreak: time.Minute, LongBreak: time.Minute}),
		WithTickInterval(fastTick),
	)
	timer.Start()
	defer timer.Pause()

	require.Error(t, timer.SetMode(ModeShortBreak))
	assert.Equal(t, ModeWork, timer.Mode())
}

func TestTimer_ResumeAfterPause(t *testing.T) {
	var mu sync.Mutex
	var completions int

	timer := NewTimer(
		WithDurations(Durations{Work: 10 * time.Second, ShortBreak: time.Minute, LongBreak: time.Minute}),
		WithTickInterval(fastTick),
		OnComplete(func(Mode) {
			mu.Lock()
			completions++
			mu.Unlock()
		}),
	)

	timer.Start()
	time.Sleep(6 * time.Millisecond)
	timer.Pause()
	require.Equal(t, StatePaused, timer.State())

	timer.Start()
	timer.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, completions)
	assert.Equal(t, StateIdle, timer.State())
}
