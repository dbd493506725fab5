// Package pomodoro implements the countdown timer state machine. The
// timer is purely in-memory; only completed work sessions touch the
// store, and that write belongs to the caller's completion callback.
package pomodoro

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// State is the timer lifecycle state.
type State string

const (
	StateIdle    State = "idle"
	StateRunning State = "running"
	StatePaused  State = "paused"
)

// Mode selects the session length.
type Mode string

const (
	ModeWork       Mode = "work"
	ModeShortBreak Mode = "short"
	ModeLongBreak  Mode = "long"
)

// Durations holds the per-mode session lengths.
type Durations struct {
	Work       time.Duration
	ShortBreak time.Duration
	LongBreak  time.Duration
}

// DefaultDurations matches the classic 25/5/15 split.
var DefaultDurations = Durations{
	Work:       25 * time.Minute,
	ShortBreak: 5 * time.Minute,
	LongBreak:  15 * time.Minute,
}

// For returns the length for mode.
func (d Durations) For(mode Mode) (time.Duration, error) {
	switch mode {
	case ModeWork:
		return d.Work, nil
	case ModeShortBreak:
		return d.ShortBreak, nil
	case ModeLongBreak:
		return d.LongBreak, nil
	}
	return 0, fmt.Errorf("unknown mode %q (use work, short, or long)", mode)
}

// Timer counts a session down on a repeating tick. All methods are safe
// for concurrent use; callbacks run on the ticker goroutine without the
// timer lock held.
type Timer struct {
	mu        sync.Mutex
	state     State
	mode      Mode
	total     time.Duration
	remaining time.Duration
	stop      chan struct{}
	done      chan struct{}

	interval   time.Duration
	durations  Durations
	log        zerolog.Logger
	onTick     func(remaining time.Duration)
	onComplete func(mode Mode)
}

// Option configures a Timer.
type Option func(*Timer)

// WithDurations overrides the per-mode session lengths.
func WithDurations(d Durations) Option {
	return func(t *Timer) { t.durations = d }
}

// WithTickInterval overrides how long one countdown second takes on
// the wall clock. Production uses the default 1 s; tests shrink it.
func WithTickInterval(d time.Duration) Option {
	return func(t *Timer) { t.interval = d }
}

// WithLogger attaches a logger for lifecycle events.
func WithLogger(log zerolog.Logger) Option {
	return func(t *Timer) { t.log = log }
}

// OnTick registers a callback invoked after every tick with the time
// remaining.
func OnTick(fn func(remaining time.Duration)) Option {
	return func(t *Timer) { t.onTick = fn }
}

// OnComplete registers a callback invoked when a session runs to zero.
func OnComplete(fn func(mode Mode)) Option {
	return func(t *Timer) { t.onComplete = fn }
}

// NewTimer creates an idle work-mode timer at full duration.
func NewTimer(opts ...Option) *Timer {
	t := &Timer{
		state:     StateIdle,
		mode:      ModeWork,
		interval:  time.Second,
		durations: DefaultDurations,
		log:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.total = t.durations.Work
	t.remaining = t.total
	return t
}

// SetMode switches the session mode. Only allowed while not Running;
// the remaining time resets to the new mode's full duration.
func (t *Timer) SetMode(mode Mode) error {
	d, err := t.durations.For(mode)
	if err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state == StateRunning {
		return fmt.Errorf("cannot change mode while running")
	}
	t.mode = mode
	t.total = d
	t.remaining = d
	t.state = StateIdle
	return nil
}

// Start begins or resumes the countdown. Calling Start while already
// Running is a no-op; the session is never double-scheduled.
func (t *Timer) Start() {
	t.mu.Lock()
	if t.state == StateRunning {
		t.mu.Unlock()
		return
	}
	t.state = StateRunning
	t.stop = make(chan struct{})
	t.done = make(chan struct{})
	stop, done := t.stop, t.done
	t.log.Debug().Str("mode", string(t.mode)).Dur("remaining", t.remaining).Msg("timer started")
	t.mu.Unlock()

	go t.run(stop, done)
}

func (t *Timer) run(stop, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			remaining, completed := t.tick()
			if t.onTick != nil {
				t.onTick(remaining)
			}
			if completed {
				if t.onComplete != nil {
					t.onComplete(t.Mode())
				}
				return
			}
		}
	}
}

// tick advances the countdown by one second and reports whether the
// session just completed.
func (t *Timer) tick() (time.Duration, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != StateRunning {
		return t.remaining, false
	}
	t.remaining -= time.Second
	if t.remaining > 0 {
		return t.remaining, false
	}
	t.remaining = 0
	t.state = StateIdle
	t.log.Info().Str("mode", string(t.mode)).Msg("session complete")
	return 0, true
}

// Pause halts the countdown, keeping the remaining time.
func (t *Timer) Pause() {
	t.mu.Lock()
	if t.state != StateRunning {
		t.mu.Unlock()
		return
	}
	t.state = StatePaused
	close(t.stop)
	done := t.done
	t.log.Debug().Dur("remaining", t.remaining).Msg("timer paused")
	t.mu.Unlock()

	<-done
}

// Reset pauses the timer and restores the full session duration.
func (t *Timer) Reset() {
	t.Pause()
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state = StateIdle
	t.remaining = t.total
}

// State returns the current lifecycle state.
func (t *Timer) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Mode returns the current session mode.
func (t *Timer) Mode() Mode {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.mode
}

// Remaining returns the time left in the current session.
func (t *Timer) Remaining() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.remaining
}

// Wait blocks until the running session completes or is paused. It
// returns immediately when no session was started.
func (t *Timer) Wait() {
	t.mu.Lock()
	done := t.done
	t.mu.Unlock()
	if done != nil {
		<-done
	}
}
