package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/runnerr0/studystream/internal/config"
	"github.com/runnerr0/studystream/internal/pomodoro"
	"github.com/runnerr0/studystream/internal/storage"
	"github.com/runnerr0/studystream/internal/study"
)

// PomodoroCommand — run one countdown session in the foreground. A
// completed work session increments today's counter; breaks never do.
type PomodoroCommand struct {
	Mode    string `long:"mode" description:"Session mode: work | short | long" default:"work"`
	Minutes int    `long:"minutes" description:"Override session length in minutes"`
	Count   bool   `long:"count" description:"Skip the countdown and log one completed pomodoro directly"`

	globals *GlobalFlags
}

// Execute implements the go-flags Commander interface for PomodoroCommand.
func (c *PomodoroCommand) Execute(args []string) error {
	store, db, cfg, err := openFromGlobals(c.globals)
	if err != nil {
		return err
	}
	defer db.Close()
	defer store.Close()

	return c.executeWithStore(store, cfg, time.Second, time.Now)
}

// executeWithStore runs the session against a provided store. The tick
// interval and clock are injectable for testing.
func (c *PomodoroCommand) executeWithStore(store storage.Store, cfg *config.Config, tick time.Duration, now func() time.Time) error {
	ctx := context.Background()
	counters := study.NewPomodoro(store)
	if err := counters.Load(ctx); err != nil {
		return err
	}

	if c.Count {
		if c.Mode != string(pomodoro.ModeWork) {
			return fmt.Errorf("--count only applies to work sessions")
		}
		return c.finishWork(ctx, counters, now())
	}

	durations := pomodoro.Durations{
		Work:       time.Duration(cfg.Pomodoro.WorkMinutes) * time.Minute,
		ShortBreak: time.Duration(cfg.Pomodoro.ShortBreakMinutes) * time.Minute,
		LongBreak:  time.Duration(cfg.Pomodoro.LongBreakMinutes) * time.Minute,
	}
	if c.Minutes > 0 {
		custom := time.Duration(c.Minutes) * time.Minute
		durations = pomodoro.Durations{Work: custom, ShortBreak: custom, LongBreak: custom}
	}

	log := newLogger(c.globals, cfg)
	var completeErr error
	timer := pomodoro.NewTimer(
		pomodoro.WithDurations(durations),
		pomodoro.WithTickInterval(tick),
		pomodoro.WithLogger(log),
		pomodoro.OnTick(func(remaining time.Duration) {
			log.Debug().Str("remaining", formatClock(remaining)).Msg("tick")
		}),
		pomodoro.OnComplete(func(mode pomodoro.Mode) {
			if mode == pomodoro.ModeWork {
				completeErr = c.finishWork(ctx, counters, now())
			}
		}),
	)
	if err := timer.SetMode(pomodoro.Mode(c.Mode)); err != nil {
		return err
	}

	if !(c.globals != nil && c.globals.JSON) {
		fmt.Printf("%s session: %s\n", c.Mode, formatClock(timer.Remaining()))
	}
	timer.Start()
	timer.Wait()

	if completeErr != nil {
		return completeErr
	}
	if pomodoro.Mode(c.Mode) != pomodoro.ModeWork {
		if !(c.globals != nil && c.globals.JSON) {
			fmt.Println("Break over. Back to it.")
		} else {
			json.NewEncoder(os.Stdout).Encode(map[string]any{"mode": c.Mode, "completed": true})
		}
	}
	return nil
}

// finishWork records a completed work session and suggests a break.
func (c *PomodoroCommand) finishWork(ctx context.Context, counters *study.Pomodoro, now time.Time) error {
	day := study.DayKey(now)
	total, err := counters.Increment(ctx, day)
	if err != nil {
		return err
	}

	// Every fourth pomodoro earns the long break.
	suggestion := "short"
	if total%4 == 0 {
		suggestion = "long"
	}

	if c.globals != nil && c.globals.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]any{
			"date":            day,
			"pomodoros_today": total,
			"streak_days":     counters.Streak(now),
			"suggested_break": suggestion,
		})
	}
	fmt.Printf("Work session complete. %d today, streak %d days.\n", total, counters.Streak(now))
	fmt.Printf("Take a %s break: studystream pomodoro --mode %s\n", suggestion, suggestion)
	return nil
}
