package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/runnerr0/studystream/internal/storage"
	"github.com/runnerr0/studystream/internal/study"
)

// HabitsAddCommand — create a habit to track.
type HabitsAddCommand struct {
	Name      string `long:"name" description:"Habit name (required)"`
	Frequency string `long:"frequency" description:"Cadence label" default:"daily"`

	globals *GlobalFlags
}

// HabitsDeleteCommand — remove a habit and its history.
type HabitsDeleteCommand struct {
	ID int64 `long:"id" description:"Habit id (required)"`

	globals *GlobalFlags
}

// HabitsToggleCommand — mark or unmark a habit done for a day.
type HabitsToggleCommand struct {
	ID   int64  `long:"id" description:"Habit id (required)"`
	Date string `long:"date" description:"Day (YYYY-MM-DD), defaults to today"`

	globals *GlobalFlags
}

// HabitsListCommand — list habits with completion counts.
type HabitsListCommand struct {
	globals *GlobalFlags
}

func loadHabits(ctx context.Context, store storage.Store) (*study.Habits, error) {
	h := study.NewHabits(store)
	if err := h.Load(ctx); err != nil {
		return nil, err
	}
	return h, nil
}

func (c *HabitsAddCommand) Execute(args []string) error {
	store, db, _, err := openFromGlobals(c.globals)
	if err != nil {
		return err
	}
	defer db.Close()
	defer store.Close()
	return c.executeWithStore(store, time.Now())
}

func (c *HabitsAddCommand) executeWithStore(store storage.Store, now time.Time) error {
	ctx := context.Background()
	h, err := loadHabits(ctx, store)
	if err != nil {
		return err
	}
	habit, err := h.Add(ctx, c.Name, c.Frequency, now)
	if err != nil {
		return err
	}
	if c.globals != nil && c.globals.JSON {
		return json.NewEncoder(os.Stdout).Encode(habit)
	}
	fmt.Printf("Added habit %d: %s (%s)\n", habit.ID, habit.Name, habit.Frequency)
	return nil
}

func (c *HabitsDeleteCommand) Execute(args []string) error {
	store, db, _, err := openFromGlobals(c.globals)
	if err != nil {
		return err
	}
	defer db.Close()
	defer store.Close()
	return c.executeWithStore(store)
}

func (c *HabitsDeleteCommand) executeWithStore(store storage.Store) error {
	ctx := context.Background()
	h, err := loadHabits(ctx, store)
	if err != nil {
		return err
	}
	if err := h.Delete(ctx, c.ID); err != nil {
		return err
	}
	if c.globals != nil && c.globals.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]any{"deleted": c.ID})
	}
	fmt.Printf("Deleted habit %d\n", c.ID)
	return nil
}

func (c *HabitsToggleCommand) Execute(args []string) error {
	store, db, _, err := openFromGlobals(c.globals)
	if err != nil {
		return err
	}
	defer db.Close()
	defer store.Close()
	return c.executeWithStore(store, time.Now())
}

func (c *HabitsToggleCommand) executeWithStore(store storage.Store, now time.Time) error {
	ctx := context.Background()
	h, err := loadHabits(ctx, store)
	if err != nil {
		return err
	}
	day := c.Date
	if day == "" {
		day = study.DayKey(now)
	} else if _, err := time.Parse("2006-01-02", day); err != nil {
		return fmt.Errorf("invalid date %q (use YYYY-MM-DD)", day)
	}
	if err := h.ToggleCompletion(ctx, c.ID, day); err != nil {
		return err
	}
	done := h.CompletedOn(c.ID, day)
	if c.globals != nil && c.globals.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]any{"habit": c.ID, "date": day, "completed": done})
	}
	if done {
		fmt.Printf("Habit %d marked done for %s\n", c.ID, day)
	} else {
		fmt.Printf("Habit %d unmarked for %s\n", c.ID, day)
	}
	return nil
}

func (c *HabitsListCommand) Execute(args []string) error {
	store, db, _, err := openFromGlobals(c.globals)
	if err != nil {
		return err
	}
	defer db.Close()
	defer store.Close()
	return c.executeWithStore(store)
}

func (c *HabitsListCommand) executeWithStore(store storage.Store) error {
	ctx := context.Background()
	h, err := loadHabits(ctx, store)
	if err != nil {
		return err
	}
	habits := h.Habits()
	if c.globals != nil && c.globals.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(habits)
	}
	if len(habits) == 0 {
		fmt.Println("No habits yet.")
		return nil
	}
	for _, habit := range habits {
		fmt.Printf("%d  %s (%s): %d completions\n", habit.ID, habit.Name, habit.Frequency, len(habit.Completions))
	}
	return nil
}
