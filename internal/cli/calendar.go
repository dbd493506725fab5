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

// CalendarAddCommand — add an event on a day.
type CalendarAddCommand struct {
	Title string `long:"title" description:"Event title (required)"`
	Time  string `long:"time" description:"Time of day (HH:MM), empty means all day"`
	Date  string `long:"date" description:"Day (YYYY-MM-DD), defaults to today"`

	globals *GlobalFlags
}

// CalendarDeleteCommand — remove an event.
type CalendarDeleteCommand struct {
	ID int64 `long:"id" description:"Event id (required)"`

	globals *GlobalFlags
}

// CalendarListCommand — list events for a day or all days.
type CalendarListCommand struct {
	Date string `long:"date" description:"Only this day (YYYY-MM-DD)"`

	globals *GlobalFlags
}

func loadCalendar(ctx context.Context, store storage.Store) (*study.Calendar, error) {
	cal := study.NewCalendar(store)
	if err := cal.Load(ctx); err != nil {
		return nil, err
	}
	return cal, nil
}

func (c *CalendarAddCommand) Execute(args []string) error {
	store, db, _, err := openFromGlobals(c.globals)
	if err != nil {
		return err
	}
	defer db.Close()
	defer store.Close()
	return c.executeWithStore(store, time.Now())
}

func (c *CalendarAddCommand) executeWithStore(store storage.Store, now time.Time) error {
	ctx := context.Background()
	cal, err := loadCalendar(ctx, store)
	if err != nil {
		return err
	}
	day := c.Date
	if day == "" {
		day = study.DayKey(now)
	}
	event, err := cal.Add(ctx, c.Title, c.Time, day, now)
	if err != nil {
		return err
	}
	if c.globals != nil && c.globals.JSON {
		return json.NewEncoder(os.Stdout).Encode(event)
	}
	fmt.Printf("Added event %d on %s: %s\n", event.ID, event.Date, event.Title)
	return nil
}

func (c *CalendarDeleteCommand) Execute(args []string) error {
	store, db, _, err := openFromGlobals(c.globals)
	if err != nil {
		return err
	}
	defer db.Close()
	defer store.Close()
	return c.executeWithStore(store)
}

func (c *CalendarDeleteCommand) executeWithStore(store storage.Store) error {
	ctx := context.Background()
	cal, err := loadCalendar(ctx, store)
	if err != nil {
		return err
	}
	if err := cal.Delete(ctx, c.ID); err != nil {
		return err
	}
	if c.globals != nil && c.globals.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]any{"deleted": c.ID})
	}
	fmt.Printf("Deleted event %d\n", c.ID)
	return nil
}

func (c *CalendarListCommand) Execute(args []string) error {
	store, db, _, err := openFromGlobals(c.globals)
	if err != nil {
		return err
	}
	defer db.Close()
	defer store.Close()
	return c.executeWithStore(store)
}

func (c *CalendarListCommand) executeWithStore(store storage.Store) error {
	ctx := context.Background()
	cal, err := loadCalendar(ctx, store)
	if err != nil {
		return err
	}

	var events []study.Event
	if c.Date != "" {
		events = cal.EventsOn(c.Date)
	} else {
		events = cal.Events()
	}

	if c.globals != nil && c.globals.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(events)
	}
	if len(events) == 0 {
		fmt.Println("No events.")
		return nil
	}
	for _, e := range events {
		when := e.Time
		if when == "" {
			when = "All day"
		}
		fmt.Printf("%d  %s  %-8s %s\n", e.ID, e.Date, when, e.Title)
	}
	return nil
}
