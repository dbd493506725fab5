package study

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/runnerr0/studystream/internal/collection"
	"github.com/runnerr0/studystream/internal/storage"
)

// Event is one calendar entry. Date is a day key; several events may
// share a day. An empty Time means all-day and sorts first.
type Event struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Time  string `json:"time"`
	Date  string `json:"date"`
}

// Calendar owns the event collection.
type Calendar struct {
	events *collection.Collection[[]Event]
}

func NewCalendar(store storage.Store) *Calendar {
	return &Calendar{events: collection.New[[]Event](store, KeyCalendar)}
}

func (c *Calendar) Load(ctx context.Context) error {
	return c.events.Load(ctx)
}

// Add creates an event on day.
func (c *Calendar) Add(ctx context.Context, title, eventTime, day string, now time.Time) (Event, error) {
	if strings.TrimSpace(title) == "" {
		return Event{}, fmt.Errorf("event title is required")
	}
	if _, err := time.Parse(dayLayout, day); err != nil {
		return Event{}, fmt.Errorf("invalid date %q (use YYYY-MM-DD)", day)
	}
	event := Event{
		ID:    NewID(now),
		Title: title,
		Time:  eventTime,
		Date:  day,
	}
	err := c.events.Mutate(ctx, func(events *[]Event) error {
		*events = append(*events, event)
		return nil
	})
	return event, err
}

// Delete removes the event with the given id.
func (c *Calendar) Delete(ctx context.Context, id int64) error {
	return c.events.Mutate(ctx, func(events *[]Event) error {
		for i := range *events {
			if (*events)[i].ID == id {
				*events = append((*events)[:i], (*events)[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("event %d not found", id)
	})
}

// EventsOn returns the day's events sorted by time of day.
func (c *Calendar) EventsOn(day string) []Event {
	out := []Event{}
	for _, e := range c.events.View() {
		if e.Date == day {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Time < out[j].Time
	})
	return out
}

// Events returns every event in creation order.
func (c *Calendar) Events() []Event {
	return c.events.View()
}
