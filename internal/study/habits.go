package study

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/runnerr0/studystream/internal/collection"
	"github.com/runnerr0/studystream/internal/storage"
)

// Habit tracks a recurring practice. Completions is a set of day
// strings; presence is the only state, there is no separate count.
type Habit struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Frequency   string   `json:"frequency"`
	Completions []string `json:"completions"`
}

// Habits owns the habit collection.
type Habits struct {
	habits *collection.Collection[[]Habit]
}

func NewHabits(store storage.Store) *Habits {
	return &Habits{habits: collection.New[[]Habit](store, KeyHabits)}
}

func (h *Habits) Load(ctx context.Context) error {
	return h.habits.Load(ctx)
}

// Add creates a new habit.
func (h *Habits) Add(ctx context.Context, name, frequency string, now time.Time) (Habit, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Habit{}, fmt.Errorf("habit name is required")
	}
	if frequency == "" {
		frequency = "daily"
	}
	habit := Habit{
		ID:          NewID(now),
		Name:        name,
		Frequency:   frequency,
		Completions: []string{},
	}
	err := h.habits.Mutate(ctx, func(habits *[]Habit) error {
		*habits = append(*habits, habit)
		return nil
	})
	return habit, err
}

// Delete removes the habit with the given id.
func (h *Habits) Delete(ctx context.Context, id int64) error {
	return h.habits.Mutate(ctx, func(habits *[]Habit) error {
		for i := range *habits {
			if (*habits)[i].ID == id {
				*habits = append((*habits)[:i], (*habits)[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("habit %d not found", id)
	})
}

// ToggleCompletion flips the (habit, day) completion: present is
// removed, absent is added. Toggling twice restores the original set.
func (h *Habits) ToggleCompletion(ctx context.Context, id int64, day string) error {
	return h.habits.Mutate(ctx, func(habits *[]Habit) error {
		for i := range *habits {
			if (*habits)[i].ID != id {
				continue
			}
			done := (*habits)[i].Completions
			for j, d := range done {
				if d == day {
					(*habits)[i].Completions = append(done[:j], done[j+1:]...)
					return nil
				}
			}
			(*habits)[i].Completions = append(done, day)
			return nil
		}
		return fmt.Errorf("habit %d not found", id)
	})
}

// Habits returns all habits in creation order.
func (h *Habits) Habits() []Habit {
	return h.habits.View()
}

// CompletedOn reports whether the habit was completed on day.
func (h *Habits) CompletedOn(id int64, day string) bool {
	for _, habit := range h.habits.View() {
		if habit.ID != id {
			continue
		}
		for _, d := range habit.Completions {
			if d == day {
				return true
			}
		}
	}
	return false
}
