package study

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/runnerr0/studystream/internal/collection"
	"github.com/runnerr0/studystream/internal/storage"
)

// Task is one checklist item.
type Task struct {
	ID        int64  `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
	Date      string `json:"date"` // RFC3339 creation time
}

// TaskFilter selects which tasks a listing shows.
type TaskFilter string

const (
	TaskFilterAll       TaskFilter = "all"
	TaskFilterActive    TaskFilter = "active"
	TaskFilterCompleted TaskFilter = "completed"
)

// Checklist owns the task collection.
type Checklist struct {
	tasks *collection.Collection[[]Task]
}

func NewChecklist(store storage.Store) *Checklist {
	return &Checklist{tasks: collection.New[[]Task](store, KeyChecklist)}
}

func (c *Checklist) Load(ctx context.Context) error {
	return c.tasks.Load(ctx)
}

// Add appends a new task in creation order.
func (c *Checklist) Add(ctx context.Context, text string, now time.Time) (Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Task{}, fmt.Errorf("task text is required")
	}
	task := Task{
		ID:   NewID(now),
		Text: text,
		Date: now.Format(time.RFC3339),
	}
	err := c.tasks.Mutate(ctx, func(tasks *[]Task) error {
		*tasks = append(*tasks, task)
		return nil
	})
	return task, err
}

// Toggle flips the completed flag of the task with the given id.
func (c *Checklist) Toggle(ctx context.Context, id int64) error {
	return c.tasks.Mutate(ctx, func(tasks *[]Task) error {
		for i := range *tasks {
			if (*tasks)[i].ID == id {
				(*tasks)[i].Completed = !(*tasks)[i].Completed
				return nil
			}
		}
		return fmt.Errorf("task %d not found", id)
	})
}

// Delete removes the task with the given id.
func (c *Checklist) Delete(ctx context.Context, id int64) error {
	return c.tasks.Mutate(ctx, func(tasks *[]Task) error {
		for i := range *tasks {
			if (*tasks)[i].ID == id {
				*tasks = append((*tasks)[:i], (*tasks)[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("task %d not found", id)
	})
}

// ClearCompleted drops every completed task.
func (c *Checklist) ClearCompleted(ctx context.Context) error {
	return c.tasks.Mutate(ctx, func(tasks *[]Task) error {
		kept := (*tasks)[:0]
		for _, t := range *tasks {
			if !t.Completed {
				kept = append(kept, t)
			}
		}
		*tasks = kept
		return nil
	})
}

// Tasks returns tasks matching filter, in insertion order.
func (c *Checklist) Tasks(filter TaskFilter) []Task {
	all := c.tasks.View()
	if filter == TaskFilterAll || filter == "" {
		return all
	}
	out := []Task{}
	for _, t := range all {
		if (filter == TaskFilterActive && !t.Completed) ||
			(filter == TaskFilterCompleted && t.Completed) {
			out = append(out, t)
		}
	}
	return out
}

// Remaining counts incomplete tasks.
func (c *Checklist) Remaining() int {
	n := 0
	for _, t := range c.tasks.View() {
		if !t.Completed {
			n++
		}
	}
	return n
}

// CompletedOn is the dashboard's read accessor: completed tasks whose
// creation date falls on the given day.
func (c *Checklist) CompletedOn(day string) int {
	n := 0
	for _, t := range c.tasks.View() {
		if !t.Completed {
			continue
		}
		created, err := time.Parse(time.RFC3339, t.Date)
		if err != nil {
			continue
		}
		if DayKey(created) == day {
			n++
		}
	}
	return n
}

// Focus returns at most limit incomplete tasks, preserving insertion
// order, for the dashboard's "today's focus" list.
func (c *Checklist) Focus(limit int) []Task {
	out := []Task{}
	for _, t := range c.tasks.View() {
		if t.Completed {
			continue
		}
		out = append(out, t)
		if len(out) == limit {
			break
		}
	}
	return out
}
