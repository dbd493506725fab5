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

// TasksAddCommand — append a task to the checklist.
type TasksAddCommand struct {
	Text string `long:"text" description:"Task text (required)"`

	globals *GlobalFlags
}

// TasksToggleCommand — flip a task between done and not done.
type TasksToggleCommand struct {
	ID int64 `long:"id" description:"Task id (required)"`

	globals *GlobalFlags
}

// TasksDeleteCommand — remove a task.
type TasksDeleteCommand struct {
	ID int64 `long:"id" description:"Task id (required)"`

	globals *GlobalFlags
}

// TasksClearCommand — remove every completed task.
type TasksClearCommand struct {
	globals *GlobalFlags
}

// TasksListCommand — list tasks with an optional state filter.
type TasksListCommand struct {
	Filter string `long:"filter" description:"Filter: all | active | completed" default:"all"`

	globals *GlobalFlags
}

func loadChecklist(ctx context.Context, store storage.Store) (*study.Checklist, error) {
	c := study.NewChecklist(store)
	if err := c.Load(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *TasksAddCommand) Execute(args []string) error {
	store, db, _, err := openFromGlobals(c.globals)
	if err != nil {
		return err
	}
	defer db.Close()
	defer store.Close()
	return c.executeWithStore(store, time.Now())
}

func (c *TasksAddCommand) executeWithStore(store storage.Store, now time.Time) error {
	ctx := context.Background()
	list, err := loadChecklist(ctx, store)
	if err != nil {
		return err
	}
	task, err := list.Add(ctx, c.Text, now)
	if err != nil {
		return err
	}
	if c.globals != nil && c.globals.JSON {
		return json.NewEncoder(os.Stdout).Encode(task)
	}
	fmt.Printf("Added task %d: %s\n", task.ID, task.Text)
	return nil
}

func (c *TasksToggleCommand) Execute(args []string) error {
	store, db, _, err := openFromGlobals(c.globals)
	if err != nil {
		return err
	}
	defer db.Close()
	defer store.Close()
	return c.executeWithStore(store)
}

func (c *TasksToggleCommand) executeWithStore(store storage.Store) error {
	ctx := context.Background()
	list, err := loadChecklist(ctx, store)
	if err != nil {
		return err
	}
	if err := list.Toggle(ctx, c.ID); err != nil {
		return err
	}
	if c.globals != nil && c.globals.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]any{"toggled": c.ID})
	}
	fmt.Printf("Toggled task %d\n", c.ID)
	return nil
}

func (c *TasksDeleteCommand) Execute(args []string) error {
	store, db, _, err := openFromGlobals(c.globals)
	if err != nil {
		return err
	}
	defer db.Close()
	defer store.Close()
	return c.executeWithStore(store)
}

func (c *TasksDeleteCommand) executeWithStore(store storage.Store) error {
	ctx := context.Background()
	list, err := loadChecklist(ctx, store)
	if err != nil {
		return err
	}
	if err := list.Delete(ctx, c.ID); err != nil {
		return err
	}
	if c.globals != nil && c.globals.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]any{"deleted": c.ID})
	}
	fmt.Printf("Deleted task %d\n", c.ID)
	return nil
}

func (c *TasksClearCommand) Execute(args []string) error {
	store, db, _, err := openFromGlobals(c.globals)
	if err != nil {
		return err
	}
	defer db.Close()
	defer store.Close()
	return c.executeWithStore(store)
}

func (c *TasksClearCommand) executeWithStore(store storage.Store) error {
	ctx := context.Background()
	list, err := loadChecklist(ctx, store)
	if err != nil {
		return err
	}
	before := len(list.Tasks(study.TaskFilterAll))
	if err := list.ClearCompleted(ctx); err != nil {
		return err
	}
	cleared := before - len(list.Tasks(study.TaskFilterAll))
	if c.globals != nil && c.globals.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]any{"cleared": cleared})
	}
	fmt.Printf("Cleared %d completed tasks\n", cleared)
	return nil
}

func (c *TasksListCommand) Execute(args []string) error {
	store, db, _, err := openFromGlobals(c.globals)
	if err != nil {
		return err
	}
	defer db.Close()
	defer store.Close()
	return c.executeWithStore(store)
}

func (c *TasksListCommand) executeWithStore(store storage.Store) error {
	ctx := context.Background()
	list, err := loadChecklist(ctx, store)
	if err != nil {
		return err
	}

	var filter study.TaskFilter
	switch c.Filter {
	case "all":
		filter = study.TaskFilterAll
	case "active":
		filter = study.TaskFilterActive
	case "completed":
		filter = study.TaskFilterCompleted
	default:
		return fmt.Errorf("unknown filter %q (use all, active, or completed)", c.Filter)
	}

	tasks := list.Tasks(filter)
	if c.globals != nil && c.globals.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(tasks)
	}
	if len(tasks) == 0 {
		fmt.Println("No tasks.")
		return nil
	}
	for _, task := range tasks {
		mark := " "
		if task.Completed {
			mark = "x"
		}
		fmt.Printf("[%s] %d  %s\n", mark, task.ID, task.Text)
	}
	fmt.Printf("\n%d remaining\n", list.Remaining())
	return nil
}
