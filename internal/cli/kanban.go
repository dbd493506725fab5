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

// KanbanAddCommand — create a card in a lane.
type KanbanAddCommand struct {
	Title       string `long:"title" description:"Card title (required)"`
	Description string `long:"desc" description:"Card description"`
	Status      string `long:"status" description:"Lane: todo | progress | review | done" default:"todo"`

	globals *GlobalFlags
}

// KanbanMoveCommand — move a card to another lane.
type KanbanMoveCommand struct {
	ID     int64  `long:"id" description:"Card id (required)"`
	Status string `long:"status" description:"Target lane (required)"`

	globals *GlobalFlags
}

// KanbanDeleteCommand — remove a card from the board.
type KanbanDeleteCommand struct {
	ID int64 `long:"id" description:"Card id (required)"`

	globals *GlobalFlags
}

// KanbanListCommand — list cards, whole board or one lane.
type KanbanListCommand struct {
	Status string `long:"status" description:"Only this lane"`

	globals *GlobalFlags
}

func loadKanban(ctx context.Context, store storage.Store) (*study.Kanban, error) {
	k := study.NewKanban(store)
	if err := k.Load(ctx); err != nil {
		return nil, err
	}
	return k, nil
}

func (c *KanbanAddCommand) Execute(args []string) error {
	store, db, _, err := openFromGlobals(c.globals)
	if err != nil {
		return err
	}
	defer db.Close()
	defer store.Close()
	return c.executeWithStore(store, time.Now())
}

func (c *KanbanAddCommand) executeWithStore(store storage.Store, now time.Time) error {
	ctx := context.Background()
	k, err := loadKanban(ctx, store)
	if err != nil {
		return err
	}
	card, err := k.Add(ctx, c.Title, c.Description, study.Status(c.Status), now)
	if err != nil {
		return err
	}
	if c.globals != nil && c.globals.JSON {
		return json.NewEncoder(os.Stdout).Encode(card)
	}
	fmt.Printf("Added card %d to %s: %s\n", card.ID, card.Status, card.Title)
	return nil
}

func (c *KanbanMoveCommand) Execute(args []string) error {
	store, db, _, err := openFromGlobals(c.globals)
	if err != nil {
		return err
	}
	defer db.Close()
	defer store.Close()
	return c.executeWithStore(store)
}

func (c *KanbanMoveCommand) executeWithStore(store storage.Store) error {
	ctx := context.Background()
	k, err := loadKanban(ctx, store)
	if err != nil {
		return err
	}
	if err := k.Move(ctx, c.ID, study.Status(c.Status)); err != nil {
		return err
	}
	if c.globals != nil && c.globals.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]any{"moved": c.ID, "status": c.Status})
	}
	fmt.Printf("Moved card %d to %s\n", c.ID, c.Status)
	return nil
}

func (c *KanbanDeleteCommand) Execute(args []string) error {
	store, db, _, err := openFromGlobals(c.globals)
	if err != nil {
		return err
	}
	defer db.Close()
	defer store.Close()
	return c.executeWithStore(store)
}

func (c *KanbanDeleteCommand) executeWithStore(store storage.Store) error {
	ctx := context.Background()
	k, err := loadKanban(ctx, store)
	if err != nil {
		return err
	}
	if err := k.Delete(ctx, c.ID); err != nil {
		return err
	}
	if c.globals != nil && c.globals.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]any{"deleted": c.ID})
	}
	fmt.Printf("Deleted card %d\n", c.ID)
	return nil
}

func (c *KanbanListCommand) Execute(args []string) error {
	store, db, _, err := openFromGlobals(c.globals)
	if err != nil {
		return err
	}
	defer db.Close()
	defer store.Close()
	return c.executeWithStore(store)
}

func (c *KanbanListCommand) executeWithStore(store storage.Store) error {
	ctx := context.Background()
	k, err := loadKanban(ctx, store)
	if err != nil {
		return err
	}

	if c.Status != "" && !study.ValidStatus(study.Status(c.Status)) {
		return fmt.Errorf("unknown status %q (use todo, progress, review, or done)", c.Status)
	}

	if c.globals != nil && c.globals.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(k.Cards(study.Status(c.Status)))
	}

	lanes := study.Statuses
	if c.Status != "" {
		lanes = []study.Status{study.Status(c.Status)}
	}
	for _, lane := range lanes {
		cards := k.Cards(lane)
		fmt.Printf("%s (%d)\n", lane, len(cards))
		for _, card := range cards {
			fmt.Printf("  %d  %s\n", card.ID, card.Title)
			if card.Description != "" {
				fmt.Printf("      %s\n", card.Description)
			}
		}
	}
	return nil
}
