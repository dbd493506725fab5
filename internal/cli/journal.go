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

// JournalSaveCommand — create a new entry or update one by id.
type JournalSaveCommand struct {
	ID      int64  `long:"id" description:"Entry id to update; omit for a new entry"`
	Content string `long:"content" description:"Inline entry content"`
	File    string `long:"file" description:"Read entry content from file"`
	Mood    string `long:"mood" description:"Mood label (optional)"`

	globals *GlobalFlags
}

// JournalDeleteCommand — remove an entry by id.
type JournalDeleteCommand struct {
	ID int64 `long:"id" description:"Entry id (required)"`

	globals *GlobalFlags
}

// JournalListCommand — list entries, newest first.
type JournalListCommand struct {
	Full bool `long:"full" description:"Print full entry content"`

	globals *GlobalFlags
}

func loadJournal(ctx context.Context, store storage.Store) (*study.Journal, error) {
	j := study.NewJournal(store)
	if err := j.Load(ctx); err != nil {
		return nil, err
	}
	return j, nil
}

func (c *JournalSaveCommand) Execute(args []string) error {
	store, db, _, err := openFromGlobals(c.globals)
	if err != nil {
		return err
	}
	defer db.Close()
	defer store.Close()
	return c.executeWithStore(store, time.Now())
}

func (c *JournalSaveCommand) executeWithStore(store storage.Store, now time.Time) error {
	ctx := context.Background()
	j, err := loadJournal(ctx, store)
	if err != nil {
		return err
	}
	content, err := readTextInput(c.Content, c.File)
	if err != nil {
		return err
	}
	entry, err := j.Save(ctx, c.ID, content, c.Mood, now)
	if err != nil {
		return err
	}
	if c.globals != nil && c.globals.JSON {
		return json.NewEncoder(os.Stdout).Encode(entry)
	}
	if c.ID == 0 {
		fmt.Printf("Saved entry %d\n", entry.ID)
	} else {
		fmt.Printf("Updated entry %d\n", entry.ID)
	}
	return nil
}

func (c *JournalDeleteCommand) Execute(args []string) error {
	store, db, _, err := openFromGlobals(c.globals)
	if err != nil {
		return err
	}
	defer db.Close()
	defer store.Close()
	return c.executeWithStore(store)
}

func (c *JournalDeleteCommand) executeWithStore(store storage.Store) error {
	ctx := context.Background()
	j, err := loadJournal(ctx, store)
	if err != nil {
		return err
	}
	if err := j.Delete(ctx, c.ID); err != nil {
		return err
	}
	if c.globals != nil && c.globals.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]any{"deleted": c.ID})
	}
	fmt.Printf("Deleted entry %d\n", c.ID)
	return nil
}

func (c *JournalListCommand) Execute(args []string) error {
	store, db, _, err := openFromGlobals(c.globals)
	if err != nil {
		return err
	}
	defer db.Close()
	defer store.Close()
	return c.executeWithStore(store)
}

func (c *JournalListCommand) executeWithStore(store storage.Store) error {
	ctx := context.Background()
	j, err := loadJournal(ctx, store)
	if err != nil {
		return err
	}
	entries := j.Entries()
	if c.globals != nil && c.globals.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}
	if len(entries) == 0 {
		fmt.Println("No journal entries yet.")
		return nil
	}
	for _, e := range entries {
		mood := e.Mood
		if mood == "" {
			mood = "-"
		}
		fmt.Printf("%d  %s  mood: %s\n", e.ID, e.Date, mood)
		if c.Full {
			fmt.Println(e.Content)
			fmt.Println()
		}
	}
	return nil
}
