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

// NotesAddCommand — add a new note.
type NotesAddCommand struct {
	Title   string `long:"title" description:"Note title"`
	Content string `long:"content" description:"Inline note content"`
	File    string `long:"file" description:"Read note content from file"`

	globals *GlobalFlags
}

// NotesUpdateCommand — replace the note at an index.
type NotesUpdateCommand struct {
	Index   int    `long:"index" description:"Note index (0 = newest)"`
	Title   string `long:"title" description:"Note title"`
	Content string `long:"content" description:"Inline note content"`
	File    string `long:"file" description:"Read note content from file"`

	globals *GlobalFlags
}

// NotesDeleteCommand — delete the note at an index.
type NotesDeleteCommand struct {
	Index int `long:"index" description:"Note index (0 = newest)"`

	globals *GlobalFlags
}

// NotesSearchCommand — search notes by title or content.
type NotesSearchCommand struct {
	Query string `long:"query" description:"Search text (required)"`

	globals *GlobalFlags
}

// NotesListCommand — list all notes.
type NotesListCommand struct {
	Full bool `long:"full" description:"Print full note content"`

	globals *GlobalFlags
}

func loadNotes(ctx context.Context, store storage.Store) (*study.Notes, error) {
	n := study.NewNotes(store)
	if err := n.Load(ctx); err != nil {
		return nil, err
	}
	return n, nil
}

func (c *NotesAddCommand) Execute(args []string) error {
	store, db, _, err := openFromGlobals(c.globals)
	if err != nil {
		return err
	}
	defer db.Close()
	defer store.Close()
	return c.executeWithStore(store, time.Now())
}

func (c *NotesAddCommand) executeWithStore(store storage.Store, now time.Time) error {
	ctx := context.Background()
	n, err := loadNotes(ctx, store)
	if err != nil {
		return err
	}
	content, err := readTextInput(c.Content, c.File)
	if err != nil {
		return err
	}
	if c.Title == "" && content == "" {
		return fmt.Errorf("a note needs --title or content")
	}
	if err := n.Add(ctx, c.Title, content, now); err != nil {
		return err
	}
	if c.globals != nil && c.globals.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]any{"added": c.Title, "index": 0})
	}
	fmt.Printf("Added note %q\n", c.Title)
	return nil
}

func (c *NotesUpdateCommand) Execute(args []string) error {
	store, db, _, err := openFromGlobals(c.globals)
	if err != nil {
		return err
	}
	defer db.Close()
	defer store.Close()
	return c.executeWithStore(store, time.Now())
}

func (c *NotesUpdateCommand) executeWithStore(store storage.Store, now time.Time) error {
	ctx := context.Background()
	n, err := loadNotes(ctx, store)
	if err != nil {
		return err
	}
	content, err := readTextInput(c.Content, c.File)
	if err != nil {
		return err
	}
	if err := n.Update(ctx, c.Index, c.Title, content, now); err != nil {
		return err
	}
	if c.globals != nil && c.globals.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]any{"updated": c.Index})
	}
	fmt.Printf("Updated note %d\n", c.Index)
	return nil
}

func (c *NotesDeleteCommand) Execute(args []string) error {
	store, db, _, err := openFromGlobals(c.globals)
	if err != nil {
		return err
	}
	defer db.Close()
	defer store.Close()
	return c.executeWithStore(store)
}

func (c *NotesDeleteCommand) executeWithStore(store storage.Store) error {
	ctx := context.Background()
	n, err := loadNotes(ctx, store)
	if err != nil {
		return err
	}
	if err := n.Delete(ctx, c.Index); err != nil {
		return err
	}
	if c.globals != nil && c.globals.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]any{"deleted": c.Index})
	}
	fmt.Printf("Deleted note %d\n", c.Index)
	return nil
}

func (c *NotesSearchCommand) Execute(args []string) error {
	store, db, _, err := openFromGlobals(c.globals)
	if err != nil {
		return err
	}
	defer db.Close()
	defer store.Close()
	return c.executeWithStore(store)
}

func (c *NotesSearchCommand) executeWithStore(store storage.Store) error {
	ctx := context.Background()
	n, err := loadNotes(ctx, store)
	if err != nil {
		return err
	}
	if c.Query == "" {
		return fmt.Errorf("--query is required")
	}
	matches := n.Search(c.Query)
	if c.globals != nil && c.globals.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(matches)
	}
	if len(matches) == 0 {
		fmt.Printf("No notes match %q\n", c.Query)
		return nil
	}
	for _, m := range matches {
		fmt.Printf("[%d] %s (%s)\n", m.Index, m.Note.Title, m.Note.Date)
	}
	return nil
}

func (c *NotesListCommand) Execute(args []string) error {
	store, db, _, err := openFromGlobals(c.globals)
	if err != nil {
		return err
	}
	defer db.Close()
	defer store.Close()
	return c.executeWithStore(store)
}

func (c *NotesListCommand) executeWithStore(store storage.Store) error {
	ctx := context.Background()
	n, err := loadNotes(ctx, store)
	if err != nil {
		return err
	}
	notes := n.Notes()
	if c.globals != nil && c.globals.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(notes)
	}
	if len(notes) == 0 {
		fmt.Println("No notes yet.")
		return nil
	}
	for i, note := range notes {
		fmt.Printf("[%d] %s (%s)\n", i, note.Title, note.Date)
		if c.Full {
			fmt.Println(note.Content)
			fmt.Println()
		}
	}
	return nil
}
