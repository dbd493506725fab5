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

// WritingSaveCommand — save a new document or replace one at an index.
type WritingSaveCommand struct {
	Index   int    `long:"index" description:"Document index to replace; omit for a new document" default:"-1"`
	Title   string `long:"title" description:"Document title"`
	Content string `long:"content" description:"Inline document content"`
	File    string `long:"file" description:"Read document content from file"`

	globals *GlobalFlags
}

// WritingShowCommand — print a document with its word stats, or export
// its content to a text file.
type WritingShowCommand struct {
	Index  int    `long:"index" description:"Document index (0 = newest)"`
	Output string `long:"output" description:"Write the document content to a file instead of stdout"`

	globals *GlobalFlags
}

// WritingDeleteCommand — delete the document at an index.
type WritingDeleteCommand struct {
	Index int `long:"index" description:"Document index (0 = newest)"`

	globals *GlobalFlags
}

// WritingListCommand — list documents, newest first.
type WritingListCommand struct {
	globals *GlobalFlags
}

func loadWriting(ctx context.Context, store storage.Store) (*study.Writing, error) {
	w := study.NewWriting(store)
	if err := w.Load(ctx); err != nil {
		return nil, err
	}
	return w, nil
}

func (c *WritingSaveCommand) Execute(args []string) error {
	store, db, _, err := openFromGlobals(c.globals)
	if err != nil {
		return err
	}
	defer db.Close()
	defer store.Close()
	return c.executeWithStore(store, time.Now())
}

func (c *WritingSaveCommand) executeWithStore(store storage.Store, now time.Time) error {
	ctx := context.Background()
	w, err := loadWriting(ctx, store)
	if err != nil {
		return err
	}
	content, err := readTextInput(c.Content, c.File)
	if err != nil {
		return err
	}
	if err := w.Save(ctx, c.Index, c.Title, content, now); err != nil {
		return err
	}
	stats := study.Stats(content)
	if c.globals != nil && c.globals.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]any{
			"words": stats.Words, "chars": stats.Chars, "reading_minutes": stats.ReadingMinutes,
		})
	}
	fmt.Printf("Saved (%d words, %d chars, ~%d min read)\n", stats.Words, stats.Chars, stats.ReadingMinutes)
	return nil
}

func (c *WritingShowCommand) Execute(args []string) error {
	store, db, _, err := openFromGlobals(c.globals)
	if err != nil {
		return err
	}
	defer db.Close()
	defer store.Close()
	return c.executeWithStore(store)
}

func (c *WritingShowCommand) executeWithStore(store storage.Store) error {
	ctx := context.Background()
	w, err := loadWriting(ctx, store)
	if err != nil {
		return err
	}
	doc, err := w.Document(c.Index)
	if err != nil {
		return err
	}
	stats := study.Stats(doc.Content)
	if c.Output != "" {
		if err := os.WriteFile(c.Output, []byte(doc.Content), 0644); err != nil {
			return fmt.Errorf("write %s: %w", c.Output, err)
		}
		if c.globals != nil && c.globals.JSON {
			return json.NewEncoder(os.Stdout).Encode(map[string]any{"exported": c.Output, "words": stats.Words})
		}
		fmt.Printf("Exported %q to %s (%d words)\n", doc.Title, c.Output, stats.Words)
		return nil
	}
	if c.globals != nil && c.globals.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"document": doc,
			"stats":    map[string]int{"words": stats.Words, "chars": stats.Chars, "reading_minutes": stats.ReadingMinutes},
		})
	}
	fmt.Printf("%s (%s)\n", doc.Title, doc.Date)
	fmt.Printf("%d words, %d chars, ~%d min read\n\n", stats.Words, stats.Chars, stats.ReadingMinutes)
	fmt.Println(doc.Content)
	return nil
}

func (c *WritingDeleteCommand) Execute(args []string) error {
	store, db, _, err := openFromGlobals(c.globals)
	if err != nil {
		return err
	}
	defer db.Close()
	defer store.Close()
	return c.executeWithStore(store)
}

func (c *WritingDeleteCommand) executeWithStore(store storage.Store) error {
	ctx := context.Background()
	w, err := loadWriting(ctx, store)
	if err != nil {
		return err
	}
	if err := w.Delete(ctx, c.Index); err != nil {
		return err
	}
	if c.globals != nil && c.globals.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]any{"deleted": c.Index})
	}
	fmt.Printf("Deleted document %d\n", c.Index)
	return nil
}

func (c *WritingListCommand) Execute(args []string) error {
	store, db, _, err := openFromGlobals(c.globals)
	if err != nil {
		return err
	}
	defer db.Close()
	defer store.Close()
	return c.executeWithStore(store)
}

func (c *WritingListCommand) executeWithStore(store storage.Store) error {
	ctx := context.Background()
	w, err := loadWriting(ctx, store)
	if err != nil {
		return err
	}
	docs := w.Documents()
	if c.globals != nil && c.globals.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(docs)
	}
	if len(docs) == 0 {
		fmt.Println("No documents yet.")
		return nil
	}
	for i, doc := range docs {
		stats := study.Stats(doc.Content)
		fmt.Printf("[%d] %s (%d words, %s)\n", i, doc.Title, stats.Words, doc.Date)
	}
	return nil
}
