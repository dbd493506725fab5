package study

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/runnerr0/studystream/internal/collection"
	"github.com/runnerr0/studystream/internal/storage"
)

// Document is one saved piece of writing, newest first.
type Document struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Date    string `json:"date"` // RFC3339 of last save
}

// TextStats summarizes a document for the editor footer.
type TextStats struct {
	Words          int
	Chars          int
	ReadingMinutes int
}

// Stats computes word count, character count, and reading time at 200
// words per minute (rounded up).
func Stats(content string) TextStats {
	words := len(strings.Fields(content))
	minutes := (words + 199) / 200
	return TextStats{
		Words:          words,
		Chars:          len([]rune(content)),
		ReadingMinutes: minutes,
	}
}

// Writing owns the document collection.
type Writing struct {
	docs *collection.Collection[[]Document]
}

func NewWriting(store storage.Store) *Writing {
	return &Writing{docs: collection.New[[]Document](store, KeyWriting)}
}

func (w *Writing) Load(ctx context.Context) error {
	return w.docs.Load(ctx)
}

// Save stores a document. A negative index prepends a new document; a
// valid index replaces the existing one. An empty title becomes
// "Untitled".
func (w *Writing) Save(ctx context.Context, index int, title, content string, now time.Time) error {
	if title == "" {
		title = "Untitled"
	}
	doc := Document{
		Title:   title,
		Content: content,
		Date:    now.Format(time.RFC3339),
	}
	return w.docs.Mutate(ctx, func(docs *[]Document) error {
		if index < 0 {
			*docs = append([]Document{doc}, *docs...)
			return nil
		}
		if index >= len(*docs) {
			return fmt.Errorf("document %d not found", index)
		}
		(*docs)[index] = doc
		return nil
	})
}

// Delete removes the document at index.
func (w *Writing) Delete(ctx context.Context, index int) error {
	return w.docs.Mutate(ctx, func(docs *[]Document) error {
		if index < 0 || index >= len(*docs) {
			return fmt.Errorf("document %d not found", index)
		}
		*docs = append((*docs)[:index], (*docs)[index+1:]...)
		return nil
	})
}

// Document returns the document at index.
func (w *Writing) Document(index int) (Document, error) {
	docs := w.docs.View()
	if index < 0 || index >= len(docs) {
		return Document{}, fmt.Errorf("document %d not found", index)
	}
	return docs[index], nil
}

// Documents returns all documents, most recent first.
func (w *Writing) Documents() []Document {
	return w.docs.View()
}
