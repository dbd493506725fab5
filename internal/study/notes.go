package study

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/runnerr0/studystream/internal/collection"
	"github.com/runnerr0/studystream/internal/storage"
)

// Note is one notebook entry, newest first.
type Note struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Date    string `json:"date"` // RFC3339 of last save
}

// NoteMatch pairs a search hit with its position in the list, which is
// how notes are addressed.
type NoteMatch struct {
	Index int
	Note  Note
}

// Notes owns the note collection. Notes are index-addressed: the list
// order (most recent insertion first) is the identity.
type Notes struct {
	notes *collection.Collection[[]Note]
}

func NewNotes(store storage.Store) *Notes {
	return &Notes{notes: collection.New[[]Note](store, KeyNotes)}
}

func (n *Notes) Load(ctx context.Context) error {
	return n.notes.Load(ctx)
}

// Add prepends a new note.
func (n *Notes) Add(ctx context.Context, title, content string, now time.Time) error {
	return n.notes.Mutate(ctx, func(notes *[]Note) error {
		*notes = append([]Note{{
			Title:   title,
			Content: content,
			Date:    now.Format(time.RFC3339),
		}}, *notes...)
		return nil
	})
}

// Update replaces the note at index, refreshing its date.
func (n *Notes) Update(ctx context.Context, index int, title, content string, now time.Time) error {
	return n.notes.Mutate(ctx, func(notes *[]Note) error {
		if index < 0 || index >= len(*notes) {
			return fmt.Errorf("note %d not found", index)
		}
		(*notes)[index] = Note{
			Title:   title,
			Content: content,
			Date:    now.Format(time.RFC3339),
		}
		return nil
	})
}

// Delete removes the note at index.
func (n *Notes) Delete(ctx context.Context, index int) error {
	return n.notes.Mutate(ctx, func(notes *[]Note) error {
		if index < 0 || index >= len(*notes) {
			return fmt.Errorf("note %d not found", index)
		}
		*notes = append((*notes)[:index], (*notes)[index+1:]...)
		return nil
	})
}

// Note returns the note at index.
func (n *Notes) Note(index int) (Note, error) {
	notes := n.notes.View()
	if index < 0 || index >= len(notes) {
		return Note{}, fmt.Errorf("note %d not found", index)
	}
	return notes[index], nil
}

// Notes returns all notes, most recent first.
func (n *Notes) Notes() []Note {
	return n.notes.View()
}

// Search returns notes whose title or content contains query,
// case-insensitive, preserving list order.
func (n *Notes) Search(query string) []NoteMatch {
	q := strings.ToLower(query)
	out := []NoteMatch{}
	for i, note := range n.notes.View() {
		if strings.Contains(strings.ToLower(note.Title), q) ||
			strings.Contains(strings.ToLower(note.Content), q) {
			out = append(out, NoteMatch{Index: i, Note: note})
		}
	}
	return out
}
