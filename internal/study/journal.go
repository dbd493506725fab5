package study

import (
	"context"
	"fmt"
	"time"

	"github.com/runnerr0/studystream/internal/collection"
	"github.com/runnerr0/studystream/internal/storage"
)

// Entry is one journal entry. Mood is free-form and may be empty.
type Entry struct {
	ID      int64  `json:"id"`
	Content string `json:"content"`
	Mood    string `json:"mood"`
	Date    string `json:"date"` // RFC3339 of last save
}

// Journal owns the entry collection, newest first.
type Journal struct {
	entries *collection.Collection[[]Entry]
}

func NewJournal(store storage.Store) *Journal {
	return &Journal{entries: collection.New[[]Entry](store, KeyJournal)}
}

func (j *Journal) Load(ctx context.Context) error {
	return j.entries.Load(ctx)
}

// Save stores an entry. With id zero a new entry is prepended under a
// fresh ID; otherwise the existing entry with that id is replaced (the
// id doubles as the update key).
func (j *Journal) Save(ctx context.Context, id int64, content, mood string, now time.Time) (Entry, error) {
	if content == "" {
		return Entry{}, fmt.Errorf("entry content is required")
	}
	entry := Entry{
		ID:      id,
		Content: content,
		Mood:    mood,
		Date:    now.Format(time.RFC3339),
	}
	if id == 0 {
		entry.ID = NewID(now)
	}
	err := j.entries.Mutate(ctx, func(entries *[]Entry) error {
		if id == 0 {
			*entries = append([]Entry{entry}, *entries...)
			return nil
		}
		for i := range *entries {
			if (*entries)[i].ID == id {
				(*entries)[i] = entry
				return nil
			}
		}
		return fmt.Errorf("entry %d not found", id)
	})
	return entry, err
}

// Delete removes the entry with the given id.
func (j *Journal) Delete(ctx context.Context, id int64) error {
	return j.entries.Mutate(ctx, func(entries *[]Entry) error {
		for i := range *entries {
			if (*entries)[i].ID == id {
				*entries = append((*entries)[:i], (*entries)[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("entry %d not found", id)
	})
}

// Entry returns the entry with the given id.
func (j *Journal) Entry(id int64) (Entry, error) {
	for _, e := range j.entries.View() {
		if e.ID == id {
			return e, nil
		}
	}
	return Entry{}, fmt.Errorf("entry %d not found", id)
}

// Entries returns all entries, most recent first.
func (j *Journal) Entries() []Entry {
	return j.entries.View()
}
