// Package backup implements whole-app export, import, and purge. The
// archive carries each module's stored JSON text verbatim; nothing is
// re-encoded, so an import followed by a reload reproduces the exported
// state exactly.
package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/runnerr0/studystream/internal/storage"
	"github.com/runnerr0/studystream/internal/study"
)

// Archive is the export document. Each field holds one module's raw
// stored value, or null when the key was absent at export time.
type Archive struct {
	ExportedAt string  `json:"exported_at"`
	Flashcards *string `json:"flashcards"`
	Notes      *string `json:"notes"`
	Checklist  *string `json:"checklist"`
	Habits     *string `json:"habits"`
	Kanban     *string `json:"kanban"`
	Calendar   *string `json:"calendar"`
	Writing    *string `json:"writing"`
	Planner    *string `json:"planner"`
	Journal    *string `json:"journal"`
	StudyLogs  *string `json:"studyLogs"`
	Pomodoro   *string `json:"pomodoro"`
	Reviewed   *string `json:"cards_reviewed"`
}

// fields maps each archive slot to its store key. The slice fixes the
// field set; a key absent here is never exported or imported.
func (a *Archive) fields() map[string]**string {
	return map[string]**string{
		study.KeyFlashcards:    &a.Flashcards,
		study.KeyNotes:         &a.Notes,
		study.KeyChecklist:     &a.Checklist,
		study.KeyHabits:        &a.Habits,
		study.KeyKanban:        &a.Kanban,
		study.KeyCalendar:      &a.Calendar,
		study.KeyWriting:       &a.Writing,
		study.KeyPlanner:       &a.Planner,
		study.KeyJournal:       &a.Journal,
		study.KeyStudyLogs:     &a.StudyLogs,
		study.KeyPomodoro:      &a.Pomodoro,
		study.KeyCardsReviewed: &a.Reviewed,
	}
}

// Export reads every module key and assembles the archive.
func Export(ctx context.Context, store storage.Store, now time.Time) (Archive, error) {
	archive := Archive{ExportedAt: now.Format(time.RFC3339)}
	for key, field := range archive.fields() {
		value, ok, err := store.Get(ctx, key)
		if err != nil {
			return Archive{}, fmt.Errorf("export %s: %w", key, err)
		}
		if ok {
			v := value
			*field = &v
		}
	}
	return archive, nil
}

// Import writes each non-null archive field back to its key. Null
// fields leave the stored state alone. Changes take effect on the next
// load; controllers already in memory keep their old view.
func Import(ctx context.Context, store storage.Store, archive Archive) error {
	for key, field := range archive.fields() {
		if *field == nil {
			continue
		}
		if err := store.Set(ctx, key, **field); err != nil {
			return fmt.Errorf("import %s: %w", key, err)
		}
	}
	return nil
}

// Decode parses an archive from its JSON form.
func Decode(data []byte) (Archive, error) {
	var archive Archive
	if err := json.Unmarshal(data, &archive); err != nil {
		return Archive{}, fmt.Errorf("invalid archive: %w", err)
	}
	return archive, nil
}

// Encode renders the archive as indented JSON.
func Encode(archive Archive) ([]byte, error) {
	return json.MarshalIndent(archive, "", "  ")
}

// Purge deletes every key the app owns and returns how many were
// removed. There is no undo.
func Purge(ctx context.Context, store storage.Store) (int64, error) {
	n, err := store.DeletePrefix(ctx, storage.KeyPrefix)
	if err != nil {
		return 0, fmt.Errorf("purge: %w", err)
	}
	return n, nil
}
