// Package study holds one controller per StudyStream tool. Each
// controller owns exactly one persisted collection, is the only writer
// of its store key, and exposes read accessors for the dashboard so
// schema knowledge never leaks across modules.
package study

import (
	"time"

	"github.com/runnerr0/studystream/internal/storage"
)

// Store keys, one per module collection.
const (
	KeyFlashcards    = storage.KeyPrefix + "flashcards"
	KeyCardsReviewed = storage.KeyPrefix + "cards_reviewed"
	KeyNotes         = storage.KeyPrefix + "notes"
	KeyChecklist     = storage.KeyPrefix + "checklist"
	KeyHabits        = storage.KeyPrefix + "habits"
	KeyKanban        = storage.KeyPrefix + "kanban"
	KeyCalendar      = storage.KeyPrefix + "calendar"
	KeyWriting       = storage.KeyPrefix + "writing"
	KeyPlanner       = storage.KeyPrefix + "planner"
	KeyJournal       = storage.KeyPrefix + "journal"
	KeyStudyLogs     = storage.KeyPrefix + "study_logs"
	KeyPomodoro      = storage.KeyPrefix + "pomodoro"
)

const dayLayout = "2006-01-02"

// DayKey formats t as the calendar-day string used everywhere a module
// keys data by day (habit completions, pomodoro counters, review
// counts).
func DayKey(t time.Time) string {
	return t.Format(dayLayout)
}

// NewID returns a creation-timestamp ID. Uniqueness is assumed, not
// enforced: two entities created in the same millisecond collide, an
// accepted known weakness.
func NewID(now time.Time) int64 {
	return now.UnixMilli()
}
