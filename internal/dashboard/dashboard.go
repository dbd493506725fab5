// Package dashboard aggregates today's activity across the study tools
// into a single summary. It only reads; every number comes from the
// controllers' in-memory state, so callers must Load them first.
package dashboard

import (
	"time"

	"github.com/runnerr0/studystream/internal/study"
)

// Summary is one day's activity snapshot.
type Summary struct {
	Date                string       `json:"date"`
	PomodorosToday      int          `json:"pomodoros_today"`
	CardsReviewedToday  int          `json:"cards_reviewed_today"`
	TasksCompletedToday int          `json:"tasks_completed_today"`
	Streak              int          `json:"streak_days"`
	Week                [7]int       `json:"week"`
	Focus               []study.Task `json:"focus"`
}

// FocusLimit is the default size of the focus list.
const FocusLimit = 5

// Build assembles the summary for the day containing now.
func Build(now time.Time, pomo *study.Pomodoro, cards *study.Flashcards, tasks *study.Checklist, focusLimit int) Summary {
	if focusLimit <= 0 {
		focusLimit = FocusLimit
	}
	day := study.DayKey(now)
	return Summary{
		Date:                day,
		PomodorosToday:      pomo.CountOn(day),
		CardsReviewedToday:  cards.ReviewedOn(day),
		TasksCompletedToday: tasks.CompletedOn(day),
		Streak:              pomo.Streak(now),
		Week:                pomo.Week(now),
		Focus:               tasks.Focus(focusLimit),
	}
}
