package study

import (
	"context"
	"time"

	"github.com/runnerr0/studystream/internal/collection"
	"github.com/runnerr0/studystream/internal/storage"
)

// Pomodoro owns the per-day completed-pomodoro counters.
type Pomodoro struct {
	counts *collection.Collection[map[string]int]
}

func NewPomodoro(store storage.Store) *Pomodoro {
	return &Pomodoro{counts: collection.New[map[string]int](store, KeyPomodoro)}
}

func (p *Pomodoro) Load(ctx context.Context) error {
	return p.counts.Load(ctx)
}

// Increment adds one completed pomodoro to day and returns the new
// count.
func (p *Pomodoro) Increment(ctx context.Context, day string) (int, error) {
	var total int
	err := p.counts.Mutate(ctx, func(counts *map[string]int) error {
		if *counts == nil {
			*counts = map[string]int{}
		}
		(*counts)[day]++
		total = (*counts)[day]
		return nil
	})
	return total, err
}

// CountOn is the dashboard's read accessor for a day's count.
func (p *Pomodoro) CountOn(day string) int {
	return p.counts.View()[day]
}

// Week returns the trailing seven days of counts, oldest first, today
// last.
func (p *Pomodoro) Week(now time.Time) [7]int {
	var out [7]int
	for i := 0; i < 7; i++ {
		out[i] = p.CountOn(DayKey(now.AddDate(0, 0, i-6)))
	}
	return out
}

// Streak counts consecutive days with a non-zero counter, walking
// backward from today and stopping at the first gap. Today counts as
// soon as one pomodoro is logged, even though the day is not over.
func (p *Pomodoro) Streak(now time.Time) int {
	streak := 0
	for day := now; p.CountOn(DayKey(day)) > 0; day = day.AddDate(0, 0, -1) {
		streak++
	}
	return streak
}
