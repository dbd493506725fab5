package study

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/runnerr0/studystream/internal/collection"
	"github.com/runnerr0/studystream/internal/storage"
)

// LogEntry records one study session. The log is append-only, newest
// first.
type LogEntry struct {
	ID       int64  `json:"id"`
	Subject  string `json:"subject"`
	Duration int    `json:"duration"` // minutes
	Date     string `json:"date"`     // day key
	Notes    string `json:"notes"`
}

// WeekStats summarizes the trailing seven days of study sessions.
type WeekStats struct {
	TotalMinutes int
	AvgSession   int
	Sessions     int // all-time session count
}

// StudyLog owns the session log.
type StudyLog struct {
	logs *collection.Collection[[]LogEntry]
}

func NewStudyLog(store storage.Store) *StudyLog {
	return &StudyLog{logs: collection.New[[]LogEntry](store, KeyStudyLogs)}
}

func (s *StudyLog) Load(ctx context.Context) error {
	return s.logs.Load(ctx)
}

// Add prepends a session.
func (s *StudyLog) Add(ctx context.Context, subject string, duration int, day, notes string, now time.Time) (LogEntry, error) {
	if strings.TrimSpace(subject) == "" {
		return LogEntry{}, fmt.Errorf("subject is required")
	}
	if duration <= 0 {
		return LogEntry{}, fmt.Errorf("duration must be positive")
	}
	if day == "" {
		day = DayKey(now)
	} else if _, err := time.Parse(dayLayout, day); err != nil {
		return LogEntry{}, fmt.Errorf("invalid date %q (use YYYY-MM-DD)", day)
	}
	entry := LogEntry{
		ID:       NewID(now),
		Subject:  subject,
		Duration: duration,
		Date:     day,
		Notes:    notes,
	}
	err := s.logs.Mutate(ctx, func(logs *[]LogEntry) error {
		*logs = append([]LogEntry{entry}, *logs...)
		return nil
	})
	return entry, err
}

// Logs returns all sessions, most recent first.
func (s *StudyLog) Logs() []LogEntry {
	return s.logs.View()
}

// WeeklyStats totals the last seven days (inclusive of today).
func (s *StudyLog) WeeklyStats(now time.Time) WeekStats {
	cutoff := now.AddDate(0, 0, -7)
	stats := WeekStats{Sessions: len(s.logs.View())}
	recent := 0
	for _, l := range s.logs.View() {
		day, err := time.Parse(dayLayout, l.Date)
		if err != nil || day.Before(cutoff) {
			continue
		}
		stats.TotalMinutes += l.Duration
		recent++
	}
	if recent > 0 {
		stats.AvgSession = (stats.TotalMinutes + recent/2) / recent
	}
	return stats
}

// DailyMinutes returns minutes studied per day over the trailing week,
// oldest first, newest (today) last.
func (s *StudyLog) DailyMinutes(now time.Time) [7]int {
	var out [7]int
	for i := 0; i < 7; i++ {
		day := DayKey(now.AddDate(0, 0, i-6))
		for _, l := range s.logs.View() {
			if l.Date == day {
				out[i] += l.Duration
			}
		}
	}
	return out
}
