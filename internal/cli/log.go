package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/runnerr0/studystream/internal/storage"
	"github.com/runnerr0/studystream/internal/study"
)

// LogAddCommand — record a study session.
type LogAddCommand struct {
	Subject string `long:"subject" description:"What was studied (required)"`
	Minutes int    `long:"minutes" description:"Session length in minutes (required)"`
	Date    string `long:"date" description:"Day (YYYY-MM-DD), defaults to today"`
	Notes   string `long:"notes" description:"Session notes"`

	globals *GlobalFlags
}

// LogListCommand — list study sessions, newest first.
type LogListCommand struct {
	Limit int `long:"limit" description:"Maximum sessions to show" default:"20"`

	globals *GlobalFlags
}

// LogStatsCommand — weekly study statistics.
type LogStatsCommand struct {
	globals *GlobalFlags
}

func loadStudyLog(ctx context.Context, store storage.Store) (*study.StudyLog, error) {
	s := study.NewStudyLog(store)
	if err := s.Load(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (c *LogAddCommand) Execute(args []string) error {
	store, db, _, err := openFromGlobals(c.globals)
	if err != nil {
		return err
	}
	defer db.Close()
	defer store.Close()
	return c.executeWithStore(store, time.Now())
}

func (c *LogAddCommand) executeWithStore(store storage.Store, now time.Time) error {
	ctx := context.Background()
	s, err := loadStudyLog(ctx, store)
	if err != nil {
		return err
	}
	entry, err := s.Add(ctx, c.Subject, c.Minutes, c.Date, c.Notes, now)
	if err != nil {
		return err
	}
	if c.globals != nil && c.globals.JSON {
		return json.NewEncoder(os.Stdout).Encode(entry)
	}
	fmt.Printf("Logged %d min of %s on %s\n", entry.Duration, entry.Subject, entry.Date)
	return nil
}

func (c *LogListCommand) Execute(args []string) error {
	store, db, _, err := openFromGlobals(c.globals)
	if err != nil {
		return err
	}
	defer db.Close()
	defer store.Close()
	return c.executeWithStore(store)
}

func (c *LogListCommand) executeWithStore(store storage.Store) error {
	ctx := context.Background()
	s, err := loadStudyLog(ctx, store)
	if err != nil {
		return err
	}
	logs := s.Logs()
	if c.Limit > 0 && len(logs) > c.Limit {
		logs = logs[:c.Limit]
	}
	if c.globals != nil && c.globals.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(logs)
	}
	if len(logs) == 0 {
		fmt.Println("No study sessions logged yet.")
		return nil
	}
	for _, l := range logs {
		fmt.Printf("%s  %-20s %4d min", l.Date, l.Subject, l.Duration)
		if l.Notes != "" {
			fmt.Printf("  %s", l.Notes)
		}
		fmt.Println()
	}
	return nil
}

func (c *LogStatsCommand) Execute(args []string) error {
	store, db, _, err := openFromGlobals(c.globals)
	if err != nil {
		return err
	}
	defer db.Close()
	defer store.Close()
	return c.executeWithStore(store, time.Now())
}

func (c *LogStatsCommand) executeWithStore(store storage.Store, now time.Time) error {
	ctx := context.Background()
	s, err := loadStudyLog(ctx, store)
	if err != nil {
		return err
	}

	stats := s.WeeklyStats(now)
	daily := s.DailyMinutes(now)

	if c.globals != nil && c.globals.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"total_minutes": stats.TotalMinutes,
			"avg_session":   stats.AvgSession,
			"sessions":      stats.Sessions,
			"daily_minutes": daily,
		})
	}

	fmt.Println("Study Log (last 7 days)")
	fmt.Println("=======================")
	fmt.Printf("Total:        %s min\n", formatNumber(stats.TotalMinutes))
	fmt.Printf("Avg session:  %d min\n", stats.AvgSession)
	fmt.Printf("Sessions:     %s (all time)\n", formatNumber(stats.Sessions))
	fmt.Println()
	for i, minutes := range daily {
		day := study.DayKey(now.AddDate(0, 0, i-6))
		fmt.Printf("  %s  %4d  %s\n", day, minutes, strings.Repeat("#", minutes/15))
	}
	return nil
}
