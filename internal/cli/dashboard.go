package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/runnerr0/studystream/internal/dashboard"
	"github.com/runnerr0/studystream/internal/storage"
	"github.com/runnerr0/studystream/internal/study"
)

// DashboardCommand — show today's activity summary.
type DashboardCommand struct {
	globals *GlobalFlags
	version string
}

// Execute implements the go-flags Commander interface for DashboardCommand.
func (c *DashboardCommand) Execute(args []string) error {
	store, db, cfg, err := openFromGlobals(c.globals)
	if err != nil {
		return err
	}
	defer db.Close()
	defer store.Close()

	return c.executeWithStore(store, cfg.Dashboard.FocusLimit, time.Now())
}

// executeWithStore runs the dashboard against a provided store (for testing).
func (c *DashboardCommand) executeWithStore(store storage.Store, focusLimit int, now time.Time) error {
	ctx := context.Background()

	pomo := study.NewPomodoro(store)
	cards := study.NewFlashcards(store)
	tasks := study.NewChecklist(store)
	for _, load := range []func(context.Context) error{pomo.Load, cards.Load, tasks.Load} {
		if err := load(ctx); err != nil {
			return err
		}
	}

	summary := dashboard.Build(now, pomo, cards, tasks, focusLimit)

	if c.globals != nil && c.globals.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	}
	return c.printHuman(summary)
}

func (c *DashboardCommand) printHuman(s dashboard.Summary) error {
	header := "StudyStream Dashboard"
	if c.version != "" {
		header = fmt.Sprintf("StudyStream Dashboard (%s)", c.version)
	}
	fmt.Println(header)
	fmt.Println(strings.Repeat("=", len(header)))
	fmt.Printf("Date:            %s\n", s.Date)
	fmt.Printf("Pomodoros:       %s\n", formatNumber(s.PomodorosToday))
	fmt.Printf("Cards reviewed:  %s\n", formatNumber(s.CardsReviewedToday))
	fmt.Printf("Tasks done:      %s\n", formatNumber(s.TasksCompletedToday))
	if s.Streak == 1 {
		fmt.Println("Streak:          1 day")
	} else {
		fmt.Printf("Streak:          %d days\n", s.Streak)
	}

	fmt.Println()
	fmt.Println("Last 7 days:")
	for i, count := range s.Week {
		day := s.Date
		if i < 6 {
			day = shiftDay(s.Date, i-6)
		}
		fmt.Printf("  %s  %-3d %s\n", day, count, strings.Repeat("#", count))
	}

	fmt.Println()
	if len(s.Focus) == 0 {
		fmt.Println("Focus: nothing pending. Nice.")
		return nil
	}
	fmt.Println("Focus:")
	for _, task := range s.Focus {
		fmt.Printf("  [ ] %s\n", task.Text)
	}
	return nil
}

// shiftDay moves a day key by a number of days; on a malformed key it
// returns the key unchanged.
func shiftDay(day string, days int) string {
	t, err := time.Parse("2006-01-02", day)
	if err != nil {
		return day
	}
	return study.DayKey(t.AddDate(0, 0, days))
}
