package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/runnerr0/studystream/internal/backup"
	"github.com/runnerr0/studystream/internal/storage"
)

// ExportCommand — write every module's data to a single JSON archive.
type ExportCommand struct {
	Output string `long:"output" description:"Archive file path; stdout when omitted"`

	globals *GlobalFlags
}

// ImportCommand — restore module data from a JSON archive. Takes effect
// on the next load.
type ImportCommand struct {
	Input string `long:"input" description:"Archive file path (required)"`

	globals *GlobalFlags
}

// PurgeCommand — delete ALL StudyStream data with safety confirmation.
type PurgeCommand struct {
	All   bool `long:"all" description:"Required flag to confirm purge intent"`
	Force bool `long:"force" description:"Skip safety confirmation prompt"`

	globals *GlobalFlags
}

// Execute implements the go-flags Commander interface for ExportCommand.
func (c *ExportCommand) Execute(args []string) error {
	store, db, _, err := openFromGlobals(c.globals)
	if err != nil {
		return err
	}
	defer db.Close()
	defer store.Close()
	return c.executeWithStore(store, time.Now())
}

func (c *ExportCommand) executeWithStore(store storage.Store, now time.Time) error {
	archive, err := backup.Export(context.Background(), store, now)
	if err != nil {
		return err
	}
	data, err := backup.Encode(archive)
	if err != nil {
		return err
	}

	if c.Output == "" {
		fmt.Println(string(data))
		return nil
	}
	if err := os.WriteFile(c.Output, data, 0600); err != nil {
		return fmt.Errorf("write archive: %w", err)
	}
	if c.globals != nil && c.globals.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]any{"exported": c.Output})
	}
	fmt.Printf("Exported to %s\n", c.Output)
	return nil
}

// Execute implements the go-flags Commander interface for ImportCommand.
func (c *ImportCommand) Execute(args []string) error {
	store, db, _, err := openFromGlobals(c.globals)
	if err != nil {
		return err
	}
	defer db.Close()
	defer store.Close()
	return c.executeWithStore(store)
}

func (c *ImportCommand) executeWithStore(store storage.Store) error {
	if c.Input == "" {
		return fmt.Errorf("--input is required")
	}
	data, err := os.ReadFile(c.Input)
	if err != nil {
		return fmt.Errorf("read archive: %w", err)
	}
	archive, err := backup.Decode(data)
	if err != nil {
		return err
	}
	if err := backup.Import(context.Background(), store, archive); err != nil {
		return err
	}
	if c.globals != nil && c.globals.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]any{"imported": c.Input})
	}
	fmt.Printf("Imported %s\n", c.Input)
	return nil
}

// Execute implements the go-flags Commander interface for PurgeCommand.
func (c *PurgeCommand) Execute(args []string) error {
	if !c.All {
		return fmt.Errorf("purge requires --all flag for safety")
	}

	// Confirmation prompt unless --force
	if !c.Force {
		fmt.Println("⚠ WARNING: This will permanently delete ALL StudyStream data.")
		fmt.Println("  - All decks, notes, tasks, habits, and boards")
		fmt.Println("  - All planner, journal, and study log entries")
		fmt.Println("  - All pomodoro history and streaks")
		fmt.Println()
		fmt.Println("This action cannot be undone.")
		fmt.Println()
		fmt.Print(`Type "PURGE" to confirm: `)

		scanner := bufio.NewScanner(os.Stdin)
		if !scanner.Scan() {
			return fmt.Errorf("aborted: no input received")
		}
		input := strings.TrimSpace(scanner.Text())
		if input != "PURGE" {
			return fmt.Errorf("aborted: confirmation text did not match")
		}
	}

	store, db, _, err := openFromGlobals(c.globals)
	if err != nil {
		return err
	}
	defer db.Close()
	defer store.Close()
	return c.executeWithStore(store)
}

func (c *PurgeCommand) executeWithStore(store storage.Store) error {
	deleted, err := backup.Purge(context.Background(), store)
	if err != nil {
		return err
	}
	if c.globals != nil && c.globals.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]any{"purged": true, "keys_deleted": deleted})
	}
	fmt.Printf("Purged all data (%d keys). StudyStream is empty.\n", deleted)
	return nil
}
