package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/runnerr0/studystream/internal/storage"
	"github.com/runnerr0/studystream/internal/study"
)

// FlashcardsCreateCommand — create a new deck.
type FlashcardsCreateCommand struct {
	Name string `long:"name" description:"Deck name (required)"`

	globals *GlobalFlags
}

// FlashcardsAddCommand — add a front/back card to a deck.
type FlashcardsAddCommand struct {
	Deck  int    `long:"deck" description:"Deck index"`
	Front string `long:"front" description:"Card front (question)"`
	Back  string `long:"back" description:"Card back (answer)"`

	globals *GlobalFlags
}

// FlashcardsListCommand — list decks and their cards.
type FlashcardsListCommand struct {
	Deck int `long:"deck" description:"Only this deck index" default:"-1"`

	globals *GlobalFlags
}

// FlashcardsShuffleCommand — randomize a deck's card order.
type FlashcardsShuffleCommand struct {
	Deck int `long:"deck" description:"Deck index"`

	globals *GlobalFlags
}

// FlashcardsReviewCommand — record cards reviewed today.
type FlashcardsReviewCommand struct {
	Count int `long:"count" description:"Cards reviewed" default:"1"`

	globals *GlobalFlags
}

func (c *FlashcardsCreateCommand) Execute(args []string) error {
	store, db, _, err := openFromGlobals(c.globals)
	if err != nil {
		return err
	}
	defer db.Close()
	defer store.Close()
	return c.executeWithStore(store)
}

func (c *FlashcardsCreateCommand) executeWithStore(store storage.Store) error {
	ctx := context.Background()
	f := study.NewFlashcards(store)
	if err := f.Load(ctx); err != nil {
		return err
	}
	if err := f.CreateDeck(ctx, c.Name); err != nil {
		return err
	}
	if c.globals != nil && c.globals.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]any{"created": c.Name, "deck": len(f.Decks()) - 1})
	}
	fmt.Printf("Created deck %q (index %d)\n", c.Name, len(f.Decks())-1)
	return nil
}

func (c *FlashcardsAddCommand) Execute(args []string) error {
	store, db, _, err := openFromGlobals(c.globals)
	if err != nil {
		return err
	}
	defer db.Close()
	defer store.Close()
	return c.executeWithStore(store)
}

func (c *FlashcardsAddCommand) executeWithStore(store storage.Store) error {
	ctx := context.Background()
	f := study.NewFlashcards(store)
	if err := f.Load(ctx); err != nil {
		return err
	}
	if c.Front == "" || c.Back == "" {
		return fmt.Errorf("both --front and --back are required")
	}
	if err := f.AddCard(ctx, c.Deck, c.Front, c.Back); err != nil {
		return err
	}
	deck, err := f.Deck(c.Deck)
	if err != nil {
		return err
	}
	if c.globals != nil && c.globals.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]any{"deck": deck.Name, "cards": len(deck.Cards)})
	}
	fmt.Printf("Added card to %q (%d cards)\n", deck.Name, len(deck.Cards))
	return nil
}

func (c *FlashcardsListCommand) Execute(args []string) error {
	store, db, _, err := openFromGlobals(c.globals)
	if err != nil {
		return err
	}
	defer db.Close()
	defer store.Close()
	return c.executeWithStore(store)
}

func (c *FlashcardsListCommand) executeWithStore(store storage.Store) error {
	ctx := context.Background()
	f := study.NewFlashcards(store)
	if err := f.Load(ctx); err != nil {
		return err
	}

	decks := f.Decks()
	if c.Deck >= 0 {
		deck, err := f.Deck(c.Deck)
		if err != nil {
			return err
		}
		decks = []study.Deck{deck}
	}

	if c.globals != nil && c.globals.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(decks)
	}

	if len(decks) == 0 {
		fmt.Println("No decks yet. Create one with: studystream cards create --name <name>")
		return nil
	}
	for i, deck := range decks {
		fmt.Printf("[%d] %s (%d cards)\n", i, deck.Name, len(deck.Cards))
		for _, card := range deck.Cards {
			fmt.Printf("      %s -> %s\n", card.Front, card.Back)
		}
	}
	return nil
}

func (c *FlashcardsShuffleCommand) Execute(args []string) error {
	store, db, _, err := openFromGlobals(c.globals)
	if err != nil {
		return err
	}
	defer db.Close()
	defer store.Close()
	return c.executeWithStore(store)
}

func (c *FlashcardsShuffleCommand) executeWithStore(store storage.Store) error {
	ctx := context.Background()
	f := study.NewFlashcards(store)
	if err := f.Load(ctx); err != nil {
		return err
	}
	if err := f.Shuffle(ctx, c.Deck); err != nil {
		return err
	}
	deck, err := f.Deck(c.Deck)
	if err != nil {
		return err
	}
	if c.globals != nil && c.globals.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]any{"shuffled": deck.Name})
	}
	fmt.Printf("Shuffled %q\n", deck.Name)
	return nil
}

func (c *FlashcardsReviewCommand) Execute(args []string) error {
	store, db, _, err := openFromGlobals(c.globals)
	if err != nil {
		return err
	}
	defer db.Close()
	defer store.Close()
	return c.executeWithStore(store, time.Now())
}

func (c *FlashcardsReviewCommand) executeWithStore(store storage.Store, now time.Time) error {
	ctx := context.Background()
	f := study.NewFlashcards(store)
	if err := f.Load(ctx); err != nil {
		return err
	}
	if c.Count <= 0 {
		return fmt.Errorf("--count must be positive")
	}
	day := study.DayKey(now)
	if err := f.MarkReviewed(ctx, day, c.Count); err != nil {
		return err
	}
	total := f.ReviewedOn(day)
	if c.globals != nil && c.globals.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]any{"date": day, "reviewed_today": total})
	}
	fmt.Printf("Reviewed %d cards today (%d total)\n", c.Count, total)
	return nil
}
