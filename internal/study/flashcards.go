package study

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"github.com/runnerr0/studystream/internal/collection"
	"github.com/runnerr0/studystream/internal/storage"
)

// Card is one front/back flashcard inside a deck.
type Card struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

// Deck is a named, ordered list of cards.
type Deck struct {
	Name  string `json:"name"`
	Cards []Card `json:"cards"`
}

// Flashcards owns the deck collection plus the daily cards-reviewed
// counter (its own second key, still single-writer).
type Flashcards struct {
	decks    *collection.Collection[[]Deck]
	reviewed *collection.Collection[map[string]int]
}

func NewFlashcards(store storage.Store) *Flashcards {
	return &Flashcards{
		decks:    collection.New[[]Deck](store, KeyFlashcards),
		reviewed: collection.New[map[string]int](store, KeyCardsReviewed),
	}
}

func (f *Flashcards) Load(ctx context.Context) error {
	if err := f.decks.Load(ctx); err != nil {
		return err
	}
	return f.reviewed.Load(ctx)
}

// Decks returns the current deck list in creation order.
func (f *Flashcards) Decks() []Deck {
	return f.decks.View()
}

// Deck returns the deck at index.
func (f *Flashcards) Deck(index int) (Deck, error) {
	decks := f.decks.View()
	if index < 0 || index >= len(decks) {
		return Deck{}, fmt.Errorf("deck %d not found", index)
	}
	return decks[index], nil
}

// CreateDeck appends a new empty deck.
func (f *Flashcards) CreateDeck(ctx context.Context, name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("deck name is required")
	}
	return f.decks.Mutate(ctx, func(decks *[]Deck) error {
		*decks = append(*decks, Deck{Name: name, Cards: []Card{}})
		return nil
	})
}

// AddCard appends a card to the deck at index.
func (f *Flashcards) AddCard(ctx context.Context, index int, front, back string) error {
	if front == "" || back == "" {
		return fmt.Errorf("both front and back are required")
	}
	return f.decks.Mutate(ctx, func(decks *[]Deck) error {
		if index < 0 || index >= len(*decks) {
			return fmt.Errorf("deck %d not found", index)
		}
		(*decks)[index].Cards = append((*decks)[index].Cards, Card{Front: front, Back: back})
		return nil
	})
}

// Shuffle permutes the deck's cards in place with Fisher–Yates, giving
// each of the n! orderings equal probability. A deck of one card or
// fewer is left untouched (and not rewritten).
func (f *Flashcards) Shuffle(ctx context.Context, index int) error {
	decks := f.decks.View()
	if index < 0 || index >= len(decks) {
		return fmt.Errorf("deck %d not found", index)
	}
	if len(decks[index].Cards) <= 1 {
		return nil
	}
	return f.decks.Mutate(ctx, func(decks *[]Deck) error {
		cards := (*decks)[index].Cards
		for i := len(cards) - 1; i > 0; i-- {
			j := rand.Intn(i + 1)
			cards[i], cards[j] = cards[j], cards[i]
		}
		return nil
	})
}

// MarkReviewed adds n to the given day's reviewed counter.
func (f *Flashcards) MarkReviewed(ctx context.Context, day string, n int) error {
	if n <= 0 {
		return nil
	}
	return f.reviewed.Mutate(ctx, func(counts *map[string]int) error {
		if *counts == nil {
			*counts = map[string]int{}
		}
		(*counts)[day] += n
		return nil
	})
}

// ReviewedOn is the dashboard's read accessor for a day's review count.
func (f *Flashcards) ReviewedOn(day string) int {
	return f.reviewed.View()[day]
}
