package study

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/runnerr0/studystream/internal/collection"
	"github.com/runnerr0/studystream/internal/storage"
)

// Status is a kanban lane. The four lanes are a flat unordered set: any
// status is reachable from any other in one move, there is no pipeline.
type Status string

const (
	StatusTodo     Status = "todo"
	StatusProgress Status = "progress"
	StatusReview   Status = "review"
	StatusDone     Status = "done"
)

// Statuses lists the lanes in display order.
var Statuses = []Status{StatusTodo, StatusProgress, StatusReview, StatusDone}

// ValidStatus reports whether s names a lane.
func ValidStatus(s Status) bool {
	switch s {
	case StatusTodo, StatusProgress, StatusReview, StatusDone:
		return true
	}
	return false
}

// KanbanCard is one board card. After creation only the status and the
// textual content ever change.
type KanbanCard struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      Status `json:"status"`
	Date        string `json:"date"` // RFC3339 creation time
}

// Kanban owns the board collection.
type Kanban struct {
	cards *collection.Collection[[]KanbanCard]
}

func NewKanban(store storage.Store) *Kanban {
	return &Kanban{cards: collection.New[[]KanbanCard](store, KeyKanban)}
}

func (k *Kanban) Load(ctx context.Context) error {
	return k.cards.Load(ctx)
}

// Add creates a card in the given lane.
func (k *Kanban) Add(ctx context.Context, title, description string, status Status, now time.Time) (KanbanCard, error) {
	if strings.TrimSpace(title) == "" {
		return KanbanCard{}, fmt.Errorf("card title is required")
	}
	if !ValidStatus(status) {
		return KanbanCard{}, fmt.Errorf("unknown status %q (use todo, progress, review, or done)", status)
	}
	card := KanbanCard{
		ID:          NewID(now),
		Title:       title,
		Description: description,
		Status:      status,
		Date:        now.Format(time.RFC3339),
	}
	err := k.cards.Mutate(ctx, func(cards *[]KanbanCard) error {
		*cards = append(*cards, card)
		return nil
	})
	return card, err
}

// Move places the card in a new lane. Any lane to any lane is a single
// legal step.
func (k *Kanban) Move(ctx context.Context, id int64, status Status) error {
	if !ValidStatus(status) {
		return fmt.Errorf("unknown status %q (use todo, progress, review, or done)", status)
	}
	return k.cards.Mutate(ctx, func(cards *[]KanbanCard) error {
		for i := range *cards {
			if (*cards)[i].ID == id {
				(*cards)[i].Status = status
				return nil
			}
		}
		return fmt.Errorf("card %d not found", id)
	})
}

// Delete removes the card with the given id.
func (k *Kanban) Delete(ctx context.Context, id int64) error {
	return k.cards.Mutate(ctx, func(cards *[]KanbanCard) error {
		for i := range *cards {
			if (*cards)[i].ID == id {
				*cards = append((*cards)[:i], (*cards)[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("card %d not found", id)
	})
}

// Cards returns the cards in the given lane, or every card when status
// is empty, in creation order.
func (k *Kanban) Cards(status Status) []KanbanCard {
	all := k.cards.View()
	if status == "" {
		return all
	}
	out := []KanbanCard{}
	for _, c := range all {
		if c.Status == status {
			out = append(out, c)
		}
	}
	return out
}
