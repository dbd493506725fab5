// Package collection implements the persisted-collection pattern every
// StudyStream tool is built on: an in-memory model loaded once from a
// store key at startup, mutated in process, and written back in full
// after every mutation. The store is the only durable state; the model
// is a cache that must be fully reconstructable from it.
package collection

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/runnerr0/studystream/internal/storage"
)

// Collection binds one module's in-memory model of type T to one store
// key. T is typically a slice of entities or a map keyed by day.
type Collection[T any] struct {
	store  storage.Store
	key    string
	model  T
	loaded bool
}

// New creates an unloaded Collection for key. Call Load before use.
func New[T any](store storage.Store, key string) *Collection[T] {
	return &Collection[T]{store: store, key: key}
}

// Key returns the store key this collection persists under.
func (c *Collection[T]) Key() string {
	return c.key
}

// Load reads the store key and decodes it into the model. An absent key
// or malformed stored value leaves the model at its empty default:
// corrupt data is discarded, never repaired, and never fails the load.
// Only infrastructure errors (the store itself failing) propagate.
func (c *Collection[T]) Load(ctx context.Context) error {
	var zero T
	c.model = zero
	c.loaded = true

	raw, ok, err := c.store.Get(ctx, c.key)
	if err != nil {
		return fmt.Errorf("load %s: %w", c.key, err)
	}
	if !ok {
		return nil
	}

	var decoded T
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		// ParseError policy: reset to empty default, isolate the damage
		// to this one module.
		return nil
	}

	c.model = decoded
	return nil
}

// Mutate applies fn to the model and immediately persists the result.
// If fn returns an error the model change is discarded and nothing is
// written. If the save fails the mutation stands in memory and the
// write error is returned; the state is inconsistent until the next
// successful save.
func (c *Collection[T]) Mutate(ctx context.Context, fn func(*T) error) error {
	if !c.loaded {
		return fmt.Errorf("mutate %s: collection not loaded", c.key)
	}

	prev := c.model
	if err := fn(&c.model); err != nil {
		c.model = prev
		return err
	}

	return c.Save(ctx)
}

// Save encodes the current model and writes it to the store key. Called
// synchronously after every mutation; no coalescing, collections are
// small.
func (c *Collection[T]) Save(ctx context.Context) error {
	data, err := json.Marshal(c.model)
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.key, err)
	}
	if err := c.store.Set(ctx, c.key, string(data)); err != nil {
		return fmt.Errorf("save %s: %w", c.key, err)
	}
	return nil
}

// View returns the current in-memory model. It is a shallow snapshot:
// callers treat it as read-only and mutate only through Mutate.
func (c *Collection[T]) View() T {
	return c.model
}
