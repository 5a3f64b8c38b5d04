// Package store owns the item collection. Every operation reads the whole
// collection from a single storage slot and mutations write it back in one
// replace.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/erazemk/inventar/internal/model"
)

var (
	// ErrNotFound is returned when no item has the requested id.
	ErrNotFound = errors.New("item not found")
	// ErrCorrupt is returned when the slot holds data that cannot be decoded
	// as an item collection. The data is left untouched.
	ErrCorrupt = errors.New("stored collection is corrupt")
)

// Slot is the single storage location holding the serialized collection.
// Read returns nil data when the slot has never been written.
type Slot interface {
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, data []byte) error
}

// Store is the inventory data-access layer.
type Store struct {
	slot  Slot
	now   func() time.Time
	newID func() string

	// mu serialises read-modify-write cycles within the process.
	mu sync.Mutex
}

// New returns a store backed by slot.
func New(slot Slot) *Store {
	return &Store{
		slot:  slot,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// load reads the collection. An empty slot is an empty collection.
func (s *Store) load(ctx context.Context) ([]model.Item, error) {
	data, err := s.slot.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading collection: %w", err)
	}
	if len(data) == 0 {
		return []model.Item{}, nil
	}

	var items []model.Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	if items == nil {
		items = []model.Item{}
	}
	return items, nil
}

// save replaces the collection in the slot.
func (s *Store) save(ctx context.Context, items []model.Item) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encoding collection: %w", err)
	}
	if err := s.slot.Write(ctx, data); err != nil {
		return fmt.Errorf("writing collection: %w", err)
	}
	return nil
}

func indexOf(items []model.Item, id string) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}
