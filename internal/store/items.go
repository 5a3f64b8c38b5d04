package store

import (
	"cmp"
	"context"
	"slices"

	"github.com/erazemk/inventar/internal/model"
)

// Create stores a new item built from fields and returns it with its
// generated id, document number and creation time. Fields are not validated.
func (s *Store) Create(ctx context.Context, fields model.ItemFields) (*model.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	// Keep creation times strictly increasing so document numbers stay
	// unique and the sort key is total even within one millisecond.
	createdAt := s.now().UnixMilli()
	for _, it := range items {
		if it.CreatedAt >= createdAt {
			createdAt = it.CreatedAt + 1
		}
	}

	item := model.Item{
		ID:             s.newID(),
		DocumentNumber: model.DocumentNumber(createdAt),
		ItemFields:     fields,
		CreatedAt:      createdAt,
	}

	if err := s.save(ctx, append(items, item)); err != nil {
		return nil, err
	}
	return &item, nil
}

// Get returns the item with the given id.
func (s *Store) Get(ctx context.Context, id string) (*model.Item, error) {
	items, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	i := indexOf(items, id)
	if i < 0 {
		return nil, ErrNotFound
	}
	return &items[i], nil
}

// List returns the items matching term in the given field, newest first.
// An empty term returns every item; an empty field searches all fields.
func (s *Store) List(ctx context.Context, term string, field model.SearchField) ([]model.Item, error) {
	items, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	matched := items[:0]
	for _, it := range items {
		if it.Matches(term, field) {
			matched = append(matched, it)
		}
	}

	slices.SortStableFunc(matched, func(a, b model.Item) int {
		if c := cmp.Compare(b.CreatedAt, a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return matched, nil
}

// Update merges patch into the item with the given id and returns the
// result. The id, document number and creation time never change.
func (s *Store) Update(ctx context.Context, id string, patch model.ItemPatch) (*model.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	i := indexOf(items, id)
	if i < 0 {
		return nil, ErrNotFound
	}
	items[i] = items[i].Apply(patch)

	if err := s.save(ctx, items); err != nil {
		return nil, err
	}
	updated := items[i]
	return &updated, nil
}

// Stats counts the items and lists those with missing fields, in stored
// order.
func (s *Store) Stats(ctx context.Context) (*model.Stats, error) {
	items, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	stats := model.ComputeStats(items)
	return &stats, nil
}
