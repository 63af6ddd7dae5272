// Package registry provides the in-memory item registry.
package registry

import (
	"context"
	"fmt"
	"sync"

	"github.com/hammamikhairi/cookbook/internal/domain"
	"github.com/hammamikhairi/cookbook/internal/logger"
)

// Compile-time interface check.
var _ domain.ItemStore = (*MemoryRegistry)(nil)

// MemoryRegistry holds items in memory, keyed by name. Safe for concurrent
// access: inserts are serialized, lookups run in parallel.
type MemoryRegistry struct {
	mu    sync.RWMutex
	items map[string]domain.Item
	order []string
	log   *logger.Logger
}

// NewMemoryRegistry creates an empty registry.
func NewMemoryRegistry(log *logger.Logger) *MemoryRegistry {
	return &MemoryRegistry{
		items: make(map[string]domain.Item),
		log:   log,
	}
}

// Insert validates entry and stores it. Checks run in order: the type must
// be "ingredient" or "recipe", the name must not be empty (ErrInvalidName),
// the name must not be taken by any item, then the variant's own fields are
// validated. Nothing is stored when an error is returned.
func (r *MemoryRegistry) Insert(ctx context.Context, entry domain.Entry) error {
	typ, err := checkType(entry)
	if err != nil {
		return err
	}
	if entry.Name == "" {
		return fmt.Errorf("%w: name must not be empty", domain.ErrInvalidName)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[entry.Name]; ok {
		r.log.Debug("rejecting duplicate name %q", entry.Name)
		return fmt.Errorf("%w: %q", domain.ErrDuplicateName, entry.Name)
	}

	var item domain.Item
	switch typ {
	case domain.TypeIngredient:
		item, err = buildIngredient(entry)
	case domain.TypeRecipe:
		item, err = buildRecipe(entry)
	}
	if err != nil {
		r.log.Debug("rejecting %s %q: %v", typ, entry.Name, err)
		return err
	}

	r.items[entry.Name] = item
	r.order = append(r.order, entry.Name)
	r.log.Debug("stored %s %q", typ, entry.Name)
	return nil
}

// Lookup returns a copy of the item stored under name.
func (r *MemoryRegistry) Lookup(ctx context.Context, name string) (domain.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrNotFound, name)
	}
	return domain.CloneItem(item), nil
}

// List returns copies of all items in insertion order.
func (r *MemoryRegistry) List(ctx context.Context) ([]domain.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Item, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, domain.CloneItem(r.items[name]))
	}
	r.log.Debug("listing items, count=%d", len(out))
	return out, nil
}

// Len returns the number of stored items.
func (r *MemoryRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}
