package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/claimsdesk/claims-service/internal/types"
)

// FilterFunc reports whether an item belongs in a result set
type FilterFunc[T any] func(item *T) bool

// LessFunc orders a result set
type LessFunc[T any] func(a, b *T) bool

// Table is a generic keyed collection. Items are stored by value so callers
// never share memory with the table.
type Table[T any] struct {
	mu    sync.RWMutex
	items map[string]T
}

func NewTable[T any]() *Table[T] {
	return &Table[T]{items: make(map[string]T)}
}

// Get returns a copy of the item
func (t *Table[T]) Get(id string) (*T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	item, ok := t.items[id]
	if !ok {
		return nil, false
	}
	return &item, true
}

// Find returns the first item accepted by fn
func (t *Table[T]) Find(fn FilterFunc[T]) (*T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for _, item := range t.items {
		if fn(&item) {
			found := item
			return &found, true
		}
	}
	return nil, false
}

// List filters, sorts and pages the table
func (t *Table[T]) List(fn FilterFunc[T], less LessFunc[T], page *types.QueryFilter) []*T {
	t.mu.RLock()
	result := make([]*T, 0, len(t.items))
	for _, item := range t.items {
		if fn == nil || fn(&item) {
			found := item
			result = append(result, &found)
		}
	}
	t.mu.RUnlock()

	if less != nil {
		sort.SliceStable(result, func(i, j int) bool {
			return less(result[i], result[j])
		})
	}

	start := page.GetOffset()
	if start >= len(result) {
		return []*T{}
	}
	end := len(result)
	if !page.IsUnlimited() && start+page.GetLimit() < end {
		end = start + page.GetLimit()
	}
	return result[start:end]
}

// Count returns the number of items accepted by fn
func (t *Table[T]) Count(fn FilterFunc[T]) int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	count := 0
	for _, item := range t.items {
		if fn == nil || fn(&item) {
			count++
		}
	}
	return count
}

// Put inserts or replaces an item. Inside a transaction the previous state is
// recorded so a rollback can restore it.
func (t *Table[T]) Put(ctx context.Context, id string, item T) {
	t.mu.Lock()
	prev, existed := t.items[id]
	t.items[id] = item
	t.mu.Unlock()

	recordUndo(ctx, func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		if existed {
			t.items[id] = prev
		} else {
			delete(t.items, id)
		}
	})
}

// Remove deletes an item, recording an undo step inside a transaction
func (t *Table[T]) Remove(ctx context.Context, id string) bool {
	t.mu.Lock()
	prev, existed := t.items[id]
	if existed {
		delete(t.items, id)
	}
	t.mu.Unlock()

	if existed {
		recordUndo(ctx, func() {
			t.mu.Lock()
			defer t.mu.Unlock()
			t.items[id] = prev
		})
	}
	return existed
}

// Len returns the number of stored items, deleted or not
func (t *Table[T]) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.items)
}

// Clear removes all items
func (t *Table[T]) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.items = make(map[string]T)
}
