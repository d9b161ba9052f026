// Package dedupe tracks natural keys that have already been emitted.
package dedupe

import (
	"context"
	"sync"
)

// Deduper records seen keys so that only the first occurrence is kept.
type Deduper[K comparable] interface {
	// SeenAndRecord atomically checks if key was seen and records it if not.
	// Returns true if key was already seen, false if it was newly recorded.
	SeenAndRecord(ctx context.Context, key K) bool
}

// inMemoryDeduper implements Deduper with an unbounded map. Every key must
// stay remembered for the whole run, so there is no eviction.
type inMemoryDeduper[K comparable] struct {
	mu   sync.Mutex
	seen map[K]struct{}
}

// NewInMemoryDeduper creates an empty deduper.
func NewInMemoryDeduper[K comparable]() Deduper[K] {
	return &inMemoryDeduper[K]{
		seen: make(map[K]struct{}),
	}
}

func (d *inMemoryDeduper[K]) SeenAndRecord(_ context.Context, key K) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.seen[key]; exists {
		return true
	}
	d.seen[key] = struct{}{}
	return false
}

// Unique returns the items whose key has not been seen before, in their
// input order. The first occurrence of each key wins.
func Unique[T any, K comparable](ctx context.Context, items []T, key func(T) K) []T {
	d := NewInMemoryDeduper[K]()
	out := make([]T, 0, len(items))
	for _, item := range items {
		if d.SeenAndRecord(ctx, key(item)) {
			continue
		}
		out = append(out, item)
	}
	return out
}
