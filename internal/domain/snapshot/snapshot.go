// Package snapshot defines the last-observed score store used for diffing.
package snapshot

import (
	"context"
	"sync"
	"sync/atomic"
)

// Store holds the last-observed trophy count per player tag.
// There is no eviction: entries for players who drop out of the ranked
// roster simply stop updating.
type Store interface {
	// GetLast returns the last-observed score for tag.
	// The second return is false if the tag has never been observed.
	GetLast(ctx context.Context, tag string) (int, bool)

	// SetLast records the new last-observed score for tag.
	SetLast(ctx context.Context, tag string, trophies int)

	// Size returns the number of tracked players.
	Size() int64
}

// inMemoryStore implements Store with a mutex-guarded map.
type inMemoryStore struct {
	mu              sync.RWMutex
	last            map[string]int
	initialCapacity int
	size            atomic.Int64
}

// NewInMemoryStore creates a new in-memory snapshot store.
func NewInMemoryStore(opts ...Option) Store {
	s := &inMemoryStore{
		initialCapacity: defaultInitialCapacity,
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	s.last = make(map[string]int, s.initialCapacity)
	return s
}

func (s *inMemoryStore) GetLast(ctx context.Context, tag string) (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	trophies, ok := s.last[tag]
	return trophies, ok
}

func (s *inMemoryStore) SetLast(ctx context.Context, tag string, trophies int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.last[tag]; !ok {
		s.size.Add(1)
	}
	s.last[tag] = trophies
}

func (s *inMemoryStore) Size() int64 {
	return s.size.Load()
}
