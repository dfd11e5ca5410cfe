// Package snapshot defines the last-observed score store used for diffing.
package snapshot

// defaultInitialCapacity sizes the map for a typical clan roster.
const defaultInitialCapacity = 50

// Option applies a configuration option to the in-memory store.
type Option func(*inMemoryStore)

// WithInitialCapacity pre-sizes the underlying map.
func WithInitialCapacity(capacity int) Option {
	return func(s *inMemoryStore) {
		if capacity > 0 {
			s.initialCapacity = capacity
		}
	}
}
