// Package repository defines the daily ledger store interface and errors.
package repository

// defaultShardCount stripes player locks so writes for different players
// proceed concurrently.
const defaultShardCount = 8

// Option applies a configuration option to the MemStore.
type Option func(*MemStore)

// WithShardCount sets the number of lock stripes.
func WithShardCount(count int) Option {
	return func(s *MemStore) {
		if count > 0 {
			s.shardCount = count
		}
	}
}
