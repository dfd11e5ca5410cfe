package repository

import (
	"context"
	"hash/fnv"
	"sort"
	"sync"

	"github.com/okian/clanpulse/internal/domain/model"
)

// In-memory, shard-striped Store implementation.
//
// Writes are serialized per player: the shard for a tag is chosen by
// hashing the tag, so concurrent Record calls for different players
// usually take different locks and never interfere with each other's
// aggregates. The archived-set lock is held shared for the whole of
// Record, which makes Archive mutually exclusive with in-flight writes
// to the partition being finalized.

// playerDay holds one (tag, partition) row: the event log in insertion
// order plus the incrementally maintained aggregate.
type playerDay struct {
	events []model.TrophyEvent
	agg    model.DailyAggregate
}

// shard owns a slice of the (tag, partition) key space.
type shard struct {
	mu   sync.Mutex
	days map[string]*playerDay
}

// MemStore implements Store in memory.
type MemStore struct {
	shardCount int
	shards     []*shard

	archivedMu sync.RWMutex
	archived   map[string]struct{}
}

// NewMemStore creates a new in-memory ledger store with configuration options.
func NewMemStore(opts ...Option) *MemStore {
	s := &MemStore{
		shardCount: defaultShardCount,
		archived:   make(map[string]struct{}),
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	s.shards = make([]*shard, s.shardCount)
	for i := range s.shards {
		s.shards[i] = &shard{days: make(map[string]*playerDay)}
	}

	return s
}

// dayKey builds the map key for a (tag, partition) row. Tags never
// contain '|'; partition keys are YYYY-MM-DD.
func dayKey(tag, partition string) string {
	return tag + "|" + partition
}

// shardFor picks the lock stripe for a tag.
func (s *MemStore) shardFor(tag string) *shard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(tag))
	return s.shards[h.Sum32()%uint32(s.shardCount)]
}

// Record implements Store.
func (s *MemStore) Record(ctx context.Context, event model.TrophyEvent) (model.DailyAggregate, error) {
	// Shared archived lock for the whole write: Archive takes it
	// exclusively, so a rollover cannot land between the check and the
	// append.
	s.archivedMu.RLock()
	defer s.archivedMu.RUnlock()

	if _, done := s.archived[event.Partition]; done {
		return model.DailyAggregate{}, ErrPartitionArchived
	}

	sh := s.shardFor(event.Tag)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	key := dayKey(event.Tag, event.Partition)
	day, ok := sh.days[key]
	if !ok {
		day = &playerDay{}
		sh.days[key] = day
	}
	day.events = append(day.events, event)
	day.agg = day.agg.Apply(event)

	return day.agg, nil
}

// Aggregate implements Store.
func (s *MemStore) Aggregate(ctx context.Context, tag, partition string) (model.DailyAggregate, error) {
	sh := s.shardFor(tag)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	if day, ok := sh.days[dayKey(tag, partition)]; ok {
		return day.agg, nil
	}
	// Absence is "observed but no events yet", not a fault.
	return model.DailyAggregate{Tag: tag, Partition: partition}, nil
}

// Events implements Store.
func (s *MemStore) Events(ctx context.Context, tag, partition string) ([]model.TrophyEvent, error) {
	sh := s.shardFor(tag)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	day, ok := sh.days[dayKey(tag, partition)]
	if !ok {
		return nil, nil
	}
	out := make([]model.TrophyEvent, len(day.events))
	copy(out, day.events)
	return out, nil
}

// TopNetGain implements Store.
func (s *MemStore) TopNetGain(ctx context.Context, partition string, n int) ([]model.DailyAggregate, error) {
	if n <= 0 {
		return nil, ErrInvalidLimit
	}

	var aggs []model.DailyAggregate
	for _, sh := range s.shards {
		sh.mu.Lock()
		for _, day := range sh.days {
			if day.agg.Partition == partition {
				aggs = append(aggs, day.agg)
			}
		}
		sh.mu.Unlock()
	}

	sort.Slice(aggs, func(i, j int) bool {
		if aggs[i].NetGain != aggs[j].NetGain {
			return aggs[i].NetGain > aggs[j].NetGain
		}
		return aggs[i].Tag < aggs[j].Tag
	})
	if len(aggs) > n {
		aggs = aggs[:n]
	}
	return aggs, nil
}

// Archive implements Store.
func (s *MemStore) Archive(ctx context.Context, partition string) (int, error) {
	s.archivedMu.Lock()
	defer s.archivedMu.Unlock()

	count := s.countLocked(partition)
	if _, done := s.archived[partition]; done {
		return count, nil
	}
	s.archived[partition] = struct{}{}
	return count, nil
}

// Count implements Store.
func (s *MemStore) Count(ctx context.Context, partition string) int {
	s.archivedMu.RLock()
	defer s.archivedMu.RUnlock()
	return s.countLocked(partition)
}

func (s *MemStore) countLocked(partition string) int {
	total := 0
	for _, sh := range s.shards {
		sh.mu.Lock()
		for _, day := range sh.days {
			if day.agg.Partition == partition {
				total += len(day.events)
			}
		}
		sh.mu.Unlock()
	}
	return total
}
