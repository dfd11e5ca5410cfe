// Package repository defines the daily ledger store interface and errors.
package repository

import (
	"context"

	"github.com/okian/clanpulse/internal/domain/model"
)

// Store is the daily ledger: an append-only trophy-event log plus the
// derived per-player daily aggregate, both keyed by (tag, partition).
type Store interface {
	// Record appends the event to its partition's log and atomically
	// folds it into the player's aggregate for that partition.
	// Returns the updated aggregate.
	// Returns ErrPartitionArchived if the partition has been finalized.
	Record(ctx context.Context, event model.TrophyEvent) (model.DailyAggregate, error)

	// Aggregate returns the daily aggregate for (tag, partition).
	// Absence is not an error: a zero-valued aggregate is returned for a
	// player with no recorded events.
	Aggregate(ctx context.Context, tag, partition string) (model.DailyAggregate, error)

	// Events returns the player's events for the partition in insertion
	// order, for detail rendering. Empty for unknown players.
	Events(ctx context.Context, tag, partition string) ([]model.TrophyEvent, error)

	// TopNetGain returns up to n aggregates for the partition ordered by
	// net gain descending, tags ascending on ties.
	TopNetGain(ctx context.Context, partition string, n int) ([]model.DailyAggregate, error)

	// Archive finalizes a partition: subsequent Record calls targeting it
	// fail with ErrPartitionArchived while reads keep working. Archiving
	// the same partition twice is a no-op. Returns the number of events
	// held by the partition.
	Archive(ctx context.Context, partition string) (int, error)

	// Count returns the number of events recorded for the partition.
	Count(ctx context.Context, partition string) int
}
