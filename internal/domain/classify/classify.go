// Package classify turns roster observations into trophy events by
// diffing against the snapshot store.
package classify

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/okian/clanpulse/internal/domain/model"
	"github.com/okian/clanpulse/internal/domain/snapshot"
	"github.com/okian/clanpulse/pkg/metrics"
)

// Result carries the outcome of classifying one poll tick's batch.
type Result struct {
	// Events holds one TrophyEvent per non-zero delta, in roster order.
	Events []model.TrophyEvent

	// Changed reports whether any delta was detected, so callers can
	// suppress no-op notifications.
	Changed bool
}

// Classifier computes signed deltas for a batch of observations.
type Classifier interface {
	// Classify diffs observations against the snapshot store and updates
	// the snapshots afterwards. All snapshot reads happen before any
	// write, so ordering within a batch never affects the result.
	Classify(ctx context.Context, observations []model.PlayerObservation, partition string, ts time.Time) Result
}

// SnapshotClassifier implements Classifier against a snapshot.Store.
type SnapshotClassifier struct {
	snapshots  snapshot.Store
	newEventID func() string
}

// NewSnapshotClassifier creates a classifier with configuration options.
func NewSnapshotClassifier(snapshots snapshot.Store, opts ...Option) *SnapshotClassifier {
	c := &SnapshotClassifier{
		snapshots:  snapshots,
		newEventID: uuid.NewString,
	}

	// Apply all options
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// observed pairs an observation with its pre-tick snapshot state.
type observed struct {
	obs      model.PlayerObservation
	last     int
	baseline bool // first-ever observation of this tag
}

// Classify implements Classifier.
func (c *SnapshotClassifier) Classify(ctx context.Context, observations []model.PlayerObservation, partition string, ts time.Time) Result {
	// Phase 1: read the pre-tick snapshot for the whole batch.
	batch := make([]observed, 0, len(observations))
	for _, obs := range observations {
		last, ok := c.snapshots.GetLast(ctx, obs.Tag)
		batch = append(batch, observed{obs: obs, last: last, baseline: !ok})
	}

	// Phase 2: classify. The first observation of a tag is a baseline and
	// produces no event; that avoids a spurious large delta when a player
	// enters the tracked set.
	var result Result
	for _, entry := range batch {
		if entry.baseline {
			continue
		}
		delta := entry.obs.Trophies - entry.last
		if delta == 0 {
			continue
		}
		kind := model.KindAttack
		magnitude := delta
		if delta < 0 {
			kind = model.KindDefend
			magnitude = -delta
		}
		result.Events = append(result.Events, model.TrophyEvent{
			EventID:   c.newEventID(),
			Tag:       entry.obs.Tag,
			Name:      entry.obs.Name,
			Partition: partition,
			TS:        ts,
			Kind:      kind,
			Magnitude: magnitude,
		})
		metrics.RecordTrophyEvent(string(kind), magnitude)
	}
	result.Changed = len(result.Events) > 0

	// Phase 3: update every observed tag's snapshot, baselines included.
	for _, entry := range batch {
		c.snapshots.SetLast(ctx, entry.obs.Tag, entry.obs.Trophies)
	}
	metrics.UpdateTrackedPlayers(int(c.snapshots.Size()))

	return result
}
