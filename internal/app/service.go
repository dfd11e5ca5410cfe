// Package service provides the core tracker service that implements
// the dependencies required by the HTTP API and the poll scheduler.
package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	cocapi "github.com/okian/clanpulse/internal/adapters/cocapi"
	notifyqueue "github.com/okian/clanpulse/internal/adapters/mq/queue"
	workerpool "github.com/okian/clanpulse/internal/adapters/mq/worker"
	repository "github.com/okian/clanpulse/internal/adapters/repository"
	"github.com/okian/clanpulse/internal/domain/classify"
	"github.com/okian/clanpulse/internal/domain/format"
	"github.com/okian/clanpulse/internal/domain/model"
	"github.com/okian/clanpulse/internal/domain/rollover"
	"github.com/okian/clanpulse/internal/domain/snapshot"
	"github.com/okian/clanpulse/internal/domain/types"
	"github.com/okian/clanpulse/pkg/logger"
	"github.com/okian/clanpulse/pkg/metrics"
)

// Default service configuration constants.
const (
	defaultQueueSize        = 1024
	defaultWorkerCount      = 2
	defaultShardCount       = 8
	defaultDayOffsetMinutes = -300 // UTC-5
)

// Service wires the poll pipeline: fetch roster, classify deltas,
// record the day's ledger, and hand notifications to the delivery
// queue. One service tracks one clan.
type Service struct {
	mu sync.RWMutex

	// Core components
	fetcher    cocapi.Client
	sender     workerpool.Sender
	snapshots  snapshot.Store
	classifier classify.Classifier
	ledger     repository.Store
	boundary   *rollover.Controller
	queue      notifyqueue.Queue
	workerPool *workerpool.Pool

	// tickMu serializes poll ticks and boundary checks. A tick that
	// finds it held is skipped, never queued; a boundary check waits.
	tickMu sync.Mutex

	// names remembers the latest display name per tag for API replies.
	names map[string]string

	// Configuration
	queueSize        int
	workerCount      int
	shardCount       int
	dayOffsetMinutes int
	now              func() time.Time

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithFetcher sets the roster source. Required.
func WithFetcher(fetcher cocapi.Client) Option {
	return func(s *Service) {
		if fetcher != nil {
			s.fetcher = fetcher
		}
	}
}

// WithSender sets the chat transport notifications are delivered to. Required.
func WithSender(sender workerpool.Sender) Option {
	return func(s *Service) {
		if sender != nil {
			s.sender = sender
		}
	}
}

// WithQueueSize sets the capacity of the notification queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithWorkerCount sets the number of delivery workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithShardCount sets the ledger shard count.
func WithShardCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.shardCount = count
		}
	}
}

// WithDayOffset sets the fixed UTC offset, in minutes, that defines
// where the tracking day rolls over.
func WithDayOffset(minutes int) Option {
	return func(s *Service) {
		s.dayOffsetMinutes = minutes
	}
}

// WithClock overrides the wall-clock source for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		queueSize:        defaultQueueSize,
		workerCount:      defaultWorkerCount,
		shardCount:       defaultShardCount,
		dayOffsetMinutes: defaultDayOffsetMinutes,
		names:            make(map[string]string),
		now:              time.Now,
		logger:           nil, // Will be replaced when service starts
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.fetcher == nil {
		return ErrNoFetcher
	}
	if s.sender == nil {
		return ErrNoSender
	}

	// Initialize logger if not already set
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting tracker service...")

	// Initialize components
	s.snapshots = snapshot.NewInMemoryStore()
	s.classifier = classify.NewSnapshotClassifier(s.snapshots)
	s.ledger = repository.NewMemStore(repository.WithShardCount(s.shardCount))
	s.boundary = rollover.New(model.Zone(s.dayOffsetMinutes), rollover.WithClock(s.now))
	s.queue = notifyqueue.NewInMemoryQueue(
		notifyqueue.WithCapacity(s.queueSize),
		notifyqueue.WithBufferSize(s.queueSize),
	)

	s.workerPool = workerpool.NewPool(s.workerCount, s.queue, s.sender)
	s.workerPool.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "tracker service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.Int("dayOffsetMinutes", s.dayOffsetMinutes),
		logger.String("partition", s.boundary.Current()),
	)

	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping tracker service...")

	// Close queue first so workers drain and exit
	if q, ok := s.queue.(*notifyqueue.InMemoryQueue); ok {
		_ = q.Close()
	}

	if s.workerPool != nil {
		s.workerPool.Stop()
	}

	s.started = false
	s.logger.Info(context.Background(), "tracker service stopped")
}

// OnPollTick runs one poll cycle: fetch the roster, diff against the
// last snapshots, record events, and enqueue notifications. A tick that
// overlaps a running tick or boundary check is skipped outright.
func (s *Service) OnPollTick(ctx context.Context) error {
	if !s.tickMu.TryLock() {
		metrics.RecordTickSkipped()
		s.logger.Warn(ctx, "previous tick still running, skipping")
		return nil
	}
	defer s.tickMu.Unlock()

	started := s.now()

	observations, err := s.fetcher.FetchRankedPlayers(ctx)
	if err != nil {
		// A failed fetch mutates nothing; the next tick diffs against
		// the same snapshots.
		metrics.RecordTickFailure()
		s.logger.Error(ctx, "roster fetch failed, tick abandoned", logger.Error(err))
		return nil
	}

	partition := s.boundary.Current()
	result := s.classifier.Classify(ctx, observations, partition, s.now())

	s.rememberNames(observations)

	for i := range result.Events {
		event := result.Events[i]
		agg, err := s.ledger.Record(ctx, event)
		if err != nil {
			s.logger.Error(ctx, "ledger record failed",
				logger.String("tag", event.Tag),
				logger.String("partition", event.Partition),
				logger.Error(err))
			continue
		}

		details, err := s.ledger.Events(ctx, event.Tag, partition)
		if err != nil {
			details = nil
		}

		current, _ := s.snapshots.GetLast(ctx, event.Tag)
		text := format.Event(event, agg, current, details)
		s.enqueue(ctx, text)
	}

	if !result.Changed {
		s.logger.Debug(ctx, "no trophy changes this tick",
			logger.Int("players", len(observations)))
	}

	metrics.RecordTick()
	metrics.RecordTickDuration(float64(time.Since(started).Milliseconds()))
	return nil
}

// OnDayBoundaryCheck advances the day partition when the configured
// midnight has passed. It waits for any in-flight tick, so a rollover
// never interleaves with event recording.
func (s *Service) OnDayBoundaryCheck(ctx context.Context) error {
	s.tickMu.Lock()
	defer s.tickMu.Unlock()

	trans := s.boundary.Check(ctx)
	if !trans.Crossed {
		return nil
	}

	s.logger.Info(ctx, "day boundary crossed",
		logger.String("previous", trans.Previous),
		logger.String("current", trans.Current))

	archived, err := s.ledger.Archive(ctx, trans.Previous)
	if err != nil {
		s.logger.Error(ctx, "archive failed",
			logger.String("partition", trans.Previous),
			logger.Error(err))
	} else {
		s.logger.Info(ctx, "partition archived",
			logger.String("partition", trans.Previous),
			logger.Int("events", archived))
	}

	s.enqueue(ctx, format.NewDay(trans.Current))
	return nil
}

func (s *Service) enqueue(ctx context.Context, text string) {
	n := model.Notification{
		ID:        uuid.NewString(),
		Text:      text,
		CreatedAt: s.now(),
	}
	if !s.queue.Enqueue(ctx, n) {
		s.logger.Warn(ctx, "notification dropped, queue full",
			logger.String("notification_id", n.ID))
	}
}

func (s *Service) rememberNames(observations []model.PlayerObservation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, obs := range observations {
		s.names[obs.Tag] = obs.Name
	}
}

func (s *Service) nameOf(tag string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.names[tag]
}

// PlayerStatus returns the current-day view of one player. A tag that
// has never appeared on a poll tick yields ErrUnknownPlayer.
func (s *Service) PlayerStatus(ctx context.Context, tag string) (types.PlayerStats, error) {
	trophies, ok := s.snapshots.GetLast(ctx, tag)
	if !ok {
		return types.PlayerStats{}, ErrUnknownPlayer
	}

	partition := s.boundary.Current()
	agg, err := s.ledger.Aggregate(ctx, tag, partition)
	if err != nil {
		return types.PlayerStats{}, err
	}

	name := agg.Name
	if name == "" {
		name = s.nameOf(tag)
	}

	return types.PlayerStats{
		Tag:         tag,
		Name:        name,
		Partition:   partition,
		Trophies:    trophies,
		AttackCount: agg.AttackCount,
		DefendCount: agg.DefendCount,
		NetGain:     agg.NetGain,
	}, nil
}

// PlayerEvents returns the current-day event log of one player in
// recording order.
func (s *Service) PlayerEvents(ctx context.Context, tag string) ([]types.EventDetail, error) {
	if _, ok := s.snapshots.GetLast(ctx, tag); !ok {
		return nil, ErrUnknownPlayer
	}

	partition := s.boundary.Current()
	events, err := s.ledger.Events(ctx, tag, partition)
	if err != nil {
		return nil, err
	}

	details := make([]types.EventDetail, len(events))
	for i, ev := range events {
		details[i] = types.EventDetail{
			EventID:   ev.EventID,
			Tag:       ev.Tag,
			Partition: ev.Partition,
			Timestamp: ev.TS.UTC().Format(time.RFC3339),
			Kind:      string(ev.Kind),
			Magnitude: ev.Magnitude,
		}
	}
	return details, nil
}

// TopPlayers returns the top n players of the current day by net gain.
func (s *Service) TopPlayers(ctx context.Context, n int) ([]types.TopEntry, error) {
	partition := s.boundary.Current()
	aggs, err := s.ledger.TopNetGain(ctx, partition, n)
	if err != nil {
		return nil, err
	}

	entries := make([]types.TopEntry, len(aggs))
	for i, agg := range aggs {
		name := agg.Name
		if name == "" {
			name = s.nameOf(agg.Tag)
		}
		entries[i] = types.TopEntry{
			Rank:    i + 1,
			Tag:     agg.Tag,
			Name:    name,
			NetGain: agg.NetGain,
		}
	}
	return entries, nil
}

// CurrentPartition returns the active day partition key.
func (s *Service) CurrentPartition() string {
	return s.boundary.Current()
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":     s.started,
		"workerCount": s.workerCount,
		"queueSize":   s.queueSize,
	}

	if s.started {
		queueLen := s.queue.Len(ctx)
		partition := s.boundary.Current()

		stats["queueLength"] = queueLen
		stats["partition"] = partition
		stats["trackedPlayers"] = s.snapshots.Size()
		stats["partitionEvents"] = s.ledger.Count(ctx, partition)

		metrics.UpdateQueueSize(queueLen)
		metrics.UpdateLedgerEvents(s.ledger.Count(ctx, partition))
	}

	return stats
}
