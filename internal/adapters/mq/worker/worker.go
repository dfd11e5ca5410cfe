// Package worker drains the notification queue and delivers messages to
// the chat transport.
package worker

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/okian/clanpulse/internal/domain/model"
	"github.com/okian/clanpulse/pkg/logger"
	"github.com/okian/clanpulse/pkg/metrics"
)

// Default worker configuration constants.
const (
	defaultWorkerCount    = 2
	workerShutdownTimeout = 5 * time.Second
	poolShutdownTimeout   = 30 * time.Second
)

// Notification abstracts what workers read off the queue.
// Using the model.Notification type for consistency.
type Notification = model.Notification

// Sender delivers a rendered notification to the chat channel.
type Sender interface {
	Send(ctx context.Context, text string) error
}

// Queue defines how workers receive notifications.
type Queue interface {
	Dequeue(ctx context.Context) <-chan Notification
}

// Worker delivers queued notifications using the provided sender.
type Worker interface {
	// Run starts the worker loop until ctx is canceled.
	Run(ctx context.Context)

	// Shutdown gracefully stops the worker.
	Shutdown(ctx context.Context) error
}

// DeliveryWorker implements Worker for delivering notifications.
type DeliveryWorker struct {
	queue  Queue
	sender Sender
	name   string

	// Shutdown control
	shutdown chan struct{}
	done     chan struct{}

	// Logging
	logger logger.Logger
}

// NewDeliveryWorker creates a new worker with configuration options.
func NewDeliveryWorker(queue Queue, sender Sender, opts ...Option) *DeliveryWorker {
	w := &DeliveryWorker{
		queue:    queue,
		sender:   sender,
		name:     "worker", // default name
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
		logger:   logger.Get().Named("worker"),
	}

	// Apply all options
	for _, opt := range opts {
		opt(w)
	}

	if w.name != "worker" {
		w.logger = w.logger.Named(w.name)
	}

	return w
}

// Run starts the worker loop.
func (w *DeliveryWorker) Run(ctx context.Context) {
	defer func() {
		close(w.done)
	}()

	noteChan := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case n, ok := <-noteChan:
			if !ok {
				// Channel closed, worker should stop
				return
			}

			if err := w.deliver(ctx, n); err != nil {
				w.logger.Error(ctx, "notification delivery failed",
					logger.String("notification_id", n.ID),
					logger.Error(err),
				)
			}
		}
	}
}

// Shutdown gracefully stops the worker.
func (w *DeliveryWorker) Shutdown(ctx context.Context) error {
	close(w.shutdown)

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// deliver sends a single notification. Failures are logged and counted;
// the pipeline never blocks on the chat transport.
func (w *DeliveryWorker) deliver(ctx context.Context, n Notification) error {
	start := time.Now()

	err := w.sender.Send(ctx, n.Text)
	metrics.RecordDeliveryLatency(float64(time.Since(start).Milliseconds()))

	if err != nil {
		metrics.RecordDeliveryError()
		return fmt.Errorf("send notification %s: %w", n.ID, err)
	}

	metrics.RecordDelivery()
	return nil
}

// Pool manages multiple delivery workers.
type Pool struct {
	workers []*DeliveryWorker
	queue   Queue
	sender  Sender

	// Shutdown control
	shutdown chan struct{}

	// Logging
	logger logger.Logger
}

// NewPool creates a new worker pool.
func NewPool(workerCount int, queue Queue, sender Sender) *Pool {
	if workerCount < 1 {
		workerCount = defaultWorkerCount
	}

	pool := &Pool{
		workers:  make([]*DeliveryWorker, workerCount),
		queue:    queue,
		sender:   sender,
		shutdown: make(chan struct{}),
		logger:   logger.Get().Named("worker-pool"),
	}

	for i := 0; i < workerCount; i++ {
		pool.workers[i] = NewDeliveryWorker(
			queue,
			sender,
			WithName("worker-"+strconv.Itoa(i)),
		)
	}

	metrics.UpdateWorkerCount(workerCount)

	return pool
}

// Start starts all workers in the pool.
func (p *Pool) Start(ctx context.Context) {
	for _, worker := range p.workers {
		go worker.Run(ctx)
	}
}

// Stop gracefully stops all workers.
func (p *Pool) Stop() {
	close(p.shutdown)

	for _, worker := range p.workers {
		select {
		case <-worker.done:
			// Worker finished
		case <-time.After(workerShutdownTimeout):
			// Worker timeout
		}
	}
}

// Shutdown gracefully shuts down the entire worker pool.
func (p *Pool) Shutdown(ctx context.Context) error {
	// First close the queue to stop new notifications
	if closer, ok := p.queue.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			p.logger.Error(ctx, "error closing queue", logger.Error(err))
		}
	}

	close(p.shutdown)

	shutdownCtx, cancel := context.WithTimeout(ctx, poolShutdownTimeout)
	defer cancel()

	for i, worker := range p.workers {
		select {
		case <-worker.done:
		case <-shutdownCtx.Done():
			p.logger.Warn(ctx, "worker shutdown timed out", logger.Int("worker_id", i))
		}
	}

	return nil
}
