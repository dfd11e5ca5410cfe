// Package queue defines the contract for enqueuing and consuming
// notifications awaiting delivery.
//
// Implementations may use channels or more advanced structures. The
// in-memory bounded queue is the only one needed today.
package queue

import (
	"context"
	"sync"

	"github.com/okian/clanpulse/internal/domain/model"
	"github.com/okian/clanpulse/pkg/metrics"
)

// Default queue configuration constants.
const (
	defaultQueueCapacity = 1024
	defaultBufferSize    = 1024
)

// Notification represents the payload type flowing through the queue.
// Using the model.Notification type for type safety.
type Notification = model.Notification

// Queue provides non-blocking enqueue and channel-based dequeue semantics.
type Queue interface {
	// Enqueue adds a notification to the queue.
	// Returns false if the queue is full and the notification was dropped.
	Enqueue(ctx context.Context, n Notification) bool

	// Dequeue returns a channel that will receive notifications as they
	// become available. The channel is closed when the queue is closed.
	Dequeue(ctx context.Context) <-chan Notification

	// Len returns the current number of queued notifications.
	Len(ctx context.Context) int

	// Close gracefully shuts down the queue.
	// After closing, no new notifications can be enqueued and the
	// dequeue channel will be closed.
	Close() error

	// IsClosed returns true if the queue has been closed.
	IsClosed() bool
}

// InMemoryQueue implements Queue using a buffered channel.
type InMemoryQueue struct {
	notifications chan Notification
	capacity      int
	bufferSize    int
	mu            sync.RWMutex
	closed        bool
}

// NewInMemoryQueue creates a new in-memory queue with configuration options.
func NewInMemoryQueue(opts ...Option) *InMemoryQueue {
	q := &InMemoryQueue{
		capacity:   defaultQueueCapacity,
		bufferSize: defaultBufferSize,
	}

	// Apply all options
	for _, opt := range opts {
		opt(q)
	}

	q.notifications = make(chan Notification, q.bufferSize)

	// Initialize metrics
	metrics.UpdateQueueCapacity(q.capacity)
	metrics.UpdateQueueSize(0)
	metrics.UpdateQueueUtilization(0.0)

	return q
}

// Enqueue adds a notification to the queue. Delivery is fire-and-forget:
// when the queue is full the notification is dropped, not blocked on.
func (q *InMemoryQueue) Enqueue(ctx context.Context, n Notification) bool {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		metrics.RecordQueueEnqueueError()
		return false
	}

	if len(q.notifications) >= q.capacity {
		metrics.RecordQueueEnqueueError()
		return false
	}

	select {
	case q.notifications <- n:
		metrics.RecordQueueEnqueue()
		currentSize := len(q.notifications)
		metrics.UpdateQueueSize(currentSize)
		metrics.UpdateQueueUtilization(float64(currentSize) / float64(q.capacity))
		return true
	case <-ctx.Done():
		metrics.RecordQueueEnqueueError()
		return false
	default:
		metrics.RecordQueueEnqueueError()
		return false
	}
}

// Dequeue returns a channel that will receive notifications as they
// become available.
func (q *InMemoryQueue) Dequeue(ctx context.Context) <-chan Notification {
	// Wrap the channel to track dequeue metrics
	dequeueChan := make(chan Notification)
	go func() {
		defer close(dequeueChan)
		for n := range q.notifications {
			select {
			case dequeueChan <- n:
				metrics.RecordQueueDequeue()
				currentSize := len(q.notifications)
				metrics.UpdateQueueSize(currentSize)
				metrics.UpdateQueueUtilization(float64(currentSize) / float64(q.capacity))
			case <-ctx.Done():
				return
			}
		}
	}()
	return dequeueChan
}

// Len returns the current number of queued notifications.
func (q *InMemoryQueue) Len(ctx context.Context) int {
	size := len(q.notifications)
	metrics.UpdateQueueSize(size)
	metrics.UpdateQueueUtilization(float64(size) / float64(q.capacity))
	return size
}

// Close gracefully shuts down the queue.
func (q *InMemoryQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil // already closed
	}

	close(q.notifications)
	q.closed = true

	return nil
}

// IsClosed returns true if the queue has been closed.
func (q *InMemoryQueue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}
