// Package rollover owns the day-boundary state machine.
package rollover

import (
	"context"
	"sync"
	"time"

	"github.com/okian/clanpulse/internal/domain/model"
	"github.com/okian/clanpulse/pkg/metrics"
)

// Transition describes the outcome of one boundary check.
type Transition struct {
	Previous string // partition that was active before the check
	Current  string // partition active after the check
	Crossed  bool   // true when a new day started
}

// Controller tracks the active day partition in a single fixed-offset
// location. It is the only writer of the current-partition pointer;
// holding its mutex through the check makes a rollover mutually
// exclusive with concurrent checks.
//
// A boundary crossing is detected by comparing the remembered partition
// with the one computed from the clock, so firing the check any number
// of times within the same day transitions at most once.
type Controller struct {
	mu      sync.Mutex
	loc     *time.Location
	current string
	now     func() time.Time
}

// New creates a controller anchored to the given fixed-offset location.
// The active partition starts at the current calendar day.
func New(loc *time.Location, opts ...Option) *Controller {
	c := &Controller{
		loc: loc,
		now: time.Now,
	}

	// Apply all options
	for _, opt := range opts {
		opt(c)
	}

	c.current = model.PartitionKey(c.now(), c.loc)
	metrics.UpdatePartitionStart(c.now().Unix())
	return c
}

// Current returns the active partition key.
func (c *Controller) Current() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Check compares wall clock against the remembered partition and
// advances it when a boundary has been crossed. Idempotent within a
// single calendar day.
func (c *Controller) Check(ctx context.Context) Transition {
	c.mu.Lock()
	defer c.mu.Unlock()

	computed := model.PartitionKey(c.now(), c.loc)
	if computed == c.current {
		return Transition{Previous: c.current, Current: c.current}
	}

	previous := c.current
	c.current = computed
	metrics.RecordRollover()
	metrics.UpdatePartitionStart(c.now().Unix())
	return Transition{Previous: previous, Current: computed, Crossed: true}
}
