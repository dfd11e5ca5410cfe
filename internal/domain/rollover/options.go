// Package rollover owns the day-boundary state machine.
package rollover

import "time"

// Option applies a configuration option to the Controller.
type Option func(*Controller)

// WithClock overrides the wall-clock source. Tests use this to step
// across day boundaries deterministically.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		if now != nil {
			c.now = now
		}
	}
}
