// Package simulate drives the full tracking pipeline with a synthetic
// clan roster, replacing the remote API and the chat transport with
// local stand-ins.
package simulate

import "time"

// Config controls a simulation run.
type Config struct {
	// Players is the synthetic clan size.
	Players int

	// Ticks is how many poll cycles to run after the baseline tick.
	Ticks int

	// Seed makes the random walk reproducible.
	Seed int64

	// TickDelay is an optional pause between poll cycles.
	TickDelay time.Duration

	// Verbose enables debug logging.
	Verbose bool
}

// Stats captures the outcome of a run.
type Stats struct {
	StartTime         time.Time
	EndTime           time.Time
	Duration          time.Duration
	TicksRun          int
	EventsExpected    int
	NotificationsSent int
}
