// Package model contains domain models passed between layers.
package model

import "time"

// EventKind labels the direction of a trophy delta.
type EventKind string

// Event kinds. A positive delta is an attack, a negative one a defend.
const (
	KindAttack EventKind = "attack"
	KindDefend EventKind = "defend"
)

// PlayerObservation is one member row from a clan roster fetch.
// Produced fresh on every poll tick; immutable once produced.
type PlayerObservation struct {
	Tag      string // stable external identifier, e.g. "#2PP0JCCL"
	Name     string // display name as reported by the API
	Trophies int    // current trophy count
}

// TrophyEvent records a single non-zero trophy delta for a player.
// Created exactly once per delta; append-only.
type TrophyEvent struct {
	EventID   string
	Tag       string
	Name      string
	Partition string // day-partition key, YYYY-MM-DD in the configured offset
	TS        time.Time
	Kind      EventKind
	Magnitude int // non-negative
}

// Signed returns the magnitude with the sign implied by the kind.
func (e TrophyEvent) Signed() int {
	if e.Kind == KindDefend {
		return -e.Magnitude
	}
	return e.Magnitude
}

// DailyAggregate is the per-player rollup for one day partition.
// Derived from the event log; at most one row per (tag, partition).
type DailyAggregate struct {
	Tag         string
	Name        string
	Partition   string
	AttackCount int
	DefendCount int
	NetGain     int // sum of attack magnitudes minus sum of defend magnitudes
}

// Apply folds one event into the aggregate. Used both for incremental
// maintenance and for replaying a partition's log.
func (a DailyAggregate) Apply(e TrophyEvent) DailyAggregate {
	a.Tag = e.Tag
	a.Name = e.Name
	a.Partition = e.Partition
	switch e.Kind {
	case KindAttack:
		a.AttackCount++
	case KindDefend:
		a.DefendCount++
	}
	a.NetGain += e.Signed()
	return a
}

// Notification is an outbound chat message emitted by the core.
// Delivery is fire-and-forget; the core never blocks on it.
type Notification struct {
	ID        string
	Text      string
	CreatedAt time.Time
}
