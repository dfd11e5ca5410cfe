package model

import "time"

// partitionLayout is the deterministic key format for day partitions.
const partitionLayout = "2006-01-02"

// Zone builds the fixed-offset location used for every day-boundary
// computation. The offset is policy, never derived from the system locale;
// mixing offsets between event timestamps and the rollover trigger is a
// correctness bug, so all callers must share the location built here.
func Zone(offsetMinutes int) *time.Location {
	return time.FixedZone("clanpulse", offsetMinutes*60)
}

// PartitionKey returns the calendar-day key for ts expressed in loc.
func PartitionKey(ts time.Time, loc *time.Location) string {
	return ts.In(loc).Format(partitionLayout)
}
