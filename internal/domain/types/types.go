// Package types contains common types used across the application
package types

// PlayerStats is the API view of a player's current day.
type PlayerStats struct {
	Tag         string `json:"tag"`
	Name        string `json:"name"`
	Partition   string `json:"partition"`
	Trophies    int    `json:"trophies"`
	AttackCount int    `json:"attack_count"`
	DefendCount int    `json:"defend_count"`
	NetGain     int    `json:"net_gain"`
}

// EventDetail is the API view of a single trophy event.
type EventDetail struct {
	EventID   string `json:"event_id"`
	Tag       string `json:"tag"`
	Partition string `json:"partition"`
	Timestamp string `json:"timestamp"`
	Kind      string `json:"kind"`
	Magnitude int    `json:"magnitude"`
}

// TopEntry represents one row of the daily net-gain ranking.
type TopEntry struct {
	Rank    int    `json:"rank"`
	Tag     string `json:"tag"`
	Name    string `json:"name"`
	NetGain int    `json:"net_gain"`
}
