// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() initializer to build a Config with defaults.
// - External errors must be wrapped via this package's error helpers.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// APIBaseURL is the clan API root, without a trailing slash.
	APIBaseURL string `koanf:"api_base_url"`

	// APIToken is the bearer token for the clan API. Required.
	APIToken string `koanf:"api_token"`

	// ClanTag identifies the tracked clan, including the leading '#'. Required.
	ClanTag string `koanf:"clan_tag"`

	// TopN bounds how many ranked members each poll observes.
	TopN int `koanf:"top_n"`

	// PollIntervalSeconds sets the cadence of roster polls.
	PollIntervalSeconds int `koanf:"poll_interval_seconds"`

	// BoundaryCheckSeconds sets the cadence of day-boundary checks.
	BoundaryCheckSeconds int `koanf:"boundary_check_seconds"`

	// DayOffsetMinutes fixes the UTC offset, in minutes, whose midnight
	// rolls the tracking day over. Negative values are west of UTC.
	DayOffsetMinutes int `koanf:"day_offset_minutes"`

	// DiscordToken authenticates the chat bot. Required.
	DiscordToken string `koanf:"discord_token"`

	// DiscordChannelID is the channel notifications are posted to. Required.
	DiscordChannelID string `koanf:"discord_channel_id"`

	// QueueSize bounds the in-memory notification queue.
	QueueSize int `koanf:"queue_size"`

	// DeliveryWorkers sets the number of delivery workers.
	DeliveryWorkers int `koanf:"delivery_workers"`

	// ShardCount configures the number of shards in the daily ledger.
	ShardCount int `koanf:"shard_count"`

	// FetchAttempts bounds retries of a failed roster fetch.
	FetchAttempts int `koanf:"fetch_attempts"`

	// MaxTopLimit caps GET /api/v1/top?limit.
	MaxTopLimit int `koanf:"max_top_limit"`
}

// New creates a Config with defaults.
func New() *Config {
	c := &Config{
		LogLevel:             "info",
		Addr:                 ":9080",
		APIBaseURL:           "https://api.clashofclans.com/v1",
		TopN:                 25,
		PollIntervalSeconds:  60,
		BoundaryCheckSeconds: 30,
		DayOffsetMinutes:     -300,
		QueueSize:            1024,
		DeliveryWorkers:      2,
		ShardCount:           8,
		FetchAttempts:        3,
		MaxTopLimit:          100,
	}
	return c
}
