package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):.
//  1. defaults (New())
//  2. file (YAML) if CLANPULSE_CONFIG is set
//  3. env (prefix CLANPULSE_)
func Load(ctx context.Context) (*Config, error) {
	// Start with defaults
	base := New()

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("CLANPULSE_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
		}
	}

	// Environment variables: CLANPULSE_ADDR, CLANPULSE_CLAN_TAG, ...
	// Map env keys like CLANPULSE_CLAN_TAG -> clan_tag (flat keys)
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("CLANPULSE_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "clanpulse_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.APIToken == "":
		return fmt.Errorf("%w: api_token is required", ErrInvalidConfig)
	case c.ClanTag == "":
		return fmt.Errorf("%w: clan_tag is required", ErrInvalidConfig)
	case c.DiscordToken == "":
		return fmt.Errorf("%w: discord_token is required", ErrInvalidConfig)
	case c.DiscordChannelID == "":
		return fmt.Errorf("%w: discord_channel_id is required", ErrInvalidConfig)
	case c.PollIntervalSeconds < 1:
		return fmt.Errorf("%w: poll_interval_seconds must be positive", ErrInvalidConfig)
	case c.BoundaryCheckSeconds < 1:
		return fmt.Errorf("%w: boundary_check_seconds must be positive", ErrInvalidConfig)
	case c.TopN < 1:
		return fmt.Errorf("%w: top_n must be positive", ErrInvalidConfig)
	case c.QueueSize < 1:
		return fmt.Errorf("%w: queue_size must be positive", ErrInvalidConfig)
	case c.DeliveryWorkers < 1:
		return fmt.Errorf("%w: delivery_workers must be positive", ErrInvalidConfig)
	}
	return nil
}
