package config

import (
	"errors"
)

// Sentinel errors for configuration loading and validation. Callers
// distinguish a broken source (file, env) from a config that loaded but
// fails the startup checks via errors.Is.
var (
	ErrInvalidConfig = errors.New("invalid config")
	ErrLoadConfig    = errors.New("load config failed")
)
