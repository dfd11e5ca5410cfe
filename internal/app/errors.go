package service

import "errors"

// Sentinel errors for the tracker service.
var (
	// ErrUnknownPlayer is returned when a tag has never been observed on
	// any poll tick. Distinct from a quiet day, which yields a
	// zero-valued aggregate.
	ErrUnknownPlayer = errors.New("player never observed")

	// ErrNoFetcher is returned when the service starts without a roster source.
	ErrNoFetcher = errors.New("no roster fetcher configured")

	// ErrNoSender is returned when the service starts without a chat transport.
	ErrNoSender = errors.New("no chat sender configured")
)
