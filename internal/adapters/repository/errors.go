package repository

import "errors"

// Sentinel kinds for ledger errors.
var (
	ErrPartitionArchived = errors.New("partition archived")
	ErrInvalidLimit      = errors.New("invalid top limit")
)
