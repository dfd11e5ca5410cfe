package simulate

import "errors"

var (
	// ErrVerification is returned when tracked state disagrees with the
	// synthetic walk's ground truth.
	ErrVerification = errors.New("simulation verification failed")
)
