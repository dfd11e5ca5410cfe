package chat

import "errors"

var (
	// ErrSessionClosed is returned when sending through a closed session.
	ErrSessionClosed = errors.New("chat session closed")
)
