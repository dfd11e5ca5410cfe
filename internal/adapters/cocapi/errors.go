package cocapi

import "errors"

var (
	// ErrClanNotFound is returned when the remote API does not know the
	// configured clan tag. Not retried.
	ErrClanNotFound = errors.New("clan not found")

	// ErrRateLimited is returned when the remote API throttles us.
	ErrRateLimited = errors.New("rate limited by remote api")

	// ErrRemoteStatus is returned for any other non-200 response.
	ErrRemoteStatus = errors.New("unexpected remote status")

	// ErrDecode is returned when the response body cannot be decoded.
	ErrDecode = errors.New("decode clan response failed")
)
