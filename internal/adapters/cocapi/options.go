package cocapi

import (
	"net/http"
	"time"
)

const (
	defaultTopN          = 25
	defaultAttempts      = 3
	defaultRetryInterval = 500 * time.Millisecond
	defaultTimeout       = 10 * time.Second
)

// Option applies a configuration option to the HTTPClient.
type Option func(*HTTPClient)

// WithHTTPClient overrides the underlying HTTP client. Tests use this
// together with httptest servers.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTopN sets how many top-ranked members a fetch returns.
func WithTopN(n int) Option {
	return func(c *HTTPClient) {
		if n > 0 {
			c.topN = n
		}
	}
}

// WithAttempts sets how many times a failed fetch is attempted before
// the error is surfaced.
func WithAttempts(n uint) Option {
	return func(c *HTTPClient) {
		if n > 0 {
			c.attempts = n
		}
	}
}

// WithRetryInterval sets the base delay between retry attempts.
func WithRetryInterval(d time.Duration) Option {
	return func(c *HTTPClient) {
		if d > 0 {
			c.retryInterval = d
		}
	}
}
