// Package cocapi fetches the ranked clan roster from the remote clan
// API over HTTP with bearer-token auth and bounded retries.
package cocapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	retry "github.com/avast/retry-go/v4"

	"github.com/okian/clanpulse/internal/domain/model"
	"github.com/okian/clanpulse/pkg/logger"
	"github.com/okian/clanpulse/pkg/metrics"
)

// Client fetches the current ranked roster of the configured clan.
type Client interface {
	// FetchRankedPlayers returns the clan's members sorted by trophies
	// descending, truncated to the configured roster size.
	FetchRankedPlayers(ctx context.Context) ([]model.PlayerObservation, error)
}

// HTTPClient implements Client against the real clan API.
type HTTPClient struct {
	baseURL       string
	token         string
	clanTag       string
	topN          int
	attempts      uint
	retryInterval time.Duration
	httpClient    *http.Client
	log           logger.Logger
}

// New creates an HTTP-backed clan API client.
func New(baseURL, token, clanTag string, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL:       baseURL,
		token:         token,
		clanTag:       clanTag,
		topN:          defaultTopN,
		attempts:      defaultAttempts,
		retryInterval: defaultRetryInterval,
		httpClient:    &http.Client{Timeout: defaultTimeout},
		log:           logger.Named("cocapi"),
	}

	// Apply all options
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// FetchRankedPlayers fetches the clan, drops malformed members, sorts by
// trophies descending and returns the top slice. Transient failures are
// retried with backoff; a missing clan is surfaced immediately.
func (c *HTTPClient) FetchRankedPlayers(ctx context.Context) ([]model.PlayerObservation, error) {
	started := time.Now()

	observations, err := retry.DoWithData(
		func() ([]model.PlayerObservation, error) { return c.fetchOnce(ctx) },
		retry.Context(ctx),
		retry.Attempts(c.attempts),
		retry.Delay(c.retryInterval),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			c.log.Warn(ctx, "clan fetch failed, retrying",
				logger.Int("attempt", int(n)+1),
				logger.Int("max_attempts", int(c.attempts)),
				logger.Error(err))
		}),
	)
	if err != nil {
		metrics.RecordFetchFailure()
		return nil, err
	}

	metrics.RecordFetchLatency(float64(time.Since(started).Milliseconds()))
	return observations, nil
}

func (c *HTTPClient) fetchOnce(ctx context.Context) ([]model.PlayerObservation, error) {
	endpoint := fmt.Sprintf("%s/clans/%s", c.baseURL, url.PathEscape(c.clanTag))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build clan request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("clan request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, retry.Unrecoverable(fmt.Errorf("%w: %s", ErrClanNotFound, c.clanTag))
	case http.StatusTooManyRequests:
		return nil, ErrRateLimited
	default:
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: %d", ErrRemoteStatus, resp.StatusCode)
	}

	var clan clanResponse
	if err := json.NewDecoder(resp.Body).Decode(&clan); err != nil {
		return nil, retry.Unrecoverable(fmt.Errorf("%w: %v", ErrDecode, err))
	}

	observations := make([]model.PlayerObservation, 0, len(clan.MemberList))
	for _, m := range clan.MemberList {
		if m.Tag == "" || m.Name == "" || m.Trophies == nil {
			metrics.RecordMemberSkipped()
			c.log.Debug(ctx, "skipping malformed clan member",
				logger.String("tag", m.Tag),
				logger.String("name", m.Name))
			continue
		}
		observations = append(observations, model.PlayerObservation{
			Tag:      m.Tag,
			Name:     m.Name,
			Trophies: *m.Trophies,
		})
	}

	sort.SliceStable(observations, func(i, j int) bool {
		return observations[i].Trophies > observations[j].Trophies
	})
	if len(observations) > c.topN {
		observations = observations[:c.topN]
	}
	return observations, nil
}
