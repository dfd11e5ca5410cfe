// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/okian/clanpulse/internal/domain/types"
)

// TopDependencies defines the interface for ranking queries.
type TopDependencies interface {
	TopPlayers(ctx context.Context, n int) ([]types.TopEntry, error)
	CurrentPartition() string
}

// TopHandler handles daily ranking requests.
type TopHandler struct {
	deps         TopDependencies
	defaultLimit int
	maxLimit     int
}

// NewTopHandler creates a new top handler. defaultLimit is applied when
// the request carries no limit parameter.
func NewTopHandler(deps TopDependencies, defaultLimit, maxLimit int) *TopHandler {
	return &TopHandler{
		deps:         deps,
		defaultLimit: defaultLimit,
		maxLimit:     maxLimit,
	}
}

// topResponse wraps the ranking with the partition it belongs to.
type topResponse struct {
	Partition string           `json:"partition"`
	Entries   []types.TopEntry `json:"entries"`
}

// HandleGetTop handles GET /api/v1/top?limit=N requests.
func (h *TopHandler) HandleGetTop(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	n := h.defaultLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 1 {
			writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
			return
		}
		n = parsed
	}
	if n > h.maxLimit {
		writeError(w, http.StatusBadRequest, "limit_exceeded", ErrBadRequest)
		return
	}
	entries, err := h.deps.TopPlayers(r.Context(), n)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	if entries == nil {
		entries = []types.TopEntry{}
	}
	writeJSON(w, http.StatusOK, topResponse{
		Partition: h.deps.CurrentPartition(),
		Entries:   entries,
	})
}
