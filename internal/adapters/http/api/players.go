// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/okian/clanpulse/internal/domain/types"
)

// PlayerDependencies defines the interface for player lookups.
type PlayerDependencies interface {
	PlayerStatus(ctx context.Context, tag string) (types.PlayerStats, error)
	PlayerEvents(ctx context.Context, tag string) ([]types.EventDetail, error)
}

// PlayerHandler handles per-player requests.
type PlayerHandler struct {
	deps PlayerDependencies
}

// NewPlayerHandler creates a new player handler.
func NewPlayerHandler(deps PlayerDependencies) *PlayerHandler {
	return &PlayerHandler{deps: deps}
}

// HandlePlayer handles GET /api/v1/players/{tag}/stats and
// GET /api/v1/players/{tag}/events requests.
func (h *PlayerHandler) HandlePlayer(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	// Extract path parameters after /api/v1/players/
	path := strings.TrimPrefix(r.URL.Path, "/api/v1/players/")
	tag, op, found := strings.Cut(path, "/")
	if !found || tag == "" {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}

	switch op {
	case "stats":
		h.handleStats(w, r, tag)
	case "events":
		h.handleEvents(w, r, tag)
	default:
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
	}
}

func (h *PlayerHandler) handleStats(w http.ResponseWriter, r *http.Request, tag string) {
	stats, err := h.deps.PlayerStatus(r.Context(), tag)
	if err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *PlayerHandler) handleEvents(w http.ResponseWriter, r *http.Request, tag string) {
	events, err := h.deps.PlayerEvents(r.Context(), tag)
	if err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	if events == nil {
		events = []types.EventDetail{}
	}
	writeJSON(w, http.StatusOK, events)
}
