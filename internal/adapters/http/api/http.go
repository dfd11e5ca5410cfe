// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/okian/clanpulse/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// PlayerStatus returns the current-day view of one player.
	PlayerStatus(ctx context.Context, tag string) (types.PlayerStats, error)

	// PlayerEvents returns the current-day event log of one player.
	PlayerEvents(ctx context.Context, tag string) ([]types.EventDetail, error)

	// TopPlayers returns the current-day net-gain ranking.
	TopPlayers(ctx context.Context, n int) ([]types.TopEntry, error)

	// CurrentPartition returns the active day partition key.
	CurrentPartition() string
}

// Server wires HTTP routes for the tracker API.
type Server struct {
	healthHandler *HealthHandler
	statsHandler  *StatsHandler
	playerHandler *PlayerHandler
	topHandler    *TopHandler
}

// NewServer creates a new API server with all handlers. defaultTopLimit
// is the ranking size served when /api/v1/top is called without a limit.
func NewServer(deps Dependencies, statsProvider StatsProvider, defaultTopLimit, maxTopLimit int) *Server {
	return &Server{
		healthHandler: NewHealthHandler(),
		statsHandler:  NewStatsHandler(statsProvider),
		playerHandler: NewPlayerHandler(deps),
		topHandler:    NewTopHandler(deps, defaultTopLimit, maxTopLimit),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/api/v1/players/", MetricsMiddleware(s.playerHandler.HandlePlayer, "players"))
	mux.HandleFunc("/api/v1/top", MetricsMiddleware(s.topHandler.HandleGetTop, "top"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// isNotFound allows the API to translate upstream not-found errors to 404.
// This stays generic to avoid tight coupling with specific packages.
func isNotFound(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "never observed") || strings.Contains(msg, "not found")
}
