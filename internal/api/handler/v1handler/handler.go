// Package v1handler implements the v1 HTTP API: race history, player
// statistics, the leaderboard and the live session admin endpoints.
//
//go:generate mockgen -package mockv1handler -source=handler.go -destination=mock/mockv1handler.go
package v1handler

import (
	"context"
	"net/http"
	"typeracer/internal/session"
	"typeracer/pkg/domain"
)

// Results serves the stored race history. It is nil when the database is disabled.
type Results interface {
	RecentRaces(ctx context.Context, cursor string, limit uint) ([]domain.Race, string, error)
	Race(ctx context.Context, id domain.RaceID) (*domain.Race, error)
	PlayerStats(ctx context.Context, playerName string) (*domain.PlayerStats, error)
	Leaderboard(ctx context.Context, limit uint) ([]domain.PlayerStats, error)
}

// Sessions exposes the live sessions of the game server.
type Sessions interface {
	List() []session.Snapshot
	Close(ctx context.Context, sessionID int) error
	Kick(ctx context.Context, sessionID, clientID int) error
}

// Deps groups the services the handlers read from.
type Deps struct {
	Results  Results
	Sessions Sessions
}

// Handler serves the v1 routes.
type Handler struct {
	deps Deps
}

// New returns a Handler.
func New(deps Deps) *Handler {
	return &Handler{deps: deps}
}

// Register adds every v1 route to mux. Admin routes require a bearer token
// accepted by sec.
func (h *Handler) Register(mux *http.ServeMux, sec *SecHandler) {
	mux.HandleFunc("GET /v1/leaderboard", h.Leaderboard)
	mux.HandleFunc("GET /v1/races", h.ListRaces)
	mux.HandleFunc("GET /v1/races/{id}", h.GetRace)
	mux.HandleFunc("GET /v1/players/{name}", h.GetPlayerStats)
	mux.HandleFunc("GET /v1/sessions", h.ListSessions)

	mux.Handle("DELETE /v1/sessions/{id}", sec.Require(http.HandlerFunc(h.CloseSession)))
	mux.Handle("POST /v1/sessions/{id}/kick/{playerId}", sec.Require(http.HandlerFunc(h.KickPlayer)))
}
