// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/scoutbase/combine/internal/adapters/repository"
	"github.com/scoutbase/combine/internal/domain/dedupe"
	"github.com/scoutbase/combine/internal/domain/model"
	"github.com/scoutbase/combine/internal/domain/report"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	dedupe.Deduper

	// Enqueue pushes a submission for async processing. Returns false on
	// backpressure.
	Enqueue(ctx context.Context, c model.Checkin) bool

	// Read operations expose computed leaderboard data.
	Leaderboard(ctx context.Context, teamID string) (report.Report, error)
	Movers(ctx context.Context, teamID string) (report.Movers, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
	checkinsHandler    *CheckinsHandler
	leaderboardHandler *LeaderboardHandler
	moversHandler      *MoversHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:      NewHealthHandler(),
		statsHandler:       NewStatsHandler(statsProvider),
		checkinsHandler:    NewCheckinsHandler(deps),
		leaderboardHandler: NewLeaderboardHandler(deps),
		moversHandler:      NewMoversHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/checkins", MetricsMiddleware(s.checkinsHandler.HandlePostCheckin, "checkins"))
	mux.HandleFunc("/leaderboard/", MetricsMiddleware(s.leaderboardHandler.HandleGetLeaderboard, "leaderboard"))
	mux.HandleFunc("/movers/", MetricsMiddleware(s.moversHandler.HandleGetMovers, "movers"))
}

// checkinRequest mirrors the JSON schema for POST /checkins.
type checkinRequest struct {
	SubmissionID   string             `json:"submission_id"`
	TeamID         string             `json:"team_id"`
	EvaluationID   string             `json:"evaluation_id"`
	EvaluationName string             `json:"evaluation_name"`
	PlayerID       string             `json:"player_id"`
	PlayerName     string             `json:"player_name"`
	Scores         map[string]any     `json:"scores"`
	Clusters       map[string]float64 `json:"clusters"`
	TS             string             `json:"ts"`
}

func (c checkinRequest) validate() error {
	switch {
	case strings.TrimSpace(c.TeamID) == "":
		return errors.New("missing team_id")
	case strings.TrimSpace(c.EvaluationID) == "":
		return errors.New("missing evaluation_id")
	case strings.TrimSpace(c.PlayerID) == "":
		return errors.New("missing player_id")
	case len(c.Scores) == 0 && len(c.Clusters) == 0:
		return errors.New("missing scores")
	}
	if c.TS != "" {
		if _, err := time.Parse(time.RFC3339, c.TS); err != nil {
			return errors.New("invalid ts; must be RFC3339")
		}
	}
	return nil
}

func (c checkinRequest) toModel() model.Checkin {
	ts, _ := time.Parse(time.RFC3339, c.TS)
	return model.Checkin{
		SubmissionID:   c.SubmissionID,
		TeamID:         c.TeamID,
		EvaluationID:   c.EvaluationID,
		EvaluationName: c.EvaluationName,
		PlayerID:       c.PlayerID,
		PlayerName:     c.PlayerName,
		Scores:         c.Scores,
		Clusters:       c.Clusters,
		TS:             ts,
	}
}

type ackResponse struct {
	Status       string `json:"status"`
	SubmissionID string `json:"submission_id"`
	Duplicate    bool   `json:"duplicate"`
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

// pathParam extracts the single path parameter after prefix, rejecting empty
// or nested paths.
func pathParam(path, prefix string) (string, bool) {
	p := strings.TrimPrefix(path, prefix)
	if p == "" || strings.Contains(p, "/") {
		return "", false
	}
	return p, true
}

// isNotFound translates the store's not-found kind to 404. Anything else,
// including errors that merely mention "not found", stays a 500.
func isNotFound(err error) bool {
	return errors.Is(err, repository.ErrTeamNotFound)
}
