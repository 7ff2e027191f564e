// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/scoutbase/combine/internal/domain/report"
)

// MoversDependencies defines the interface for movers operations.
type MoversDependencies interface {
	Movers(ctx context.Context, teamID string) (report.Movers, error)
}

// MoversHandler handles most-improved / biggest-drop requests.
type MoversHandler struct {
	deps MoversDependencies
}

// NewMoversHandler creates a new movers handler.
func NewMoversHandler(deps MoversDependencies) *MoversHandler {
	return &MoversHandler{deps: deps}
}

// HandleGetMovers handles GET /movers/{team_id} requests.
func (h *MoversHandler) HandleGetMovers(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_movers"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	teamID, ok := pathParam(r.URL.Path, "/movers/")
	if !ok {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	movers, err := h.deps.Movers(r.Context(), teamID)
	if err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, movers)
}
