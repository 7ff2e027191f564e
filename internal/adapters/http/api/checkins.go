// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/scoutbase/combine/internal/domain/dedupe"
	"github.com/scoutbase/combine/internal/domain/model"
)

// CheckinDependencies defines the interface for check-in processing.
type CheckinDependencies interface {
	dedupe.Deduper
	Enqueue(ctx context.Context, c model.Checkin) bool
}

// CheckinsHandler handles check-in submission requests.
type CheckinsHandler struct {
	deps CheckinDependencies
}

// NewCheckinsHandler creates a new check-ins handler.
func NewCheckinsHandler(deps CheckinDependencies) *CheckinsHandler {
	return &CheckinsHandler{deps: deps}
}

// HandlePostCheckin handles POST /checkins requests.
func (h *CheckinsHandler) HandlePostCheckin(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_checkin"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req checkinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	// Submissions without an id get one; retries then look like new
	// submissions, which is the safe direction for merge-on-write data.
	if req.SubmissionID == "" {
		req.SubmissionID = uuid.NewString()
	}

	// Idempotency check - mark as seen first
	if h.deps.SeenAndRecord(r.Context(), req.SubmissionID) {
		writeJSON(w, http.StatusOK, ackResponse{Status: "duplicate", SubmissionID: req.SubmissionID, Duplicate: true})
		return
	}

	// Try to enqueue for async processing
	if ok := h.deps.Enqueue(r.Context(), req.toModel()); !ok {
		// Roll back the "seen" status since enqueue failed
		h.deps.Unrecord(r.Context(), req.SubmissionID)
		writeError(w, http.StatusTooManyRequests, "backpressure", NewKind(op, ErrBackpressure))
		return
	}
	writeJSON(w, http.StatusAccepted, ackResponse{Status: "accepted", SubmissionID: req.SubmissionID, Duplicate: false})
}
