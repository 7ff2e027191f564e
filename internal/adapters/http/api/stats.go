// Package api declares HTTP contracts and route registration helpers.
package api

import "net/http"

// StatsProvider exposes a point-in-time snapshot of service counters: queue
// length, store totals, worker configuration.
type StatsProvider interface {
	GetStats() map[string]interface{}
}

// StatsHandler serves the service stats snapshot.
type StatsHandler struct {
	stats StatsProvider
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(stats StatsProvider) *StatsHandler {
	return &StatsHandler{stats: stats}
}

// HandleStats handles GET /stats requests.
func (h *StatsHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.stats.GetStats())
}
