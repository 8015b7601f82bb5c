package web

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/application/projections"
)

// handleDashboard handles GET /dashboard
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	res, err := projections.QueryGetDashboard(r.Context(),
		projections.GetDashboardQuery{Today: s.now().Format(time.DateOnly)},
		projections.GetDashboardDeps{API: s.api, Tokens: s.tokens(w, r)},
	)
	if err != nil {
		s.loadFailed(w, r, "dashboard", err, "Unable to load the dashboard")
		return
	}
	s.render(w, r, http.StatusOK, "dashboard.html", page{Title: "Dashboard", Nav: "dashboard", Data: res})
}

// handlePerf handles GET /debug/perf: request, store and upstream timings
// for the last hour. Only administrators see it.
func (s *Server) handlePerf(w http.ResponseWriter, r *http.Request) {
	if s.collector == nil {
		http.NotFound(w, r)
		return
	}
	user, err := s.api.Me(r.Context(), s.tokens(w, r))
	if err != nil {
		s.loadFailed(w, r, "perf", err, "Unable to load your account")
		return
	}
	if !user.IsAdmin() {
		http.NotFound(w, r)
		return
	}
	snap := s.collector.Snapshot(s.now().Add(-time.Hour), 10)
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(snap); err != nil {
		internalError(w, err)
	}
}
