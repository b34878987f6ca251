// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
)

// DashboardHandler handles dashboard view-model requests.
type DashboardHandler struct {
	deps Dependencies
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(deps Dependencies) *DashboardHandler {
	return &DashboardHandler{deps: deps}
}

// loadingResponse signals the store is still initializing; the frontend
// renders a loading state off this rather than an error.
type loadingResponse struct {
	Status string `json:"status"`
}

// HandleDashboard handles GET /api/dashboard?scenario=<id> requests and
// returns the unified dashboard view-model as JSON.
func (h *DashboardHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	view, err := h.deps.Dashboard(r.Context(), r.URL.Query().Get("scenario"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	if view == nil {
		// Soft not-ready contract: absence, not an exception.
		writeJSON(w, http.StatusServiceUnavailable, loadingResponse{Status: "loading"})
		return
	}
	writeJSON(w, http.StatusOK, view)
}
