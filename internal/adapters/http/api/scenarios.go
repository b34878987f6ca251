// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"

	"github.com/phoenixborealis/bimagent/internal/domain/model"
)

// scenariosResponse feeds the scenario explorer.
type scenariosResponse struct {
	BaselineID string           `json:"baseline_id"`
	Scenarios  []model.Scenario `json:"scenarios"`
}

// ScenariosHandler handles scenario catalog requests.
type ScenariosHandler struct {
	deps Dependencies
}

// NewScenariosHandler creates a new scenarios handler.
func NewScenariosHandler(deps Dependencies) *ScenariosHandler {
	return &ScenariosHandler{deps: deps}
}

// HandleScenarios handles GET /api/scenarios requests.
func (h *ScenariosHandler) HandleScenarios(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	if !h.deps.Ready() {
		writeJSON(w, http.StatusServiceUnavailable, loadingResponse{Status: "loading"})
		return
	}
	baselineID, list := h.deps.Scenarios(r.Context())
	writeJSON(w, http.StatusOK, scenariosResponse{BaselineID: baselineID, Scenarios: list})
}
