// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
)

// selfTestResponse reports the engine's view of the full context.
type selfTestResponse struct {
	Reply       string   `json:"reply"`
	ContextKeys []string `json:"context_keys"`
}

// SelfTestHandler handles the context-visibility probe. Debug aid; verifies
// the engine can actually see the dataset it is being asked about.
type SelfTestHandler struct {
	deps Dependencies
}

// NewSelfTestHandler creates a new self-test handler.
func NewSelfTestHandler(deps Dependencies) *SelfTestHandler {
	return &SelfTestHandler{deps: deps}
}

// HandleSelfTest handles POST /api/test-context requests.
func (h *SelfTestHandler) HandleSelfTest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	reply, sections, err := h.deps.SelfTestContext(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, selfTestResponse{Reply: reply, ContextKeys: sections})
}
