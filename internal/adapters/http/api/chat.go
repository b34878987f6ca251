// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	service "github.com/phoenixborealis/bimagent/internal/app"
	"github.com/phoenixborealis/bimagent/pkg/logger"
)

// chatRequest mirrors the public chat contract.
type chatRequest struct {
	Message          string `json:"message"`
	ActiveScenarioID string `json:"activeScenarioId,omitempty"`
	CategoryID       string `json:"categoryId,omitempty"`
}

func (c chatRequest) validate() error {
	if strings.TrimSpace(c.Message) == "" {
		return errors.New("missing message")
	}
	return nil
}

// chatResponse always carries a reply string, on failure a human-readable
// error message. The chat surface never returns an empty body.
type chatResponse struct {
	Reply string `json:"reply"`
}

// ChatHandler handles chat requests.
type ChatHandler struct {
	deps Dependencies
}

// NewChatHandler creates a new chat handler.
func NewChatHandler(deps Dependencies) *ChatHandler {
	return &ChatHandler{deps: deps}
}

// HandleChat handles POST /api/chat requests: validate, orchestrate, and
// translate engine failures into a structured error reply.
func (h *ChatHandler) HandleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", errors.New("invalid JSON body"))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	ctx := r.Context()
	requestID := uuid.New().String()
	log := logger.Named("chat")
	log.Info(ctx, "chat request",
		logger.String("requestID", requestID),
		logger.Int("messageLen", len(req.Message)),
		logger.String("scenario", req.ActiveScenarioID),
		logger.String("category", req.CategoryID),
	)

	reply, err := h.deps.Answer(ctx, service.AnswerRequest{
		Message:    req.Message,
		ScenarioID: req.ActiveScenarioID,
		CategoryID: req.CategoryID,
	})
	if err != nil {
		log.Error(ctx, "chat request failed",
			logger.String("requestID", requestID), logger.Error(err))
		// Engine and resolution failures are both server faults from the
		// caller's perspective. The caller always receives a reply string,
		// never a bare failure.
		status := http.StatusInternalServerError
		writeJSON(w, status, chatResponse{
			Reply: fmt.Sprintf("Erro Técnico (%d): %v", status, err),
		})
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{Reply: reply})
}
