// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	service "github.com/phoenixborealis/bimagent/internal/app"
	"github.com/phoenixborealis/bimagent/internal/domain/dashboard"
	"github.com/phoenixborealis/bimagent/internal/domain/model"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to the service implementation.
type Dependencies interface {
	// Ready reports whether the context store finished loading.
	Ready() bool

	// Dashboard builds the unified view for a scenario. nil view with nil
	// error means the store is still loading.
	Dashboard(ctx context.Context, scenarioID string) (*dashboard.View, error)

	// Scenarios exposes the static scenario catalog.
	Scenarios(ctx context.Context) (baselineID string, list []model.Scenario)

	// Answer runs the full chat orchestration for one question.
	Answer(ctx context.Context, req service.AnswerRequest) (string, error)

	// SelfTestContext runs the debug context-visibility probe.
	SelfTestContext(ctx context.Context) (reply string, sections []string, err error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	chatHandler      *ChatHandler
	dashboardHandler *DashboardHandler
	scenariosHandler *ScenariosHandler
	selfTestHandler  *SelfTestHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(statsProvider),
		chatHandler:      NewChatHandler(deps),
		dashboardHandler: NewDashboardHandler(deps),
		scenariosHandler: NewScenariosHandler(deps),
		selfTestHandler:  NewSelfTestHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/api/chat", MetricsMiddleware(s.chatHandler.HandleChat, "chat"))
	mux.HandleFunc("/api/dashboard", MetricsMiddleware(s.dashboardHandler.HandleDashboard, "dashboard"))
	mux.HandleFunc("/api/scenarios", MetricsMiddleware(s.scenariosHandler.HandleScenarios, "scenarios"))
	mux.HandleFunc("/api/test-context", MetricsMiddleware(s.selfTestHandler.HandleSelfTest, "test_context"))
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
