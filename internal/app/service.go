// Package service wires the frozen context store, scenario resolution,
// dashboard aggregation and chat orchestration behind one facade that the
// HTTP handlers depend on.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/phoenixborealis/bimagent/internal/adapters/engine"
	"github.com/phoenixborealis/bimagent/internal/adapters/store"
	"github.com/phoenixborealis/bimagent/internal/domain/classify"
	"github.com/phoenixborealis/bimagent/internal/domain/dashboard"
	"github.com/phoenixborealis/bimagent/internal/domain/model"
	"github.com/phoenixborealis/bimagent/internal/domain/promptctx"
	"github.com/phoenixborealis/bimagent/internal/domain/scenario"
	"github.com/phoenixborealis/bimagent/pkg/logger"
	"github.com/phoenixborealis/bimagent/pkg/metrics"
)

// Service implements the API dependencies for the carbon agent.
type Service struct {
	mu sync.RWMutex

	// Frozen after Start; read without locking on every request path.
	store      *model.ContextStore
	aggregator *dashboard.Aggregator

	engine      engine.Generator
	contextPath string
	debugSlices bool

	started bool
	logger  logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithEngine sets the answering engine client. Required before Start.
func WithEngine(g engine.Generator) Option {
	return func(s *Service) {
		s.engine = g
	}
}

// WithContextPath overrides the embedded dataset with a file on disk.
func WithContextPath(path string) Option {
	return func(s *Service) {
		s.contextPath = path
	}
}

// WithDebugSlices widens chat context slices to include the raw geometry
// fixture and the writeback mapping. Off in normal operation.
func WithDebugSlices(enabled bool) Option {
	return func(s *Service) {
		s.debugSlices = enabled
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a Service. Start must run before any request method.
func New(opts ...Option) *Service {
	s := &Service{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start loads and freezes the context store. Any failure here is
// configuration-class and the process must not serve traffic.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	if s.engine == nil {
		return fmt.Errorf("%w: no answering engine configured", ErrNotConfigured)
	}

	cs, err := store.Load(ctx, s.contextPath)
	if err != nil {
		return fmt.Errorf("starting carbon agent: %w", err)
	}
	s.store = cs
	s.aggregator = dashboard.New(cs)
	s.started = true

	metrics.SetContextInfo(cs.ProjectSummary.ID, len(cs.Scenarios.Scenarios))
	s.logger.Info(ctx, "carbon agent service started",
		logger.String("project", cs.ProjectSummary.ID),
		logger.String("baseline", cs.Scenarios.BaselineID),
	)
	return nil
}

// Stop releases nothing today; the store is immutable and holds no
// resources. Kept for symmetry with Start and future teardown needs.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.started = false
}

// Ready reports whether the store finished loading.
func (s *Service) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.started
}

// Dashboard builds the unified view for the requested scenario. A nil view
// with nil error means the store is not ready yet (loading state).
func (s *Service) Dashboard(ctx context.Context, scenarioID string) (*dashboard.View, error) {
	if !s.Ready() {
		return nil, nil
	}
	view, err := s.aggregator.Build(scenarioID)
	if err != nil {
		s.logger.Error(ctx, "dashboard aggregation failed",
			logger.String("scenario", scenarioID), logger.Error(err))
		return nil, err
	}
	return view, nil
}

// Scenarios returns the static scenario list and the baseline designation.
func (s *Service) Scenarios(_ context.Context) (baselineID string, list []model.Scenario) {
	if !s.Ready() {
		return "", nil
	}
	return s.store.Scenarios.BaselineID, s.store.Scenarios.Scenarios
}

// AnswerRequest carries one chat question through orchestration.
type AnswerRequest struct {
	Message    string
	ScenarioID string
	CategoryID string
}

// Answer drives classification, slicing, prompt assembly and the engine
// call for one question. Scenario resolution here is the same call the
// dashboard uses, which is what keeps chat and UI numbers identical.
func (s *Service) Answer(ctx context.Context, req AnswerRequest) (string, error) {
	if !s.Ready() {
		return "", ErrNotConfigured
	}

	res, err := scenario.Resolve(&s.store.Scenarios, req.ScenarioID)
	if err != nil {
		return "", fmt.Errorf("answering question: %w", err)
	}

	topic := classify.Classify(req.Message)
	metrics.RecordChatTopic(string(topic))

	prompt, err := promptctx.Assemble(s.store, promptctx.Request{
		Topic:      topic,
		Resolution: res,
		Question:   req.Message,
		CategoryID: req.CategoryID,
		Debug:      s.debugSlices,
	})
	if err != nil {
		return "", fmt.Errorf("answering question: %w", err)
	}
	metrics.RecordPromptSize(len(prompt))

	s.logger.Debug(ctx, "dispatching prompt",
		logger.String("topic", string(topic)),
		logger.String("scenario", res.Active.ID),
		logger.Int("promptBytes", len(prompt)),
	)

	start := time.Now()
	reply, err := s.engine.Generate(ctx, prompt)
	metrics.RecordEngineCall(time.Since(start).Milliseconds(), err == nil)
	if err != nil {
		s.logger.Error(ctx, "engine call failed",
			logger.String("topic", string(topic)), logger.Error(err))
		return "", fmt.Errorf("%w: %v", ErrEngine, err)
	}
	return reply, nil
}

// SelfTestContext sends an introspection prompt over the debug-widened
// context and returns the engine's reply plus the top-level section names.
// Debug aid carried over from early prompt-engineering sessions.
func (s *Service) SelfTestContext(ctx context.Context) (reply string, sections []string, err error) {
	if !s.Ready() {
		return "", nil, ErrNotConfigured
	}

	slice, err := promptctx.Slice(s.store, classify.TopicGeneral, true)
	if err != nil {
		return "", nil, err
	}
	prompt := fmt.Sprintf("CONTEXT DATA:\n%s\n\nTest Question: List the top-level keys of the data above, then state the exact value of carbon_baseline.total_embodied_kgco2e and the share_of_total_percent of the first category. Use exact numbers.", slice)

	reply, err = s.engine.Generate(ctx, prompt)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrEngine, err)
	}
	return reply, contextSections(), nil
}

func contextSections() []string {
	return []string{
		"project_summary", "geometry_aggregates", "material_factors",
		"carbon_baseline", "benchmarks", "scenarios", "reduction_strategies",
		"data_quality", "operational_carbon", "ifc_writeback", "ifc_data",
	}
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":     s.started,
		"debugSlices": s.debugSlices,
	}
	if s.started {
		stats["project"] = s.store.ProjectSummary.ID
		stats["scenarios"] = len(s.store.Scenarios.Scenarios)
		stats["categories"] = len(s.store.CarbonBaseline.ByCategory)
		stats["topics"] = len(classify.Topics())
	}
	return stats
}
