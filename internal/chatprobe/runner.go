// Package chatprobe drives canned questions at a running carbon agent and
// reports latency and reply health. Meant for smoke-testing a deployment
// with a real engine key behind it.
package chatprobe

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/phoenixborealis/bimagent/pkg/logger"
)

// Run executes the complete chat probe.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{
		StartTime: time.Now(),
	}

	logger.Get().Info(ctx, "starting chat probe",
		logger.String("baseURL", config.BaseURL),
		logger.String("scenario", config.ScenarioID),
		logger.Int("rounds", config.Rounds),
		logger.Int("workers", config.Workers),
		logger.String("timeout", config.Timeout.String()))

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, config); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Confirm the dashboard is serving the requested scenario
	if err := checkDashboard(ctx, config); err != nil {
		return fmt.Errorf("dashboard check failed: %w", err)
	}

	// Step 3: Ask the canned questions concurrently
	results, err := askQuestions(ctx, config, stats)
	if err != nil {
		return fmt.Errorf("question run failed: %w", err)
	}

	// Step 4: Report
	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayResults(ctx, config, results, stats)

	if stats.Failed > 0 {
		return fmt.Errorf("probe finished with %d failed questions", stats.Failed)
	}
	logger.Get().Info(ctx, "probe completed successfully")
	return nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, config *Config) error {
	logger.Get().Info(ctx, "checking service health")

	client := newHTTPClient(config.Timeout)
	resp, err := client.Get(ctx, config.BaseURL+"/healthz")
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close response body", logger.Error(err))
		}
	}()

	// Any 200 counts as healthy; the body is Prometheus metrics.
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("service health check failed with status: %d", resp.StatusCode)
	}

	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// checkDashboard confirms the store is loaded and the requested scenario
// resolves, so question failures later can be blamed on the engine.
func checkDashboard(ctx context.Context, config *Config) error {
	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/api/dashboard"
	if config.ScenarioID != "" {
		url += "?scenario=" + config.ScenarioID
	}

	resp, err := client.Get(ctx, url)
	if err != nil {
		return fmt.Errorf("failed to fetch dashboard: %w", err)
	}
	body, err := readResponseBody(resp)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("dashboard returned status %d: %s", resp.StatusCode, string(body))
	}

	var view struct {
		ActiveScenarioID string  `json:"active_scenario_id"`
		TotalEmissions   float64 `json:"total_emissions_kgco2e"`
	}
	if err := json.Unmarshal(body, &view); err != nil {
		return fmt.Errorf("failed to decode dashboard view: %w", err)
	}

	logger.Get().Info(ctx, "dashboard is serving",
		logger.String("activeScenario", view.ActiveScenarioID),
		logger.Float64("totalKg", view.TotalEmissions))
	return nil
}

// askQuestions submits every question for the configured number of rounds
// using a worker pool.
func askQuestions(ctx context.Context, config *Config, stats *Stats) ([]Result, error) {
	total := len(Questions) * config.Rounds
	logger.Get().Info(ctx, "asking questions",
		logger.Int("total", total), logger.Int("workers", config.Workers))

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/api/chat"

	var (
		sent    int64
		replied int64
		erred   int64
		failed  int64
	)

	questionChan := make(chan Question, config.Workers*2)
	resultChan := make(chan Result, total)
	var wg sync.WaitGroup

	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for q := range questionChan {
				select {
				case <-ctx.Done():
					return
				default:
					result := askSingleQuestion(ctx, client, url, config, q)

					atomic.AddInt64(&sent, 1)
					switch {
					case result.Failed:
						atomic.AddInt64(&failed, 1)
					case strings.Contains(result.Reply, "Erro Técnico"):
						atomic.AddInt64(&erred, 1)
					default:
						atomic.AddInt64(&replied, 1)
					}
					resultChan <- result
				}
			}
		}()
	}

	go func() {
		defer close(questionChan)
		for r := 0; r < config.Rounds; r++ {
			for _, q := range Questions {
				select {
				case <-ctx.Done():
					return
				case questionChan <- q:
				}
			}
		}
	}()

	wg.Wait()
	close(resultChan)

	results := make([]Result, 0, total)
	for r := range resultChan {
		results = append(results, r)
		stats.TotalLatency += r.Latency
		if r.Latency > stats.MaxLatency {
			stats.MaxLatency = r.Latency
		}
	}

	stats.QuestionsSent = int(atomic.LoadInt64(&sent))
	stats.RepliesReceived = int(atomic.LoadInt64(&replied))
	stats.ErrorReplies = int(atomic.LoadInt64(&erred))
	stats.Failed = int(atomic.LoadInt64(&failed))
	return results, nil
}

// askSingleQuestion runs one question round-trip.
func askSingleQuestion(ctx context.Context, client *HTTPClient, url string, config *Config, q Question) Result {
	result := Result{
		Question:  q.Text,
		RequestID: uuid.New().String(),
	}

	start := time.Now()
	resp, err := client.Post(ctx, url, ChatRequest{
		Message:          q.Text,
		ActiveScenarioID: config.ScenarioID,
		CategoryID:       q.Category,
	})
	result.Latency = time.Since(start)
	if err != nil {
		result.Failed = true
		return result
	}

	body, err := readResponseBody(resp)
	if err != nil {
		result.Failed = true
		return result
	}

	var reply ChatResponse
	if err := json.Unmarshal(body, &reply); err != nil || reply.Reply == "" {
		result.Failed = true
		return result
	}
	result.Reply = reply.Reply

	if config.Verbose {
		logger.Get().Info(ctx, "reply received",
			logger.String("requestID", result.RequestID),
			logger.String("question", q.Text),
			logger.String("latency", result.Latency.String()),
			logger.Int("replyLen", len(reply.Reply)))
	}
	return result
}

// displayResults prints the final probe statistics.
func displayResults(ctx context.Context, config *Config, results []Result, stats *Stats) {
	var avgLatency time.Duration
	if len(results) > 0 {
		avgLatency = stats.TotalLatency / time.Duration(len(results))
	}

	logger.Get().Info(ctx, "probe statistics",
		logger.Int("questionsSent", stats.QuestionsSent),
		logger.Int("repliesReceived", stats.RepliesReceived),
		logger.Int("errorReplies", stats.ErrorReplies),
		logger.Int("failed", stats.Failed),
		logger.String("duration", stats.Duration.String()),
		logger.String("avgLatency", avgLatency.String()),
		logger.String("maxLatency", stats.MaxLatency.String()))

	if !config.Verbose {
		return
	}
	for _, r := range results {
		if r.Failed {
			logger.Get().Warn(ctx, "question failed",
				logger.String("requestID", r.RequestID),
				logger.String("question", r.Question))
		}
	}
}
