// Package metrics provides Prometheus metrics for the carbon agent service.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         prometheus.Registerer

	// HTTP performance
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Chat orchestration
	chatTopics     *prometheus.CounterVec
	promptSize     prometheus.Histogram
	engineCalls    *prometheus.CounterVec
	engineLatency  prometheus.Histogram

	// Context store
	contextInfo      *prometheus.GaugeVec
	contextScenarios prometheus.Gauge

	// Error tracking
	errorsByEndpoint *prometheus.CounterVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "bimagent",
		subsystem:        "carbon",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

// promptSizeBuckets cover the range from a narrow topic slice to the
// debug-widened full context, in bytes.
var promptSizeBuckets = []float64{1024, 2048, 4096, 8192, 16384, 32768, 65536, 131072} //nolint:gochecknoglobals // bucket constants

// engineLatencyBuckets are milliseconds; LLM calls sit in the seconds range.
var engineLatencyBuckets = []float64{250, 500, 1000, 2000, 4000, 8000, 16000, 30000, 60000} //nolint:gochecknoglobals // bucket constants

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "Total HTTP requests by endpoint, method and status code",
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_milliseconds",
		Help:      "Histogram of HTTP request duration in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method"})

	m.chatTopics = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "chat_questions_total",
		Help:      "Total chat questions by classified topic",
	}, []string{"topic"})

	m.promptSize = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "prompt_size_bytes",
		Help:      "Histogram of assembled prompt sizes in bytes (slice boundedness signal)",
		Buckets:   promptSizeBuckets,
	})

	m.engineCalls = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "engine_calls_total",
		Help:      "Total answering-engine calls by outcome",
	}, []string{"outcome"})

	m.engineLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "engine_call_latency_milliseconds",
		Help:      "Histogram of answering-engine call latency in milliseconds",
		Buckets:   engineLatencyBuckets,
	})

	m.contextInfo = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "context_info",
		Help:      "Static info about the loaded carbon context (value is always 1)",
	}, []string{"project"})

	m.contextScenarios = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "context_scenarios",
		Help:      "Number of precomputed scenarios in the loaded context",
	})

	m.errorsByEndpoint = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "errors_total",
		Help:      "Total errors by endpoint, method and error type",
	}, []string{"endpoint", "method", "error_type"})
}

// RecordHTTPRequest records one HTTP request.
func RecordHTTPRequest(endpoint, method string, statusCode int) {
	if globalManager != nil && globalManager.enabled {
		globalManager.httpRequests.WithLabelValues(endpoint, method, strconv.Itoa(statusCode)).Inc()
	}
}

// RecordHTTPRequestDuration records the duration of one HTTP request.
func RecordHTTPRequestDuration(endpoint, method string, durationMs float64) {
	if globalManager != nil && globalManager.enabled {
		globalManager.httpRequestDuration.WithLabelValues(endpoint, method).Observe(durationMs)
	}
}

// RecordChatTopic counts a classified chat question.
func RecordChatTopic(topic string) {
	if globalManager != nil && globalManager.enabled {
		globalManager.chatTopics.WithLabelValues(topic).Inc()
	}
}

// RecordPromptSize records the size of an assembled prompt.
func RecordPromptSize(bytes int) {
	if globalManager != nil && globalManager.enabled {
		globalManager.promptSize.Observe(float64(bytes))
	}
}

// RecordEngineCall records one answering-engine call outcome and latency.
func RecordEngineCall(latencyMs int64, success bool) {
	if globalManager == nil || !globalManager.enabled {
		return
	}
	outcome := "success"
	if !success {
		outcome = "failure"
	}
	globalManager.engineCalls.WithLabelValues(outcome).Inc()
	globalManager.engineLatency.Observe(float64(latencyMs))
}

// SetContextInfo publishes static facts about the loaded context.
func SetContextInfo(project string, scenarioCount int) {
	if globalManager != nil && globalManager.enabled {
		globalManager.contextInfo.WithLabelValues(project).Set(1)
		globalManager.contextScenarios.Set(float64(scenarioCount))
	}
}

// RecordErrorByEndpoint records an error at an endpoint.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	if globalManager != nil && globalManager.enabled {
		globalManager.errorsByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
	}
}

// GetRegistry returns the custom registry used by the global manager, for
// serving via promhttp.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
