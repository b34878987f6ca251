// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(...) to build a Config with defaults; Load layers sources.
// - External errors must be wrapped via this package's error helpers.
package config

import "context"

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// EngineEndpoint is the answering-engine base URL.
	EngineEndpoint string `koanf:"engine_endpoint"`

	// EngineModel selects the completion model.
	EngineModel string `koanf:"engine_model"`

	// EngineAPIKey authenticates against the answering engine. Required;
	// startup aborts without it.
	EngineAPIKey string `koanf:"engine_api_key"`

	// EngineTimeoutMS bounds one engine call end to end.
	EngineTimeoutMS int `koanf:"engine_timeout_ms"`

	// EngineRetries is the number of fresh attempts after a transient
	// failure. At most one; never unbounded.
	EngineRetries int `koanf:"engine_retries"`

	// ContextPath optionally overrides the embedded carbon dataset with a
	// JSON file on disk.
	ContextPath string `koanf:"context_path"`

	// DebugSlices widens chat context slices with the raw geometry fixture
	// and the export mapping. Development aid only.
	DebugSlices bool `koanf:"debug_slices"`
}

// New creates a Config with defaults. Context is accepted first to satisfy
// the project-wide convention; it is reserved for future use.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:        "info",
		Addr:            ":8080",
		EngineEndpoint:  "https://generativelanguage.googleapis.com",
		EngineModel:     "gemini-2.0-flash-exp",
		EngineTimeoutMS: 60_000,
		EngineRetries:   1,
	}
}
