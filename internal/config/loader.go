package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New(ctx))
//  2. file (YAML) if BIMAGENT_CONFIG is set
//  3. env (prefix BIMAGENT_)
func Load(ctx context.Context) (*Config, error) {
	base := New(ctx)

	k := koanf.New(".")

	if path := os.Getenv("BIMAGENT_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
		}
	}

	// Env keys like BIMAGENT_ENGINE_API_KEY map to engine_api_key; the
	// underscores line up with the koanf tags on the struct.
	envProvider := env.Provider("BIMAGENT_", ".", func(s string) string {
		return strings.TrimPrefix(strings.ToLower(s), "bimagent_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validate rejects configurations the process cannot serve with. A missing
// engine credential is fatal here, at startup, never per-request.
func (c *Config) validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.EngineAPIKey == "":
		return fmt.Errorf("%w: engine_api_key is required (set BIMAGENT_ENGINE_API_KEY)", ErrInvalidConfig)
	case c.EngineTimeoutMS <= 0:
		return fmt.Errorf("%w: engine_timeout_ms must be positive", ErrInvalidConfig)
	case c.EngineRetries < 0 || c.EngineRetries > 1:
		return fmt.Errorf("%w: engine_retries must be 0 or 1", ErrInvalidConfig)
	}
	return nil
}
