package engine

import (
	"net/http"
	"time"
)

// Defaults for the engine client.
const (
	defaultEndpoint     = "https://generativelanguage.googleapis.com"
	defaultModel        = "gemini-2.0-flash-exp"
	defaultTimeout      = 60 * time.Second
	defaultRetries      = 1
	dialTimeout         = 5 * time.Second
	availabilityTimeout = 2 * time.Second
)

// Option applies a configuration option to the Client.
type Option func(*Client)

// WithEndpoint overrides the engine base URL.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		if endpoint != "" {
			c.endpoint = endpoint
		}
	}
}

// WithModel sets the model identifier.
func WithModel(model string) Option {
	return func(c *Client) {
		if model != "" {
			c.model = model
		}
	}
}

// WithAPIKey sets the API credential.
func WithAPIKey(key string) Option {
	return func(c *Client) {
		c.apiKey = key
	}
}

// WithTimeout bounds a single Generate call end to end, retries included.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithRetries sets how many fresh attempts follow a transient failure.
// Anything above one is clamped; unbounded retry is forbidden.
func WithRetries(n int) Option {
	return func(c *Client) {
		if n < 0 {
			n = 0
		}
		if n > 1 {
			n = 1
		}
		c.retries = n
	}
}

// WithHTTPClient swaps the underlying HTTP client, used by tests.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}
