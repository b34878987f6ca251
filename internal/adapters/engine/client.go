// Package engine is the outbound boundary to the external answering engine.
// The engine is a black-box text completion service: one prompt string in,
// one markdown reply out. Everything else (routing, slicing, consistency)
// happens before this boundary.
package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

// Generator is the single operation the chat orchestration depends on.
type Generator interface {
	// Generate sends the assembled prompt and returns the engine's text
	// reply. It honors ctx for cancellation and timeout.
	Generate(ctx context.Context, prompt string) (string, error)
}

// Client talks to a Gemini-style generateContent REST endpoint.
type Client struct {
	endpoint string
	model    string
	apiKey   string
	timeout  time.Duration
	retries  int
	http     *http.Client
}

// NewClient builds an engine client. An empty API key is a configuration
// error the caller must treat as fatal at startup.
func NewClient(opts ...Option) (*Client, error) {
	c := &Client{
		endpoint: defaultEndpoint,
		model:    defaultModel,
		timeout:  defaultTimeout,
		retries:  defaultRetries,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{Timeout: dialTimeout}).DialContext,
			},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.apiKey == "" {
		return nil, ErrMissingCredentials
	}
	return c, nil
}

// generateRequest mirrors the generateContent JSON body.
type generateRequest struct {
	Contents []content `json:"contents"`
	System   *content  `json:"systemInstruction,omitempty"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

// generateResponse holds the fields we read from the reply.
type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Status  string `json:"status"`
		Message string `json:"message"`
	} `json:"error"`
}

// systemInstruction frames the engine as the project's carbon consultant.
// Topic-specific behavior arrives with each prompt; this stays minimal.
const systemInstruction = `You are a BIM and embodied-carbon consultant. Each user message carries the relevant structured data for the question. Answer from that data only, in Portuguese (PT-BR), formatted as Markdown.`

// Generate sends the prompt, retrying once on transient failure. Retrying
// more than once is deliberately forbidden; quota and auth failures are not
// retried at all.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body := generateRequest{
		System:   &content{Parts: []part{{Text: systemInstruction}}},
		Contents: []content{{Role: "user", Parts: []part{{Text: prompt}}}},
	}

	var lastErr error
	for attempt := 0; attempt <= c.retries; attempt++ {
		reply, err := c.doGenerate(ctx, body)
		if err == nil {
			return reply, nil
		}
		lastErr = err
		if ctx.Err() != nil || !isTransient(err) {
			break
		}
	}

	switch {
	case ctx.Err() != nil:
		return "", fmt.Errorf("%w: %v", ErrTimeout, lastErr)
	case isConnectionError(lastErr):
		return "", fmt.Errorf("%w: %v", ErrUnavailable, lastErr)
	default:
		return "", lastErr
	}
}

func (c *Client) doGenerate(ctx context.Context, body generateRequest) (string, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", strings.TrimRight(c.endpoint, "/"), c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return "", fmt.Errorf("%w: status %d", ErrQuotaExceeded, resp.StatusCode)
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return "", fmt.Errorf("%w: status %d", ErrMissingCredentials, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return "", fmt.Errorf("engine returned status %d: %s", resp.StatusCode, truncate(respBody))
	}

	var out generateResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedReply, err)
	}
	if out.Error != nil {
		return "", fmt.Errorf("engine error %d (%s): %s", out.Error.Code, out.Error.Status, out.Error.Message)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: no candidates", ErrMalformedReply)
	}

	var b strings.Builder
	for _, p := range out.Candidates[0].Content.Parts {
		b.WriteString(p.Text)
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("%w: empty reply text", ErrMalformedReply)
	}
	return b.String(), nil
}

// Available probes the models endpoint, used for startup diagnostics only.
func (c *Client) Available(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, availabilityTimeout)
	defer cancel()

	url := strings.TrimRight(c.endpoint, "/") + "/v1beta/models"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false
	}
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// isTransient reports whether a retry could plausibly succeed. Auth and
// quota failures are terminal for this request.
func isTransient(err error) bool {
	if errors.Is(err, ErrMissingCredentials) || errors.Is(err, ErrQuotaExceeded) {
		return false
	}
	return true
}

func isConnectionError(err error) bool {
	var opErr *net.OpError
	return errors.As(err, &opErr)
}

const maxErrorBodyBytes = 512

func truncate(body []byte) string {
	if len(body) > maxErrorBodyBytes {
		body = body[:maxErrorBodyBytes]
	}
	return string(body)
}
