// Package api talks to the rewrite backend. The backend holds the OpenAI
// credentials; this client only ever sends prompts and receives text.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Defaults matching the hosted backend.
const (
	DefaultEndpoint  = "https://reword-this-backend.onrender.com"
	DefaultModel     = "gpt-3.5-turbo"
	DefaultMaxTokens = 1024

	defaultTimeout = 60 * time.Second
)

// Fallback strings substituted when the backend returns an empty version.
const (
	FallbackVersionA = "Failed to generate Version A. Please try again."
	FallbackVersionB = "Failed to generate Version B. Please try again."
)

// Client calls the rewrite backend.
type Client struct {
	endpoint  string
	model     string
	maxTokens int
	http      *http.Client
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying HTTP client. Tests use it to point
// at an httptest server transport.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.http = hc }
}

// WithModel overrides the completion model.
func WithModel(model string) ClientOption {
	return func(c *Client) { c.model = model }
}

// WithMaxTokens overrides the completion token budget.
func WithMaxTokens(n int) ClientOption {
	return func(c *Client) { c.maxTokens = n }
}

// NewClient returns a client for the given backend endpoint. An empty
// endpoint selects the hosted default.
func NewClient(endpoint string, opts ...ClientOption) *Client {
	c := &Client{
		endpoint:  endpoint,
		model:     DefaultModel,
		maxTokens: DefaultMaxTokens,
	}
	if c.endpoint == "" {
		c.endpoint = DefaultEndpoint
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: defaultTimeout}
	}
	return c
}

type completionRequest struct {
	Prompt    string `json:"prompt"`
	Model     string `json:"model"`
	MaxTokens int    `json:"maxTokens"`
}

type rewriteResponse struct {
	Result string `json:"result"`
}

// BattleResult holds the two competing rewrites.
type BattleResult struct {
	VersionA string `json:"versionA"`
	VersionB string `json:"versionB"`
}

type errorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Rewrite sends a prompt to /api/rewrite and returns the rewritten text.
func (c *Client) Rewrite(ctx context.Context, prompt string) (string, error) {
	var out rewriteResponse
	if err := c.post(ctx, "/api/rewrite", prompt, &out); err != nil {
		return "", err
	}
	return out.Result, nil
}

// Battle sends a prompt to /api/battle and returns both versions. Versions
// the backend omits are replaced with fallback strings rather than failing.
func (c *Client) Battle(ctx context.Context, prompt string) (BattleResult, error) {
	var out BattleResult
	if err := c.post(ctx, "/api/battle", prompt, &out); err != nil {
		return BattleResult{}, err
	}
	if out.VersionA == "" {
		out.VersionA = FallbackVersionA
	}
	if out.VersionB == "" {
		out.VersionB = FallbackVersionB
	}
	return out, nil
}

func (c *Client) post(ctx context.Context, path, prompt string, out any) error {
	body, err := json.Marshal(completionRequest{
		Prompt:    prompt,
		Model:     c.model,
		MaxTokens: c.maxTokens,
	})
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("call backend: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e errorResponse
		if json.Unmarshal(raw, &e) == nil && e.Error.Message != "" {
			return fmt.Errorf("backend: %s", e.Error.Message)
		}
		return fmt.Errorf("backend request failed with status %d", resp.StatusCode)
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
