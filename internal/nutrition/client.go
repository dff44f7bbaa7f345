// Package nutrition is a client for the API Ninjas nutrition endpoint.
package nutrition

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/gosh00/FitnessApp/internal/observability"

	"go.opentelemetry.io/otel/attribute"
)

const (
	upstreamName    = "api_ninjas"
	maxResponseSize = 1 << 20
)

// ErrNotConfigured is returned when no API key is set.
var ErrNotConfigured = errors.New("nutrition API key is not configured")

// StatusError is returned for non-2xx upstream responses.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("nutrition API returned %d: %s", e.StatusCode, e.Body)
}

// Client calls the nutrition API.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewClient creates a client. A zero timeout means 10 seconds.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
	}
}

// Lookup returns the upstream JSON array for a free-text query such as
// "100g apple". The body is passed through untouched.
func (c *Client) Lookup(ctx context.Context, query string) (json.RawMessage, error) {
	if c.apiKey == "" {
		return nil, ErrNotConfigured
	}

	span, ctx := observability.NewSpan(ctx, "nutrition.lookup", attribute.String("nutrition.query", query))
	defer span.End()

	start := time.Now()
	body, err := c.do(ctx, query)
	outcome := "ok"
	if err != nil {
		outcome = "error"
		span.SetError(err)
	}
	observability.UpstreamLatency.WithLabelValues(upstreamName, outcome).Observe(time.Since(start).Seconds())
	return body, err
}

func (c *Client) do(ctx context.Context, query string) (json.RawMessage, error) {
	endpoint := c.baseURL + "?query=" + url.QueryEscape(query)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("X-Api-Key", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call nutrition API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("read nutrition response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	if !json.Valid(body) {
		return nil, errors.New("nutrition API returned invalid JSON")
	}
	return json.RawMessage(body), nil
}
