package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Client talks to one QuadratizePDE deployment. It is safe for
// concurrent use; every call is a single request with no retries.
type Client struct {
	baseURL string
	http    *http.Client
	log     *slog.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout bounds each request. Zero leaves requests unbounded.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http = &http.Client{Timeout: d} }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// New returns a client rooted at baseURL, e.g. "http://localhost:8000".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http:    &http.Client{},
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the service root this client was built with.
func (c *Client) BaseURL() string { return c.baseURL }

// FetchHealth returns the service's self-reported status, normally "healthy".
func (c *Client) FetchHealth(ctx context.Context) (string, error) {
	var out healthResponse
	if err := c.do(ctx, http.MethodGet, "/health", nil, &out); err != nil {
		return "", err
	}
	return out.Status, nil
}

// FetchExamples lists the example catalog.
func (c *Client) FetchExamples(ctx context.Context) ([]ExampleSummary, error) {
	var out []ExampleSummary
	if err := c.do(ctx, http.MethodGet, "/api/examples", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// FetchExampleDetail returns the full definition of example id.
func (c *Client) FetchExampleDetail(ctx context.Context, id string) (*ExampleDetail, error) {
	var out ExampleDetail
	if err := c.do(ctx, http.MethodGet, "/api/examples/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Quadratize submits req. An invalid request is rejected before any
// network traffic.
func (c *Client) Quadratize(ctx context.Context, req QuadratizeRequest) (*QuadratizeResponse, error) {
	if req == nil {
		return nil, fmt.Errorf("quadratize: nil request")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encoding quadratize request: %w", err)
	}

	var out QuadratizeResponse
	if err := c.do(ctx, http.MethodPost, "/api/quadratize", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// do performs one request and decodes a 2xx JSON body into out.
func (c *Client) do(ctx context.Context, method, path string, body []byte, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("building %s %s: %w", method, path, err)
	}
	requestID := uuid.NewString()
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Request-ID", requestID)
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		c.log.Error("api request failed",
			"method", method, "path", path, "request_id", requestID, "error", err)
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading %s %s response: %w", method, path, err)
	}

	c.log.Debug("api request",
		"method", method, "path", path, "status", resp.StatusCode,
		"duration", time.Since(start), "request_id", requestID)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := newAPIError(resp.StatusCode, payload)
		c.log.Warn("api error response",
			"method", method, "path", path, "status", resp.StatusCode,
			"message", apiErr.Message, "request_id", requestID)
		return apiErr
	}

	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("decoding %s %s response: %w", method, path, err)
	}
	return nil
}
