// Package client is a Go client for the cookbook HTTP API. The CLI uses it
// to talk to a running server.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hammamikhairi/cookbook/internal/domain"
	"github.com/hammamikhairi/cookbook/internal/httpapi"
	"github.com/hammamikhairi/cookbook/internal/logger"
)

// ── Errors ───────────────────────────────────────────────────────

// APIError is a rejection reported by the server.
type APIError struct {
	Status   int
	Kind     domain.Kind
	Category domain.Category
	Message  string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("cookbook: %d %s", e.Status, e.Kind)
	}
	return fmt.Sprintf("cookbook: %s", e.Message)
}

// Unwrap lets errors.Is match the domain sentinel for the reported kind.
func (e *APIError) Unwrap() error {
	return domain.ErrorForKind(e.Kind)
}

// ── Client ───────────────────────────────────────────────────────

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithHTTPTimeout sets the HTTP client timeout.
func WithHTTPTimeout(d time.Duration) ClientOption {
	return func(c *Client) { c.http.Timeout = d }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.http = hc }
}

// Client talks to a cookbook server.
type Client struct {
	baseURL string
	http    *http.Client
	log     *logger.Logger
}

// New creates a client for the server at baseURL (e.g. "http://127.0.0.1:8080").
func New(baseURL string, log *logger.Logger, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
		log:     log,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Parse asks the server to format free text into a display name.
func (c *Client) Parse(ctx context.Context, input string) (string, error) {
	var resp httpapi.ParseResponse
	if err := c.do(ctx, http.MethodPost, "/parse", nil, httpapi.ParseRequest{Input: input}, &resp); err != nil {
		return "", err
	}
	return resp.Msg, nil
}

// AddEntry stores an ingredient or recipe.
func (c *Client) AddEntry(ctx context.Context, entry domain.Entry) error {
	return c.do(ctx, http.MethodPost, "/entry", nil, entry, nil)
}

// Lookup fetches one stored entry by name.
func (c *Client) Lookup(ctx context.Context, name string) (domain.Entry, error) {
	var entry domain.Entry
	err := c.do(ctx, http.MethodGet, "/entry", url.Values{"name": {name}}, nil, &entry)
	return entry, err
}

// List fetches every stored entry in insertion order.
func (c *Client) List(ctx context.Context) ([]domain.Entry, error) {
	var resp httpapi.ListResponse
	if err := c.do(ctx, http.MethodGet, "/entries", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// Summary fetches the flattened summary of a recipe.
func (c *Client) Summary(ctx context.Context, name string) (*domain.Summary, error) {
	var summary domain.Summary
	if err := c.do(ctx, http.MethodGet, "/summary", url.Values{"name": {name}}, nil, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// Health reports the server status.
func (c *Client) Health(ctx context.Context) (httpapi.HealthResponse, error) {
	var resp httpapi.HealthResponse
	err := c.do(ctx, http.MethodGet, "/health", nil, nil, &resp)
	return resp, err
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("cookbook: marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("cookbook: create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.log.Debug("%s %s", method, endpoint)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("cookbook: request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("cookbook: read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return decodeError(resp.StatusCode, respBody)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("cookbook: unmarshal response: %w", err)
	}
	return nil
}

func decodeError(status int, body []byte) error {
	var e httpapi.ErrorResponse
	if err := json.Unmarshal(body, &e); err != nil || e.Kind == "" {
		return &APIError{
			Status:   status,
			Kind:     domain.KindUnknown,
			Category: domain.CategoryInternal,
			Message:  fmt.Sprintf("%s: %s", http.StatusText(status), strings.TrimSpace(string(body))),
		}
	}
	return &APIError{Status: status, Kind: e.Kind, Category: e.Category, Message: e.Error}
}
