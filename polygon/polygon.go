// Package polygon is a minimal client for the Polygon.io REST API, covering
// the two endpoints the comparison engine needs: ticker reference details
// (outstanding shares) and previous-day aggregates (closing prices, both for
// stocks and for the XAUUSD forex pair used to price gold).
package polygon

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/etnz/capratio"
)

// DefaultBaseURL is the production Polygon.io endpoint.
const DefaultBaseURL = "https://api.polygon.io"

// Client provides access to the Polygon.io REST API. It performs single
// attempts only: the retry policy belongs to the gateway on top.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at a different endpoint, typically a test
// server.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// New creates a Polygon.io client with the given API key. The key may be
// empty; requests then fail with capratio.ErrAuthMissing, but only if the
// provider is actually queried.
func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// errorResponse is Polygon's error payload. Depending on the endpoint the
// text lives in "error" or in "message".
type errorResponse struct {
	Status  string `json:"status"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

// get performs a GET request and returns the raw body, classifying HTTP
// failures into the engine's error taxonomy.
func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("polygon: POLYGON_KEY is not set: %w", capratio.ErrAuthMissing)
	}

	if query == nil {
		query = url.Values{}
	}
	query.Set("apiKey", c.apiKey)
	addr := c.baseURL + path + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return nil, fmt.Errorf("polygon: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("polygon: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("polygon: read response: %w", err)
	}
	c.logger.Debug("polygon", "path", path, "status", resp.StatusCode)

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("polygon: %s: %w", errorMessage(body, resp), capratio.ErrNotFound)
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("polygon: %s: %w", errorMessage(body, resp), capratio.ErrAuthMissing)
	case resp.StatusCode >= 400:
		return nil, &capratio.StatusError{
			Provider:   "polygon",
			StatusCode: resp.StatusCode,
			Message:    errorMessage(body, resp),
			RetryAfter: capratio.RetryAfter(resp),
		}
	}
	return body, nil
}

// errorMessage extracts the human-readable part of an error payload, falling
// back to the HTTP status text.
func errorMessage(body []byte, resp *http.Response) string {
	var er errorResponse
	if err := json.Unmarshal(body, &er); err == nil {
		if er.Error != "" {
			return er.Error
		}
		if er.Message != "" {
			return er.Message
		}
	}
	return http.StatusText(resp.StatusCode)
}
