// Package coingecko is a minimal client for the CoinGecko API v3, covering
// the single coins/markets endpoint the comparison engine needs.
package coingecko

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
	"github.com/shopspring/decimal"
)

// DefaultBaseURL is the production CoinGecko endpoint.
const DefaultBaseURL = "https://api.coingecko.com"

// Client provides access to the CoinGecko REST API. It performs single
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

// New creates a CoinGecko client with the given API key. The key may be
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

// Market is the subset of a coins/markets entry the engine cares about.
//
// https://docs.coingecko.com/reference/coins-markets
type Market struct {
	ID                string          `json:"id"`
	Symbol            string          `json:"symbol"`
	Name              string          `json:"name"`
	CurrentPrice      decimal.Decimal `json:"current_price"`
	MarketCap         decimal.Decimal `json:"market_cap"`
	CirculatingSupply decimal.Decimal `json:"circulating_supply"`
	LastUpdated       time.Time       `json:"last_updated"`
}

// Markets fetches the USD market entry for a single coin id. An empty
// response means CoinGecko does not know the id.
func (c *Client) Markets(ctx context.Context, id string) (Market, error) {
	if c.apiKey == "" {
		return Market{}, fmt.Errorf("coingecko: COINGECKO_KEY is not set: %w", capratio.ErrAuthMissing)
	}

	query := url.Values{}
	query.Set("vs_currency", "usd")
	query.Set("ids", id)
	query.Set("x_cg_key", c.apiKey)
	addr := c.baseURL + "/api/v3/coins/markets?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return Market{}, fmt.Errorf("coingecko: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Market{}, fmt.Errorf("coingecko: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Market{}, fmt.Errorf("coingecko: read response: %w", err)
	}
	c.logger.Debug("coingecko", "id", id, "status", resp.StatusCode)

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return Market{}, fmt.Errorf("coingecko: %s: %w", http.StatusText(resp.StatusCode), capratio.ErrAuthMissing)
	case resp.StatusCode >= 400:
		return Market{}, &capratio.StatusError{
			Provider:   "coingecko",
			StatusCode: resp.StatusCode,
			Message:    http.StatusText(resp.StatusCode),
			RetryAfter: capratio.RetryAfter(resp),
		}
	}

	var markets []Market
	if err := json.Unmarshal(body, &markets); err != nil {
		return Market{}, fmt.Errorf("coingecko: decode markets for %s: %w", id, err)
	}
	if len(markets) == 0 {
		return Market{}, fmt.Errorf("coingecko: no market data for id %q: %w", id, capratio.ErrNotFound)
	}
	return markets[0], nil
}

// CryptoQuote implements the capratio.CryptoSource interface: current USD
// price and circulating supply. A coin with an unknown supply yields a zero
// quantity, the engine's "no data" sentinel.
func (c *Client) CryptoQuote(ctx context.Context, id string) (capratio.SourceQuote, error) {
	market, err := c.Markets(ctx, id)
	if err != nil {
		return capratio.SourceQuote{}, err
	}
	return capratio.SourceQuote{
		UnitPrice: market.CurrentPrice,
		Quantity:  market.CirculatingSupply,
		AsOf:      market.LastUpdated,
	}, nil
}
