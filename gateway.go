package capratio

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// StockSource quotes an equity: share price and outstanding shares.
type StockSource interface {
	StockQuote(ctx context.Context, symbol string) (SourceQuote, error)
}

// CryptoSource quotes a cryptocurrency: coin price and circulating supply.
type CryptoSource interface {
	CryptoQuote(ctx context.Context, id string) (SourceQuote, error)
}

// GoldSource quotes gold: the USD price of one troy ounce. The quantity of
// the returned SourceQuote is ignored, the tonnage comes from the
// GoldEstimateStore.
type GoldSource interface {
	GoldPrice(ctx context.Context) (SourceQuote, error)
}

// Gateway is the single entry point to the external valuation sources.
//
// It dispatches by asset kind, caches one RawQuote per (kind, identifier) for
// the lifetime of the invocation, coalesces concurrent requests for the same
// key into a single upstream call, and retries transient failures with
// exponential backoff, honoring provider-supplied retry-after delays.
type Gateway struct {
	stocks StockSource
	coins  CryptoSource
	gold   GoldSource

	logger     *slog.Logger
	maxRetries int
	backoff    time.Duration

	group singleflight.Group
	mu    sync.Mutex
	cache map[string]RawQuote
}

// GatewayOption configures a Gateway.
type GatewayOption func(*Gateway)

// WithLogger sets the logger used for retry diagnostics.
func WithLogger(logger *slog.Logger) GatewayOption {
	return func(g *Gateway) { g.logger = logger }
}

// WithRetries sets the retry budget and the initial backoff delay.
func WithRetries(max int, backoff time.Duration) GatewayOption {
	return func(g *Gateway) { g.maxRetries = max; g.backoff = backoff }
}

// NewGateway builds a Gateway over the given sources. A nil source is legal
// and yields ErrAuthMissing if an asset of that kind is actually requested,
// so unused providers never need credentials.
func NewGateway(stocks StockSource, coins CryptoSource, gold GoldSource, opts ...GatewayOption) *Gateway {
	g := &Gateway{
		stocks:     stocks,
		coins:      coins,
		gold:       gold,
		logger:     slog.Default(),
		maxRetries: 2, // 3 attempts total
		backoff:    500 * time.Millisecond,
		cache:      make(map[string]RawQuote),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Fetch returns the RawQuote for an asset, from the cache when possible.
//
// Within one invocation a repeated Fetch for the same (kind, identifier)
// never triggers a second upstream call: cache entries have no expiry, a
// consistent snapshot across all comparisons beats freshness for a
// short-lived tool. Concurrent duplicates are coalesced so the first
// in-flight call is awaited instead of duplicated.
func (g *Gateway) Fetch(ctx context.Context, asset Asset) (RawQuote, error) {
	key := asset.key()
	v, err, _ := g.group.Do(key, func() (any, error) {
		g.mu.Lock()
		quote, ok := g.cache[key]
		g.mu.Unlock()
		if ok {
			return quote, nil
		}

		quote, err := g.fetch(ctx, asset)
		if err != nil {
			return RawQuote{}, err
		}

		g.mu.Lock()
		g.cache[key] = quote
		g.mu.Unlock()
		return quote, nil
	})
	if err != nil {
		return RawQuote{}, err
	}
	return v.(RawQuote), nil
}

// Valuations fetches and normalizes all assets concurrently, one goroutine
// per asset, and joins them all before returning.
//
// Results come back in the caller's asset order regardless of completion
// order, preserving deterministic tie-breaking downstream. The first fatal
// error cancels the remaining fetches and fails the whole batch: no partial
// valuations are ever returned.
func (g *Gateway) Valuations(ctx context.Context, store *GoldEstimateStore, assets ...Asset) ([]Valuation, error) {
	valuations := make([]Valuation, len(assets))
	eg, ctx := errgroup.WithContext(ctx)
	for i, asset := range assets {
		eg.Go(func() error {
			quote, err := g.Fetch(ctx, asset)
			if err != nil {
				return err
			}
			valuations[i] = Normalize(asset, quote, store)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return valuations, nil
}

// fetch performs the upstream call with the retry policy applied.
func (g *Gateway) fetch(ctx context.Context, asset Asset) (RawQuote, error) {
	var lastErr error
	backoff := g.backoff

	for attempt := 0; attempt <= g.maxRetries; attempt++ {
		if attempt > 0 {
			// Add jitter: backoff * (0.5 to 1.5). A provider-supplied
			// retry-after delay takes precedence.
			delay := backoff/2 + time.Duration(rand.Int64N(int64(backoff)))
			var se *StatusError
			if errors.As(lastErr, &se) && se.RetryAfter > 0 {
				delay = se.RetryAfter
			}
			g.logger.Debug("retrying fetch",
				"asset", asset.String(),
				"attempt", attempt,
				"delay", delay,
			)
			select {
			case <-ctx.Done():
				return RawQuote{}, ctx.Err()
			case <-time.After(delay):
			}
			backoff *= 2
		}

		sq, err := g.call(ctx, asset)
		if err == nil {
			return newRawQuote(sq, kindOf(asset.Kind()))
		}
		lastErr = err

		if !transient(err) {
			return RawQuote{}, fmt.Errorf("%s: %w", asset, err)
		}
	}

	var se *StatusError
	if errors.As(lastErr, &se) && se.RateLimited() {
		return RawQuote{}, fmt.Errorf("%s: %v: %w", asset, lastErr, ErrRateLimited)
	}
	return RawQuote{}, fmt.Errorf("%s: %v: %w", asset, lastErr, ErrUnavailable)
}

// call dispatches one upstream request by asset kind.
func (g *Gateway) call(ctx context.Context, asset Asset) (SourceQuote, error) {
	switch asset.Kind() {
	case Equity:
		if g.stocks == nil {
			return SourceQuote{}, fmt.Errorf("no stock-data provider configured: %w", ErrAuthMissing)
		}
		return g.stocks.StockQuote(ctx, asset.ID())
	case Crypto:
		if g.coins == nil {
			return SourceQuote{}, fmt.Errorf("no crypto-data provider configured: %w", ErrAuthMissing)
		}
		return g.coins.CryptoQuote(ctx, asset.ID())
	case Gold:
		if g.gold == nil {
			return SourceQuote{}, fmt.Errorf("no commodity-price provider configured: %w", ErrAuthMissing)
		}
		return g.gold.GoldPrice(ctx)
	default:
		panic(fmt.Sprintf("unknown asset kind %v", asset.Kind()))
	}
}

// transient reports whether an upstream error is worth a retry. NotFound and
// AuthMissing never are: the former is a user input problem, the latter a
// configuration problem. Unclassified errors are assumed to be transport
// failures.
func transient(err error) bool {
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrAuthMissing) {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.Transient()
	}
	return true
}

// RetryAfter parses a Retry-After header value in seconds. It returns zero
// when the header is absent or not a plain delay.
func RetryAfter(resp *http.Response) time.Duration {
	if resp == nil {
		return 0
	}
	var seconds int
	if _, err := fmt.Sscanf(resp.Header.Get("Retry-After"), "%d", &seconds); err != nil || seconds < 0 {
		return 0
	}
	return time.Duration(seconds) * time.Second
}
