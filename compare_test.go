package capratio

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

// scenarioGateway quotes a fixed universe: AAPL at $2 x 3 shares, bitcoin at
// $5 x 4 coins, gold at $1 per ounce.
func scenarioGateway() *Gateway {
	return NewGateway(
		stockFunc(func(ctx context.Context, symbol string) (SourceQuote, error) {
			return quoteOf(2, 3), nil
		}),
		cryptoFunc(func(ctx context.Context, id string) (SourceQuote, error) {
			return quoteOf(5, 4), nil
		}),
		goldFunc(func(ctx context.Context) (SourceQuote, error) {
			return SourceQuote{UnitPrice: decimal.NewFromInt(1), AsOf: time.Now()}, nil
		}),
	)
}

func TestCompareTokensEndToEnd(t *testing.T) {
	store := NewGoldEstimateStore()
	if err := store.Override(Q(200000)); err != nil {
		t.Fatal(err)
	}

	results, err := CompareTokens(context.Background(), scenarioGateway(), store, "AAPL", "bitcoin", "gold")
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}

	// Gold at $1/oz x 200000t x 32150.7 oz/t dwarfs the others.
	top := results[0]
	if top.Numerator.Asset.Kind() != Gold {
		t.Errorf("largest asset = %s, want gold", top.Numerator.Asset)
	}
	if top.Rank != 1 {
		t.Errorf("top rank = %d, want 1", top.Rank)
	}
	for i, r := range results {
		if !r.Ratio.Defined() {
			t.Errorf("results[%d] ratio undefined: %s/%s", i, r.Numerator.Asset, r.Denominator.Asset)
		}
	}
}

func TestCompareTokensRequiresTwoTokens(t *testing.T) {
	_, err := CompareTokens(context.Background(), scenarioGateway(), NewGoldEstimateStore(), "bitcoin")
	if !errors.Is(err, ErrInsufficientInput) {
		t.Errorf("err = %v, want %v", err, ErrInsufficientInput)
	}
}

func TestCompareTokensRejectsBadToken(t *testing.T) {
	_, err := CompareTokens(context.Background(), scenarioGateway(), NewGoldEstimateStore(), "bitcoin", "bad token")
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("err = %v, want %v", err, ErrInvalidToken)
	}
}

func TestCompareTokensAbortsWhenAProviderIsMissing(t *testing.T) {
	// Crypto only: asking for an equity must fail the whole run.
	g := NewGateway(nil, cryptoFunc(func(ctx context.Context, id string) (SourceQuote, error) {
		return quoteOf(5, 4), nil
	}), nil)

	results, err := CompareTokens(context.Background(), g, NewGoldEstimateStore(), "AAPL", "bitcoin")
	if !errors.Is(err, ErrAuthMissing) {
		t.Errorf("err = %v, want %v", err, ErrAuthMissing)
	}
	if results != nil {
		t.Errorf("got results despite the failure: %v", results)
	}
}

func TestCompareTokensSharesOneGoldEstimate(t *testing.T) {
	store := NewGoldEstimateStore()
	results, err := CompareTokens(context.Background(), scenarioGateway(), store, "gold", "bitcoin")
	if err != nil {
		t.Fatal(err)
	}
	// The run consumed the estimate, a late override must bounce.
	if err := store.Override(Q(1)); !errors.Is(err, ErrEstimateConsumed) {
		t.Errorf("override after a comparison: err = %v, want %v", err, ErrEstimateConsumed)
	}
	want := DefaultGoldTonnes.Mul(OuncesPerTonne)
	if got := results[0].Numerator.MarketCap.Decimal(); !got.Equal(want) {
		t.Errorf("gold market cap = %s, want %s", got, want)
	}
}
