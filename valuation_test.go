package capratio

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func mustAsset(t *testing.T, token string) Asset {
	t.Helper()
	asset, err := ParseAsset(token)
	if err != nil {
		t.Fatalf("ParseAsset(%q): %v", token, err)
	}
	return asset
}

func mustRawQuote(t *testing.T, sq SourceQuote, kind QuantityKind) RawQuote {
	t.Helper()
	quote, err := newRawQuote(sq, kind)
	if err != nil {
		t.Fatalf("newRawQuote: %v", err)
	}
	return quote
}

func TestNormalizeMultipliesPriceByQuantity(t *testing.T) {
	now := time.Now()
	testCases := []struct {
		name      string
		token     string
		price     string
		quantity  string
		kind      QuantityKind
		expectCap string
	}{
		{"Equity", "AAPL", "228.87", "15204137000", Shares, "3479770835190"},
		{"Crypto", "bitcoin", "63578", "19750000", CirculatingSupply, "1255665500000"},
		{"Fractional price", "XYZ", "0.5", "3", Shares, "1.5"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			quote := mustRawQuote(t, SourceQuote{
				UnitPrice: decimal.RequireFromString(tc.price),
				Quantity:  decimal.RequireFromString(tc.quantity),
				AsOf:      now,
			}, tc.kind)

			v := Normalize(mustAsset(t, tc.token), quote, NewGoldEstimateStore())

			if want := decimal.RequireFromString(tc.expectCap); !v.MarketCap.Decimal().Equal(want) {
				t.Errorf("market cap = %s, want %s", v.MarketCap.Decimal(), want)
			}
			if v.MarketCap.Currency() != USD {
				t.Errorf("currency = %q, want %q", v.MarketCap.Currency(), USD)
			}
			if v.Stale {
				t.Errorf("fresh quote flagged stale")
			}
			if v.NoData {
				t.Errorf("valuation flagged NoData with quantity %s", tc.quantity)
			}
		})
	}
}

func TestNormalizeGoldUsesStoreTonnage(t *testing.T) {
	store := NewGoldEstimateStore()
	if err := store.Override(Q(1)); err != nil {
		t.Fatal(err)
	}

	quote := mustRawQuote(t, SourceQuote{
		UnitPrice: decimal.NewFromInt(2000),
		AsOf:      time.Now(),
	}, Tonnes)
	v := Normalize(mustAsset(t, "gold"), quote, store)

	// 1 tonne * 32150.7 oz/tonne * $2000/oz
	want := decimal.RequireFromString("64301400")
	if !v.MarketCap.Decimal().Equal(want) {
		t.Errorf("gold market cap = %s, want %s", v.MarketCap.Decimal(), want)
	}
	if v.NoData {
		t.Errorf("gold valuation flagged NoData")
	}
}

func TestNormalizeGoldGrowsWithPriceAndTonnage(t *testing.T) {
	now := time.Now()
	gold := mustAsset(t, "gold")

	at := func(price int64, tonnes int64) Valuation {
		store := NewGoldEstimateStore()
		if err := store.Override(Q(tonnes)); err != nil {
			t.Fatal(err)
		}
		quote := mustRawQuote(t, SourceQuote{UnitPrice: decimal.NewFromInt(price), AsOf: now}, Tonnes)
		return Normalize(gold, quote, store)
	}

	if !at(2100, 100).MarketCap.GreaterThan(at(2000, 100).MarketCap) {
		t.Errorf("market cap did not grow with the ounce price")
	}
	if !at(2000, 200).MarketCap.GreaterThan(at(2000, 100).MarketCap) {
		t.Errorf("market cap did not grow with the tonnage")
	}
}

func TestNormalizeFlagsStaleQuotes(t *testing.T) {
	aapl := mustAsset(t, "AAPL")
	sq := SourceQuote{UnitPrice: decimal.NewFromInt(100), Quantity: decimal.NewFromInt(10)}

	sq.AsOf = time.Now().Add(-48 * time.Hour)
	if v := Normalize(aapl, mustRawQuote(t, sq, Shares), nil); !v.Stale {
		t.Errorf("two-day-old quote not flagged stale")
	}

	sq.AsOf = time.Now().Add(-time.Hour)
	if v := Normalize(aapl, mustRawQuote(t, sq, Shares), nil); v.Stale {
		t.Errorf("one-hour-old quote flagged stale")
	}
}

func TestNormalizeFlagsMissingQuantity(t *testing.T) {
	quote := mustRawQuote(t, SourceQuote{
		UnitPrice: decimal.NewFromInt(100),
		AsOf:      time.Now(),
	}, CirculatingSupply)
	v := Normalize(mustAsset(t, "obscure-coin"), quote, nil)

	if !v.NoData {
		t.Errorf("zero-supply valuation not flagged NoData")
	}
	if !v.MarketCap.IsZero() {
		t.Errorf("zero-supply market cap = %s, want 0", v.MarketCap.Decimal())
	}
}

func TestNormalizePanicsOnKindMismatch(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("Normalize accepted a shares quote for a crypto asset")
		}
	}()
	quote := mustRawQuote(t, SourceQuote{
		UnitPrice: decimal.NewFromInt(1),
		Quantity:  decimal.NewFromInt(1),
		AsOf:      time.Now(),
	}, Shares)
	Normalize(mustAsset(t, "bitcoin"), quote, nil)
}

func TestNewRawQuoteRejectsNegativeValues(t *testing.T) {
	_, err := newRawQuote(SourceQuote{UnitPrice: decimal.NewFromInt(-1)}, Shares)
	if err == nil {
		t.Errorf("negative price accepted")
	}
	_, err = newRawQuote(SourceQuote{Quantity: decimal.NewFromInt(-1)}, Shares)
	if err == nil {
		t.Errorf("negative quantity accepted")
	}
}
