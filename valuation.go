package capratio

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// OuncesPerTonne converts metric tonnes of gold to troy ounces.
var OuncesPerTonne = decimal.RequireFromString("32150.7")

// Freshness is how old a quote may be before its valuation is flagged stale.
// Staleness annotates the result for display, it never blocks a comparison.
const Freshness = 24 * time.Hour

// Valuation is an asset reduced to its market capitalization in USD.
// Valuations are immutable once produced.
type Valuation struct {
	Asset     Asset
	MarketCap Money
	AsOf      time.Time
	Stale     bool
	NoData    bool
}

// Normalize converts a RawQuote into a USD Valuation.
//
// Equities and cryptocurrencies multiply unit price by quantity. Gold ignores
// the quote's quantity and uses the store's tonnage converted to troy ounces;
// the read freezes the store for the rest of the run.
//
// A QuantityKind that does not match the asset kind is a Gateway dispatch bug
// and panics; it is not a recoverable condition.
//
// A zero quantity is the providers' "no data" sentinel: it yields a zero
// market cap flagged NoData, never an error.
func Normalize(asset Asset, quote RawQuote, store *GoldEstimateStore) Valuation {
	if want := kindOf(asset.Kind()); quote.QuantityKind != want {
		panic(fmt.Sprintf("normalize %s: quote carries %v, want %v", asset, quote.QuantityKind, want))
	}

	quantity := quote.Quantity
	if asset.Kind() == Gold {
		tonnes := store.Get().Tonnes
		quantity = tonnes.Mul(Q(OuncesPerTonne))
	}

	return Valuation{
		Asset:     asset,
		MarketCap: quote.UnitPrice.Mul(quantity),
		AsOf:      quote.AsOf,
		Stale:     time.Since(quote.AsOf) > Freshness,
		NoData:    quantity.IsZero(),
	}
}
