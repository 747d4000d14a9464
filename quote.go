package capratio

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// QuantityKind tells what the quantity of a RawQuote counts.
type QuantityKind int

const (
	Shares            QuantityKind = iota // outstanding shares of an equity
	CirculatingSupply                     // circulating units of a cryptocurrency
	Tonnes                                // metric tonnes of above-ground gold
)

// String implements the fmt.Stringer interface.
func (k QuantityKind) String() string {
	switch k {
	case Shares:
		return "shares"
	case CirculatingSupply:
		return "circulating-supply"
	case Tonnes:
		return "tonnes"
	default:
		return fmt.Sprintf("QuantityKind(%d)", int(k))
	}
}

// kindOf maps an asset kind to the quantity semantics its quotes must carry.
func kindOf(k Kind) QuantityKind {
	switch k {
	case Equity:
		return Shares
	case Crypto:
		return CirculatingSupply
	case Gold:
		return Tonnes
	default:
		panic(fmt.Sprintf("no quantity kind for asset kind %v", k))
	}
}

// SourceQuote is the neutral payload a valuation source hands back: a unit
// price in USD, the matching quantity, and the provider's timestamp. Provider
// packages produce SourceQuotes; only the Gateway turns them into RawQuotes.
type SourceQuote struct {
	UnitPrice decimal.Decimal
	Quantity  decimal.Decimal
	AsOf      time.Time
}

// RawQuote is the provider payload reduced to what normalization needs.
// RawQuotes are produced by the Gateway and nowhere else.
//
// A zero Quantity is not an error: it is the "no data" sentinel and
// normalizes to a zero valuation flagged as such. For Tonnes quotes the
// Quantity field is unused, the tonnage comes from the GoldEstimateStore.
type RawQuote struct {
	UnitPrice    Money
	Quantity     Quantity
	QuantityKind QuantityKind
	AsOf         time.Time
}

// newRawQuote validates and assembles a RawQuote from a source payload.
func newRawQuote(sq SourceQuote, kind QuantityKind) (RawQuote, error) {
	if sq.UnitPrice.IsNegative() || sq.Quantity.IsNegative() {
		return RawQuote{}, fmt.Errorf("negative price or quantity in provider payload: %w", ErrUnavailable)
	}
	return RawQuote{
		UnitPrice:    M(sq.UnitPrice, USD),
		Quantity:     Q(sq.Quantity),
		QuantityKind: kind,
		AsOf:         sq.AsOf,
	}, nil
}
