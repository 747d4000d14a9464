package capratio

import (
	"encoding/json"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// USD is the only currency valuations are expressed in.
const USD = "USD"

// Money represents a monetary value with exact decimal arithmetic.
type Money struct {
	value decimal.Decimal // as major unit value
	cur   string
}

// M builds a Money from any numeric value.
func M[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T, currency string) Money {
	return Money{value: newDecimal(value), cur: currency}
}

// currency returns the money's full currency metadata.
func (m Money) currency() money.Currency {
	// to get a never nil currency I need to call the Money constructor
	return *money.New(0, m.cur).Currency()
}

// String returns the value formatted with the currency's symbol and
// separators, e.g. "$292,802,217,292.00".
func (m Money) String() string {
	cur := m.currency()
	dec := m.value.Shift(int32(cur.Fraction))
	return cur.Formatter().Format(dec.IntPart())
}

// Decimal returns the underlying exact decimal value in major units.
func (m Money) Decimal() decimal.Decimal { return m.value }

func (m Money) Currency() string           { return m.cur }
func (m Money) Equal(n Money) bool         { return m.value.Equal(n.value) && m.cur == n.cur }
func (m Money) IsZero() bool               { return m.value.IsZero() }
func (m Money) IsNegative() bool           { return m.value.IsNegative() }
func (m Money) LessThan(n Money) bool      { return m.value.LessThan(n.value) }
func (m Money) GreaterThan(n Money) bool   { return m.value.GreaterThan(n.value) }
func (m Money) Mul(q Quantity) Money       { return Money{value: m.value.Mul(q.value), cur: m.cur} }

// MarshalJSON implements the json.Marshaler interface. The amount is rounded
// to the currency's fraction for display purposes.
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Amount   decimal.Decimal `json:"amount"`
		Currency string          `json:"currency"`
	}{
		Amount:   m.value.Round(int32(m.currency().Fraction)),
		Currency: m.cur,
	})
}
