package capratio

import "github.com/shopspring/decimal"

// RatioPlaces is the display precision for ratios, in decimal places.
// Rounding is half-to-even. It is a policy variable rather than a constant
// so a caller with different display needs can adjust it once at startup.
var RatioPlaces int32 = 2

// Ratio is the quotient of two market capitalizations. A ratio over a zero
// denominator is Undefined rather than an error: the comparison is still
// reported, just not as a number.
type Ratio struct {
	value   decimal.Decimal
	defined bool
}

// NewRatio computes num/den. The result is undefined when den is zero.
func NewRatio(num, den Money) Ratio {
	if den.IsZero() {
		return Ratio{}
	}
	return Ratio{value: num.Decimal().Div(den.Decimal()), defined: true}
}

// Defined reports whether the ratio has a numeric value.
func (r Ratio) Defined() bool { return r.defined }

// Decimal returns the exact, unrounded quotient. It returns the zero decimal
// for an undefined ratio.
func (r Ratio) Decimal() decimal.Decimal { return r.value }

// Rounded returns the quotient rounded to RatioPlaces decimal places using
// round-half-to-even.
func (r Ratio) Rounded() decimal.Decimal { return r.value.RoundBank(RatioPlaces) }

// String implements the fmt.Stringer interface, e.g. "3.20x". An undefined
// ratio renders as "n/a".
func (r Ratio) String() string {
	if !r.defined {
		return "n/a"
	}
	return r.Rounded().StringFixed(RatioPlaces) + "x"
}

// MarshalJSON implements the json.Marshaler interface. An undefined ratio
// marshals as null.
func (r Ratio) MarshalJSON() ([]byte, error) {
	if !r.defined {
		return []byte("null"), nil
	}
	return r.Rounded().MarshalJSON()
}
