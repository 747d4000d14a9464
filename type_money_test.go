package capratio

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func TestMoneyString(t *testing.T) {
	testCases := []struct {
		name   string
		value  float64
		expect string
	}{
		{"Cents", 2559.15, "$2,559.15"},
		{"Round", 100, "$100.00"},
		{"Large", 292802217292, "$292,802,217,292.00"},
		{"Zero", 0, "$0.00"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := M(tc.value, USD).String(); got != tc.expect {
				t.Errorf("M(%v).String() = %q, want %q", tc.value, got, tc.expect)
			}
		})
	}
}

func TestMoneyMulKeepsExactness(t *testing.T) {
	// 0.1 * 3 is exactly 0.3 in decimal arithmetic.
	got := M(decimal.RequireFromString("0.1"), USD).Mul(Q(3))
	if want := decimal.RequireFromString("0.3"); !got.Decimal().Equal(want) {
		t.Errorf("0.1 * 3 = %s, want %s", got.Decimal(), want)
	}
}

func TestMoneyMarshalJSON(t *testing.T) {
	b, err := json.Marshal(M(decimal.RequireFromString("1234.567"), USD))
	if err != nil {
		t.Fatal(err)
	}
	want := `{"amount":"1234.57","currency":"USD"}`
	if string(b) != want {
		t.Errorf("marshal = %s, want %s", b, want)
	}
}

func TestMoneyComparisons(t *testing.T) {
	small, big := M(1, USD), M(2, USD)
	if !small.LessThan(big) || !big.GreaterThan(small) {
		t.Errorf("comparison operators disagree: %s vs %s", small, big)
	}
	if !M(0, USD).IsZero() {
		t.Errorf("zero not detected")
	}
	if !M(-1, USD).IsNegative() {
		t.Errorf("negative not detected")
	}
}
