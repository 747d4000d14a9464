package capratio

import (
	"fmt"
	"slices"
	"sort"
)

// RatioResult is one pairwise comparison. The numerator is always the larger
// (or equal, earlier-supplied) valuation, so a defined ratio is >= 1.
type RatioResult struct {
	Numerator   Valuation
	Denominator Valuation
	Ratio       Ratio
	// Rank is the numerator's 1-based position in the descending ordering of
	// the compared valuations; the overall winner has rank 1.
	Rank int
}

// Share returns the denominator's market cap as a percentage of the
// numerator's, in [0, 100]. It returns 0 when the numerator is zero.
func (r RatioResult) Share() Percent {
	if r.Numerator.MarketCap.IsZero() {
		return 0
	}
	q := r.Denominator.MarketCap.Decimal().Div(r.Numerator.MarketCap.Decimal())
	f, _ := q.Mul(newDecimal(100)).Float64()
	return Percent(f)
}

// Compare ranks valuations by descending market cap and emits one
// RatioResult per pair, larger over smaller.
//
// The sort is stable: equal market caps keep the caller's input order, so the
// output is deterministic. A pair whose denominator is zero is still emitted,
// with an undefined ratio, so the caller can render "no comparison possible"
// instead of crashing.
//
// It fails with ErrInsufficientInput when fewer than two valuations are
// supplied.
func Compare(valuations []Valuation) ([]RatioResult, error) {
	if len(valuations) < 2 {
		return nil, fmt.Errorf("got %d valuation(s): %w", len(valuations), ErrInsufficientInput)
	}

	ranked := slices.Clone(valuations)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].MarketCap.GreaterThan(ranked[j].MarketCap)
	})

	results := make([]RatioResult, 0, len(ranked)*(len(ranked)-1)/2)
	for i := range ranked {
		for j := i + 1; j < len(ranked); j++ {
			results = append(results, RatioResult{
				Numerator:   ranked[i],
				Denominator: ranked[j],
				Ratio:       NewRatio(ranked[i].MarketCap, ranked[j].MarketCap),
				Rank:        i + 1,
			})
		}
	}
	return results, nil
}
