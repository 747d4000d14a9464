package capratio

import (
	"context"
	"fmt"
)

// CompareTokens runs the whole pipeline: resolve each token, fetch all quotes
// concurrently, normalize to USD, and compute the pairwise ratios.
//
// The comparison is all-or-nothing: a token that fails to resolve or an asset
// that fails to fetch aborts the run with the offending token wrapped in the
// error, and no ratios are returned.
func CompareTokens(ctx context.Context, g *Gateway, store *GoldEstimateStore, tokens ...string) ([]RatioResult, error) {
	if len(tokens) < 2 {
		return nil, fmt.Errorf("got %d token(s): %w", len(tokens), ErrInsufficientInput)
	}

	assets := make([]Asset, len(tokens))
	for i, token := range tokens {
		asset, err := ParseAsset(token)
		if err != nil {
			return nil, err
		}
		assets[i] = asset
	}

	valuations, err := g.Valuations(ctx, store, assets...)
	if err != nil {
		return nil, err
	}
	return Compare(valuations)
}
