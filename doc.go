// Package capratio compares market capitalizations across heterogeneous
// asset classes: publicly traded equities, cryptocurrencies, and gold.
//
// Every asset is reduced to a single comparable figure, its market
// capitalization in USD:
//   - Equities: share price times outstanding shares (Polygon.io).
//   - Cryptocurrencies: coin price times circulating supply (CoinGecko).
//   - Gold: price per troy ounce times the estimated above-ground stock,
//     converted from metric tonnes.
//
// The package is organised around a small pipeline:
//   - ParseAsset classifies a user token into an asset kind, syntactically
//     and without any network access.
//   - Gateway fetches one RawQuote per asset from the external providers,
//     with a per-invocation cache, request coalescing, and retry with
//     exponential backoff on transient failures.
//   - Normalize converts a RawQuote into a Valuation in USD, applying the
//     kind-specific quantity semantics.
//   - Compare ranks valuations and produces pairwise RatioResults with
//     deterministic rounding.
//
// All arithmetic is exact decimal arithmetic; comparisons are all-or-nothing
// and any fatal fetch error aborts the run without partial output. The
// package computes and returns structured values only, formatting and
// process exit are the concern of the mcr command-line tool built on top.
package capratio
