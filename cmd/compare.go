package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/capratio"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

// defaultTokens is the comparison run when no tokens are given.
var defaultTokens = []string{"ethereum", "bitcoin"}

// compareCmd holds the flags for the 'compare' subcommand.
type compareCmd struct {
	aboveGround string
	plain       bool
	jsonOut     bool
}

func (*compareCmd) Name() string     { return "compare" }
func (*compareCmd) Synopsis() string { return "compare market capitalizations pairwise" }
func (*compareCmd) Usage() string {
	return `mcr compare [-above-ground <tonnes>] [-plain|-json] [token...]

  Compares the market capitalizations of the given assets, largest over
  smallest, one ratio per pair. Tokens are stock tickers (AAPL), CoinGecko
  coin ids (bitcoin), or the word "gold". Defaults to "ethereum bitcoin".

Usage Examples:
# How many Apples fit in the above-ground gold stock?
$ mcr compare AAPL gold

`
}

func (c *compareCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.aboveGround, "above-ground", "", "Override the above-ground gold estimate, in tonnes")
	f.BoolVar(&c.plain, "plain", false, "Plain text output, one line per pair")
	f.BoolVar(&c.jsonOut, "json", false, "JSON output")
}

func (c *compareCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	results, err := c.run(ctx, f.Args())
	if err != nil {
		return fail(err)
	}

	switch {
	case c.jsonOut:
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(comparisonDocument(results)); err != nil {
			return fail(err)
		}
	case c.plain:
		fmt.Print(comparisonPlain(results))
	default:
		printMarkdown(comparisonMarkdown(results))
	}
	return subcommands.ExitSuccess
}

// run resolves the flags into a full comparison.
func (c *compareCmd) run(ctx context.Context, tokens []string) ([]capratio.RatioResult, error) {
	if len(tokens) == 0 {
		tokens = defaultTokens
	}

	store := capratio.NewGoldEstimateStore()
	if c.aboveGround != "" {
		tonnes, err := decimal.NewFromString(c.aboveGround)
		if err != nil {
			return nil, fmt.Errorf("invalid -above-ground value %q: %w", c.aboveGround, err)
		}
		if err := store.Override(capratio.Q(tonnes)); err != nil {
			return nil, err
		}
	}

	g, err := newGateway()
	if err != nil {
		return nil, err
	}
	return capratio.CompareTokens(ctx, g, store, tokens...)
}
