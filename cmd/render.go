package cmd

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/capratio"
)

// printMarkdown renders markdown to the terminal, falling back to the raw
// text if the renderer cannot be built.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle())
	if err != nil {
		fmt.Print(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}

// gaugeWidth is the character width of the textual share gauge.
const gaugeWidth = 40

// gauge renders a share in [0, 100] as a textual bar, e.g.
// "[████████            ] 40%".
func gauge(share capratio.Percent, width int) string {
	ratio := float64(share) / 100
	ratio = math.Min(math.Max(ratio, 0), 1)
	filled := int(math.Round(ratio * float64(width)))
	return fmt.Sprintf("[%s%s] %d%%",
		strings.Repeat("█", filled),
		strings.Repeat(" ", width-filled),
		int(math.Round(ratio*100)),
	)
}

// annotate marks a valuation's asset with its data-quality caveats.
func annotate(v capratio.Valuation) string {
	name := v.Asset.String()
	if v.NoData {
		name += " (no data)"
	}
	if v.Stale {
		name += " (stale)"
	}
	return name
}

// comparisonMarkdown renders the pairwise results as a markdown report, one
// section per pair with the smaller asset's share of the larger one.
func comparisonMarkdown(results []capratio.RatioResult) string {
	var b strings.Builder
	b.WriteString("# Market Cap Ratios\n\n")
	b.WriteString("| # | Larger | Smaller | Ratio | Share |\n")
	b.WriteString("|---|--------|---------|-------|-------|\n")
	for _, r := range results {
		fmt.Fprintf(&b, "| %d | %s %s | %s %s | %s | %.2f%% |\n",
			r.Rank,
			annotate(r.Numerator), r.Numerator.MarketCap,
			annotate(r.Denominator), r.Denominator.MarketCap,
			r.Ratio,
			float64(r.Share()),
		)
	}
	b.WriteString("\n")
	for _, r := range results {
		fmt.Fprintf(&b, "%s in %s\n\n    %s\n\n",
			r.Denominator.Asset, r.Numerator.Asset, gauge(r.Share(), gaugeWidth))
	}
	return b.String()
}

// comparisonPlain prints one "smaller larger percentage" line per pair.
func comparisonPlain(results []capratio.RatioResult) string {
	var b strings.Builder
	for _, r := range results {
		fmt.Fprintf(&b, "%s %s %d\n",
			r.Denominator.Asset.ID(), r.Numerator.Asset.ID(), int(r.Share()))
	}
	return b.String()
}

// jsonSide is one side of a pair in the JSON document.
type jsonSide struct {
	Asset     string         `json:"asset"`
	MarketCap capratio.Money `json:"market_cap"`
	AsOf      string         `json:"as_of"`
	Stale     bool           `json:"stale,omitempty"`
	NoData    bool           `json:"no_data,omitempty"`
}

// jsonPair is one pairwise result in the JSON document.
type jsonPair struct {
	Rank        int            `json:"rank"`
	Numerator   jsonSide       `json:"numerator"`
	Denominator jsonSide       `json:"denominator"`
	Ratio       capratio.Ratio `json:"ratio"`
	Percentage  float64        `json:"percentage"`
}

// comparisonDocument shapes the results for -json output.
func comparisonDocument(results []capratio.RatioResult) []jsonPair {
	side := func(v capratio.Valuation) jsonSide {
		return jsonSide{
			Asset:     v.Asset.ID(),
			MarketCap: v.MarketCap,
			AsOf:      v.AsOf.UTC().Format("2006-01-02T15:04:05Z07:00"),
			Stale:     v.Stale,
			NoData:    v.NoData,
		}
	}
	pairs := make([]jsonPair, 0, len(results))
	for _, r := range results {
		pairs = append(pairs, jsonPair{
			Rank:        r.Rank,
			Numerator:   side(r.Numerator),
			Denominator: side(r.Denominator),
			Ratio:       r.Ratio,
			Percentage:  float64(r.Share()),
		})
	}
	return pairs
}
