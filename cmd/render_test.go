package cmd

import (
	"strings"
	"testing"
	"time"

	"github.com/etnz/capratio"
)

func pair(t *testing.T, big string, bigCap float64, small string, smallCap float64) capratio.RatioResult {
	t.Helper()
	num, err := capratio.ParseAsset(big)
	if err != nil {
		t.Fatal(err)
	}
	den, err := capratio.ParseAsset(small)
	if err != nil {
		t.Fatal(err)
	}
	n := capratio.Valuation{Asset: num, MarketCap: capratio.M(bigCap, capratio.USD), AsOf: time.Now()}
	d := capratio.Valuation{Asset: den, MarketCap: capratio.M(smallCap, capratio.USD), AsOf: time.Now()}
	return capratio.RatioResult{
		Numerator:   n,
		Denominator: d,
		Ratio:       capratio.NewRatio(n.MarketCap, d.MarketCap),
		Rank:        1,
	}
}

func TestGauge(t *testing.T) {
	testCases := []struct {
		name   string
		share  capratio.Percent
		expect string
	}{
		{"Empty", 0, "[          ] 0%"},
		{"Half", 50, "[█████     ] 50%"},
		{"Full", 100, "[██████████] 100%"},
		{"Rounded up", 47, "[█████     ] 47%"},
		{"Clamped above", 120, "[██████████] 100%"},
		{"Clamped below", -5, "[          ] 0%"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := gauge(tc.share, 10); got != tc.expect {
				t.Errorf("gauge(%v) = %q, want %q", tc.share, got, tc.expect)
			}
		})
	}
}

func TestComparisonPlain(t *testing.T) {
	results := []capratio.RatioResult{pair(t, "AAPL", 100, "bitcoin", 40)}
	got := comparisonPlain(results)
	want := "bitcoin AAPL 40\n"
	if got != want {
		t.Errorf("plain output = %q, want %q", got, want)
	}
}

func TestComparisonMarkdown(t *testing.T) {
	results := []capratio.RatioResult{pair(t, "gold", 200, "ethereum", 50)}
	md := comparisonMarkdown(results)

	for _, fragment := range []string{
		"# Market Cap Ratios",
		"| 1 | gold",
		"| 4.00x |",
		"ethereum in gold",
		"] 25%",
	} {
		if !strings.Contains(md, fragment) {
			t.Errorf("markdown missing %q in:\n%s", fragment, md)
		}
	}
}

func TestComparisonMarkdownAnnotations(t *testing.T) {
	r := pair(t, "AAPL", 100, "obscure-coin", 0)
	r.Denominator.NoData = true
	r.Denominator.Stale = true

	md := comparisonMarkdown([]capratio.RatioResult{r})
	if !strings.Contains(md, "obscure-coin (no data) (stale)") {
		t.Errorf("markdown missing the data-quality annotations:\n%s", md)
	}
	if !strings.Contains(md, "| n/a |") {
		t.Errorf("undefined ratio not rendered as n/a:\n%s", md)
	}
}

func TestComparisonDocument(t *testing.T) {
	doc := comparisonDocument([]capratio.RatioResult{pair(t, "AAPL", 100, "bitcoin", 40)})
	if len(doc) != 1 {
		t.Fatalf("got %d pairs, want 1", len(doc))
	}
	p := doc[0]
	if p.Numerator.Asset != "AAPL" || p.Denominator.Asset != "bitcoin" {
		t.Errorf("pair = %s/%s, want AAPL/bitcoin", p.Numerator.Asset, p.Denominator.Asset)
	}
	if p.Percentage != 40 {
		t.Errorf("percentage = %v, want 40", p.Percentage)
	}
	if p.Rank != 1 {
		t.Errorf("rank = %v, want 1", p.Rank)
	}
}
