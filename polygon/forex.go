package polygon

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/capratio"
	"github.com/shopspring/decimal"
)

// goldTicker is Polygon's forex ticker for the USD price of one troy ounce
// of gold.
const goldTicker = "C:XAUUSD"

// PrevClose returns the previous trading day's closing price for a ticker,
// together with the bar's timestamp.
func (c *Client) PrevClose(ctx context.Context, ticker string) (price decimal.Decimal, asOf time.Time, err error) {
	// {
	//   "ticker": "C:XAUUSD",
	//   "resultsCount": 1,
	//   "results": [ { "c": 2559.15, "t": 1726703999999, ... } ],
	//   "status": "OK"
	// }
	body, err := c.get(ctx, "/v2/aggs/ticker/"+ticker+"/prev", nil)
	if err != nil {
		return price, asOf, err
	}

	var jobj any
	if err := json.Unmarshal(body, &jobj); err != nil {
		return price, asOf, fmt.Errorf("polygon: decode aggregates for %s: %w", ticker, err)
	}

	close, err := extractNumber(jobj, "$.results[0].c")
	if err != nil {
		// An empty results list means Polygon has no bar for this ticker.
		return price, asOf, fmt.Errorf("polygon: no previous close for %s: %w", ticker, capratio.ErrNotFound)
	}
	millis, err := extractNumber(jobj, "$.results[0].t")
	if err == nil {
		asOf = time.UnixMilli(int64(millis)).UTC()
	}
	return decimal.NewFromFloat(close), asOf, nil
}

// extractNumber pulls a single float out of a loosely-typed JSON document.
func extractNumber(jobj any, path string) (float64, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return 0, err
	}
	// jsonpath is never clear about whether it returns a list of 1 answer,
	// or a single answer: keep the first one if any.
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	val, ok := jval.(float64)
	if !ok {
		return 0, fmt.Errorf("%s is %T, not a number", path, jval)
	}
	return val, nil
}

// GoldPrice implements the capratio.GoldSource interface: the previous-day
// USD close for one troy ounce. The quantity is left zero, the above-ground
// tonnage is supplied by the gold estimate store.
func (c *Client) GoldPrice(ctx context.Context) (capratio.SourceQuote, error) {
	price, asOf, err := c.PrevClose(ctx, goldTicker)
	if err != nil {
		return capratio.SourceQuote{}, err
	}
	return capratio.SourceQuote{UnitPrice: price, AsOf: asOf}, nil
}
