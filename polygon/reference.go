package polygon

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/etnz/capratio"
	"github.com/shopspring/decimal"
)

// TickerDetails is the subset of Polygon's ticker reference data the engine
// cares about.
//
// https://polygon.io/docs/stocks/get_v3_reference_tickers__ticker
type TickerDetails struct {
	Ticker                      string          `json:"ticker"`
	Name                        string          `json:"name"`
	MarketCap                   decimal.Decimal `json:"market_cap"`
	WeightedSharesOutstanding   decimal.Decimal `json:"weighted_shares_outstanding"`
	ShareClassSharesOutstanding decimal.Decimal `json:"share_class_shares_outstanding"`
}

// TickerDetails fetches the reference details for a stock symbol.
func (c *Client) TickerDetails(ctx context.Context, symbol string) (TickerDetails, error) {
	// {
	//   "status": "OK",
	//   "results": {
	//     "ticker": "AAPL",
	//     "market_cap": 3.38702559949E+12,
	//     "weighted_shares_outstanding": 15204137000,
	//     ...
	//   }
	// }
	body, err := c.get(ctx, "/v3/reference/tickers/"+symbol, nil)
	if err != nil {
		return TickerDetails{}, err
	}

	var payload struct {
		Status  string        `json:"status"`
		Results TickerDetails `json:"results"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return TickerDetails{}, fmt.Errorf("polygon: decode ticker details for %s: %w", symbol, err)
	}
	return payload.Results, nil
}

// StockQuote implements the capratio.StockSource interface: share price from
// the previous-day close, quantity from the outstanding shares count.
//
// Polygon publishes two share counts; the weighted count is the one matching
// the official market cap, with the share-class count as a fallback. A ticker
// with neither yields a zero quantity, which the engine treats as the
// "no data" sentinel rather than an error.
func (c *Client) StockQuote(ctx context.Context, symbol string) (capratio.SourceQuote, error) {
	details, err := c.TickerDetails(ctx, symbol)
	if err != nil {
		return capratio.SourceQuote{}, err
	}

	price, asOf, err := c.PrevClose(ctx, symbol)
	if err != nil {
		return capratio.SourceQuote{}, err
	}

	shares := details.WeightedSharesOutstanding
	if shares.IsZero() {
		shares = details.ShareClassSharesOutstanding
	}

	return capratio.SourceQuote{UnitPrice: price, Quantity: shares, AsOf: asOf}, nil
}
