// Package quote fetches live prices and the won/dollar exchange rate from
// the Yahoo Finance chart API, behind a small disk cache so repeated CLI
// runs within the same hour do not hammer the endpoint.
package quote

import (
	"fmt"
	"math"
	"net/http"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const chartURL = "https://query2.finance.yahoo.com/v8/finance/chart/%s?interval=1h&range=1d"

// pricePath extracts the last traded price from a chart response.
const pricePath = "$.chart.result[0].meta.regularMarketPrice"

// Client fetches quotes over an hourly-cached HTTP client.
type Client struct {
	http *http.Client
	log  zerolog.Logger
}

// NewClient builds a quote client logging through the given logger.
func NewClient(log zerolog.Logger) *Client {
	log = log.With().Str("service", "quote").Logger()
	return &Client{http: hourlyCachingClient(log), log: log}
}

// LatestPrice returns the latest market price for a Yahoo symbol
// (e.g. "005930.KS", "AAPL").
func (c *Client) LatestPrice(symbol string) (decimal.Decimal, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return decimal.Zero, fmt.Errorf("empty symbol")
	}
	val, err := c.fetchChartValue(symbol)
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromFloat(val), nil
}

// LatestKRWPerUSD returns the current won-per-dollar exchange rate.
func (c *Client) LatestKRWPerUSD() (decimal.Decimal, error) {
	val, err := c.fetchChartValue("USDKRW=X")
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromFloat(val), nil
}

// fetchChartValue queries the chart endpoint for one symbol and extracts the
// regular market price with a jsonpath, tolerating the API's habit of
// wrapping single answers in lists.
func (c *Client) fetchChartValue(symbol string) (float64, error) {
	addr := fmt.Sprintf(chartURL, symbol)
	var jobj any
	if err := jwget(c.http, addr, &jobj); err != nil {
		return math.NaN(), fmt.Errorf("error in wget %q: %w", symbol, err)
	}
	jval, err := jsonpath.Get(pricePath, jobj)
	if err != nil {
		return math.NaN(), fmt.Errorf("error parsing %q: %q %w", symbol, pricePath, err)
	}
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	val, ok := jval.(float64)
	if !ok {
		return math.NaN(), fmt.Errorf("error parsing %q: %q not a float: %v", symbol, pricePath, jval)
	}
	if val == 0 {
		return math.NaN(), fmt.Errorf("empty price for %q", symbol)
	}
	return val, nil
}

// userAgent identifies the client; the chart endpoint rejects anonymous requests.
type userAgent struct {
	base http.RoundTripper
}

func (u *userAgent) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Set("User-Agent", "rebalance/1.0")
	return u.base.RoundTrip(req)
}
