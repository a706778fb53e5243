package rebalance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSellStrategyAdjustments(t *testing.T) {
	// Two stocks at 50/50 of a 10,000 portfolio, targets 25/75: the first
	// must shed 2,500 and the second absorb it.
	stocks := []CalculatedStock{
		calcStock("a", 25, 5000),
		calcStock("b", 75, 5000),
	}
	results := NewSellStrategy(stocks, KRW).Calculate()
	require.Len(t, results, 2)

	assert.Equal(t, "2500", results[0].Adjustment.Text())
	assert.Equal(t, "-2500", results[1].Adjustment.Text())
	// Sells fund buys exactly when the targets sum to 100.
	assert.True(t, results[0].Adjustment.Add(results[1].Adjustment).IsZero())
}

func TestSellStrategyAtTarget(t *testing.T) {
	stocks := []CalculatedStock{
		calcStock("a", 40, 4000),
		calcStock("b", 60, 6000),
	}
	for _, r := range NewSellStrategy(stocks, KRW).Calculate() {
		assert.True(t, r.Adjustment.IsZero(), "stock %s", r.StockID)
	}
}

func TestSellStrategyMixedCurrencyPortfolio(t *testing.T) {
	// A dual-currency state straight from a calculation pass must rebalance
	// in the reporting denomination without blowing up.
	state := testEngine().CalculatePortfolioState(testRequest())

	var results []RebalanceResult
	require.NotPanics(t, func() {
		results = NewSellStrategy(state.Stocks, KRW).Calculate()
	})
	require.Len(t, results, 2)

	// Won values are 1,000 and 20,000; 50/50 targets on the 21,000 total
	// put both at 10,500.
	assert.Equal(t, "-9500", results[0].Adjustment.Text())
	assert.Equal(t, "9500", results[1].Adjustment.Text())
	assert.Equal(t, KRW, results[1].Adjustment.Currency())
}

func TestSellStrategyRatiosTakenAsGiven(t *testing.T) {
	// Targets summing to 50 are not normalized: half the portfolio value is
	// marked as excess.
	stocks := []CalculatedStock{
		calcStock("a", 25, 5000),
		calcStock("b", 25, 5000),
	}
	results := NewSellStrategy(stocks, KRW).Calculate()
	assert.Equal(t, "2500", results[0].Adjustment.Text())
	assert.Equal(t, "2500", results[1].Adjustment.Text())
}

func TestSellStrategyEmptyPortfolio(t *testing.T) {
	assert.Empty(t, NewSellStrategy(nil, KRW).Calculate())
}
