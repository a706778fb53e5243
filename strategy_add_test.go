package rebalance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func calcStock(id string, target float64, current float64) CalculatedStock {
	return CalculatedStock{
		Stock: Stock{ID: id, Name: id, TargetRatio: P(target), CurrentPrice: M(100, KRW)},
		Metrics: Metrics{
			CurrentAmount:    M(current, KRW),
			CurrentAmountKRW: M(current, KRW),
		},
	}
}

// allocated sums the buy amounts of a recommendation list.
func allocated(results []RebalanceResult) Money {
	var total Money
	for _, r := range results {
		total = total.Add(r.FinalBuyAmount)
	}
	return total
}

func TestAddStrategyUnderweightFirst(t *testing.T) {
	// A is far below its 50% target, B is above it. All the new cash must
	// flow to A.
	stocks := []CalculatedStock{
		calcStock("a", 50, 1_000_000),
		calcStock("b", 50, 3_000_000),
	}
	investment := M(1_000_000, KRW)
	results := NewAddStrategy(stocks, investment).Calculate()
	require.Len(t, results, 2)

	assert.Equal(t, "1000000", results[0].FinalBuyAmount.Text())
	assert.True(t, results[1].FinalBuyAmount.IsZero())
	assert.Equal(t, "100.00%", results[0].BuyRatio.String())
	assert.Equal(t, "10000", results[0].FinalBuyQuantity.String())
	assert.True(t, allocated(results).Equal(investment))
}

func TestAddStrategyNeverExceedsInvestment(t *testing.T) {
	stocks := []CalculatedStock{
		calcStock("a", 40, 123_456),
		calcStock("b", 35, 789_012),
		calcStock("c", 25, 0),
	}
	investment := M(500_000, KRW)
	results := NewAddStrategy(stocks, investment).Calculate()
	assert.True(t, allocated(results).LessThanOrEqual(investment))
}

func TestAddStrategyZeroInvestment(t *testing.T) {
	stocks := []CalculatedStock{calcStock("a", 50, 1000), calcStock("b", 50, 1000)}
	for _, investment := range []Money{M(0, KRW), M(-100, KRW)} {
		results := NewAddStrategy(stocks, investment).Calculate()
		require.Len(t, results, 2)
		for _, r := range results {
			assert.True(t, r.FinalBuyAmount.IsZero())
			assert.True(t, r.FinalBuyQuantity.IsZero())
			assert.True(t, r.BuyRatio.IsZero())
		}
	}
}

func TestAddStrategyZeroTargetRatios(t *testing.T) {
	stocks := []CalculatedStock{calcStock("a", 0, 1000), calcStock("b", 0, 1000)}
	results := NewAddStrategy(stocks, M(1000, KRW)).Calculate()
	assert.True(t, allocated(results).IsZero())
}

func TestAddStrategyFixedBuyServedFirst(t *testing.T) {
	fixed := calcStock("a", 50, 0)
	fixed.FixedBuyEnabled = true
	fixed.FixedBuyAmount = M(300_000, KRW)
	open := calcStock("b", 50, 0)

	results := NewAddStrategy([]CalculatedStock{fixed, open}, M(1_000_000, KRW)).Calculate()
	assert.Equal(t, "300000", results[0].FinalBuyAmount.Text())
	assert.Equal(t, "700000", results[1].FinalBuyAmount.Text())
}

func TestAddStrategyFixedBuyCappedByInvestment(t *testing.T) {
	fixed := calcStock("a", 50, 0)
	fixed.FixedBuyEnabled = true
	fixed.FixedBuyAmount = M(2_000_000, KRW)
	open := calcStock("b", 50, 0)

	investment := M(1_000_000, KRW)
	results := NewAddStrategy([]CalculatedStock{fixed, open}, investment).Calculate()
	// The cap eats the whole pool; the open stock gets nothing.
	assert.True(t, results[0].FinalBuyAmount.Equal(investment))
	assert.True(t, results[1].FinalBuyAmount.IsZero())
}

func TestAddStrategyMixedCurrencyPortfolio(t *testing.T) {
	// A portfolio holding a won-priced and a dollar-priced stock must
	// allocate in the investment's denomination without blowing up.
	state := testEngine().CalculatePortfolioState(testRequest())
	investment := M(19_000, KRW)

	var results []RebalanceResult
	require.NotPanics(t, func() {
		results = NewAddStrategy(state.Stocks, investment).Calculate()
	})
	require.Len(t, results, 2)

	// Totals in won: 1,000 + 20,000 now, 40,000 after investing; 50/50
	// targets put both at 20,000, so only the won stock is short.
	assert.Equal(t, "19000", results[0].FinalBuyAmount.Text())
	assert.True(t, results[1].FinalBuyAmount.IsZero())
	assert.Equal(t, "190", results[0].FinalBuyQuantity.String())
	assert.True(t, allocated(results).Equal(investment))
}

func TestAddStrategyRoundingNeverOvershoots(t *testing.T) {
	// Shortfall shares of 1/6, 1/6 and 2/3 each round up on the last digit;
	// the summed allocations must still stay within the investment.
	stocks := []CalculatedStock{
		calcStock("a", 10, 0),
		calcStock("b", 10, 0),
		calcStock("c", 40, 0),
	}
	investment := M(6, KRW)
	results := NewAddStrategy(stocks, investment).Calculate()
	assert.True(t, allocated(results).LessThanOrEqual(investment),
		"allocated %s over %s", allocated(results).Text(), investment.Text())
}

func TestAddStrategyAllAtTargetFallsBackToRatios(t *testing.T) {
	// Both stocks already exceed their post-investment target, so the pool
	// splits by target-ratio weight instead.
	stocks := []CalculatedStock{
		calcStock("a", 10, 5_000_000),
		calcStock("b", 30, 5_000_000),
	}
	results := NewAddStrategy(stocks, M(1000, KRW)).Calculate()
	assert.Equal(t, "250", results[0].FinalBuyAmount.Text())
	assert.Equal(t, "750", results[1].FinalBuyAmount.Text())
}
