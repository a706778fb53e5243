package rebalance

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randomstrangerpassenger/rebalance/cache"
)

func testRequest() StateRequest {
	krw := &Stock{
		ID:           "krw-stock",
		Name:         "Samsung",
		Sector:       "Tech",
		TargetRatio:  P(50),
		CurrentPrice: M(100, KRW),
		Transactions: []Transaction{tx(TxBuy, "2025-01-10", 10, 100)},
	}
	usd := &Stock{
		ID:           "usd-stock",
		Name:         "Apple",
		Sector:       "Tech",
		TargetRatio:  P(50),
		CurrentPrice: M(10, USD),
		Transactions: []Transaction{
			{Type: TxBuy, Date: MustParseDate("2025-01-10"), Quantity: Q(2), Price: M(10, USD)},
		},
	}
	return StateRequest{Stocks: []*Stock{krw, usd}, ExchangeRate: Q(1000), Currency: KRW}
}

func TestCalculatePortfolioState(t *testing.T) {
	state := testEngine().CalculatePortfolioState(testRequest())
	require.Len(t, state.Stocks, 2)

	first := state.Stocks[0]
	assert.Equal(t, "1000", first.CurrentAmount.Text())
	assert.Equal(t, "1000", first.CurrentAmountKRW.Text())
	assert.Equal(t, "1", first.CurrentAmountUSD.Text())

	second := state.Stocks[1]
	assert.Equal(t, "20", second.CurrentAmount.Text())
	assert.Equal(t, "20000", second.CurrentAmountKRW.Text())

	// The total sums the won denomination of every stock.
	assert.Equal(t, "21000", state.CurrentTotal.Text())
	assert.Equal(t, KRW, state.CurrentTotal.Currency())
}

func TestCalculatePortfolioStateZeroRate(t *testing.T) {
	req := testRequest()
	req.ExchangeRate = Q(0)
	state := testEngine().CalculatePortfolioState(req)
	// Without a usable rate the converted denominations are zero; the
	// native one survives.
	assert.Equal(t, "1000", state.Stocks[0].CurrentAmount.Text())
	assert.True(t, state.Stocks[0].CurrentAmountUSD.IsZero())
	assert.True(t, state.Stocks[1].CurrentAmountKRW.IsZero())
}

func TestCalculatePortfolioStateCached(t *testing.T) {
	registry := cache.NewRegistry(zerolog.Nop())
	e := NewEngine(registry, zerolog.Nop())

	first := e.CalculatePortfolioState(testRequest())
	second := e.CalculatePortfolioState(testRequest())
	assert.Equal(t, first, second)

	stats := registry.Stats()[cache.NamespacePortfolio]
	assert.Equal(t, uint64(1), stats.Hits)
	assert.Equal(t, uint64(1), stats.Misses)
}

func TestCalculateSectorAnalysis(t *testing.T) {
	e := testEngine()
	state := e.CalculatePortfolioState(testRequest())

	// Add an unclassified stock worth less than the Tech pair.
	plain := CalculatedStock{
		Stock:   Stock{ID: "plain", Name: "Misc"},
		Metrics: Metrics{CurrentAmountKRW: M(7000, KRW)},
	}
	sectors := e.CalculateSectorAnalysis(append(state.Stocks, plain), KRW)
	require.Len(t, sectors, 2)

	assert.Equal(t, "Tech", sectors[0].Sector)
	assert.Equal(t, "21000", sectors[0].TotalValue.Text())
	assert.Equal(t, "75.00%", sectors[0].Percentage.String())

	assert.Equal(t, UnclassifiedSector, sectors[1].Sector)
	assert.Equal(t, "25.00%", sectors[1].Percentage.String())
}

func TestCalculateSectorAnalysisZeroTotal(t *testing.T) {
	stocks := []CalculatedStock{
		{Stock: Stock{ID: "a", Sector: "Tech"}},
		{Stock: Stock{ID: "b", Sector: "Energy"}},
	}
	sectors := testEngine().CalculateSectorAnalysis(stocks, KRW)
	require.Len(t, sectors, 2)
	for _, s := range sectors {
		assert.True(t, s.Percentage.IsZero())
	}
	// Equal totals fall back to the sector label for ordering.
	assert.Equal(t, "Energy", sectors[0].Sector)
}

func TestCalculateRebalancingCached(t *testing.T) {
	registry := cache.NewRegistry(zerolog.Nop())
	e := NewEngine(registry, zerolog.Nop())

	stocks := []CalculatedStock{calcStock("a", 50, 1000), calcStock("b", 50, 3000)}
	first := e.CalculateRebalancing(NewAddStrategy(stocks, M(1000, KRW)))
	second := e.CalculateRebalancing(NewAddStrategy(stocks, M(1000, KRW)))
	assert.Equal(t, first, second)
	assert.Equal(t, uint64(1), registry.Stats()[cache.NamespaceRebalancing].Hits)

	// A different strategy over the same inputs must not collide.
	sells := e.CalculateRebalancing(NewSellStrategy(stocks, KRW))
	assert.NotEqual(t, first, sells)
	assert.Equal(t, uint64(1), registry.Stats()[cache.NamespaceRebalancing].Hits)
}

func TestStateCacheKeyIgnoresStockOrder(t *testing.T) {
	e := testEngine()
	req := testRequest()
	components := e.stateComponents(req)
	req.Stocks[0], req.Stocks[1] = req.Stocks[1], req.Stocks[0]
	permuted := e.stateComponents(req)

	key := cache.Key(cache.NamespacePortfolio, cache.KeyOptions{}, components...)
	assert.Equal(t, key, cache.Key(cache.NamespacePortfolio, cache.KeyOptions{}, permuted...))
}
