package rebalance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// krwStock builds a calculated stock whose won denomination is filled, the
// way a portfolio calculation pass leaves it.
func krwStock(id, sector string, target, current float64) CalculatedStock {
	return CalculatedStock{
		Stock: Stock{ID: id, Name: id, Sector: sector, TargetRatio: P(target)},
		Metrics: Metrics{
			CurrentAmount:    M(current, KRW),
			CurrentAmountKRW: M(current, KRW),
		},
	}
}

func TestAnalyzeRebalancingNeeds(t *testing.T) {
	stocks := []CalculatedStock{
		krwStock("a", "", 50, 6000), // at 60%, drifted by 10
		krwStock("b", "", 50, 4000), // at 40%, drifted by 10
	}
	total := M(10000, KRW)

	needs := AnalyzeRebalancingNeeds(stocks, total, P(5))
	require.Len(t, needs, 2)
	assert.Equal(t, "60.00%", needs[0].CurrentRatio.String())
	assert.Equal(t, "10.00%", needs[0].Deviation.String())

	// A 15-point tolerance absorbs the drift.
	assert.Empty(t, AnalyzeRebalancingNeeds(stocks, total, P(15)))
}

func TestAnalyzeRebalancingNeedsDisabled(t *testing.T) {
	stocks := []CalculatedStock{krwStock("a", "", 50, 6000)}
	assert.Nil(t, AnalyzeRebalancingNeeds(stocks, M(10000, KRW), P(0)))
	assert.Nil(t, AnalyzeRebalancingNeeds(stocks, M(10000, KRW), P(-5)))
	assert.Nil(t, AnalyzeRebalancingNeeds(stocks, M(0, KRW), P(5)))
}

func TestAnalyzeRiskWarningsStockConcentration(t *testing.T) {
	stocks := []CalculatedStock{
		krwStock("big", "", 0, 3500),
		krwStock("small", "", 0, 6500),
	}
	warnings := AnalyzeRiskWarnings(stocks, M(10000, KRW), nil)
	require.Len(t, warnings, 2)
	assert.Equal(t, WarnStockConcentration, warnings[0].Kind)
	assert.Equal(t, "35.00%", warnings[0].Share.String())
	assert.Equal(t, "30.00%", warnings[0].Limit.String())
}

func TestAnalyzeRiskWarningsSectorConcentration(t *testing.T) {
	sectors := []SectorAggregate{
		{Sector: "Tech", Percentage: P(45)},
		{Sector: "Energy", Percentage: P(40)}, // exactly at the limit: not flagged
	}
	warnings := AnalyzeRiskWarnings(nil, M(10000, KRW), sectors)
	require.Len(t, warnings, 1)
	assert.Equal(t, WarnSectorConcentration, warnings[0].Kind)
	assert.Equal(t, "Tech", warnings[0].Label)
}

func TestAnalyzeRiskWarningsZeroTotal(t *testing.T) {
	stocks := []CalculatedStock{krwStock("a", "", 0, 3500)}
	assert.Nil(t, AnalyzeRiskWarnings(stocks, M(0, KRW), nil))
}
