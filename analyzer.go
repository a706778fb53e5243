package rebalance

// Concentration limits: a single stock above 30% of the portfolio, or a
// single sector above 40%, is flagged.
var (
	stockConcentrationLimit  = P(30)
	sectorConcentrationLimit = P(40)
)

// RebalancingNeed flags one stock whose current weight has drifted from its
// target by more than the tolerance.
type RebalancingNeed struct {
	StockID      string  `json:"stockId"`
	Name         string  `json:"name"`
	CurrentRatio Percent `json:"currentRatio"`
	TargetRatio  Percent `json:"targetRatio"`
	Deviation    Percent `json:"deviation"`
}

// AnalyzeRebalancingNeeds compares every stock's current weight against its
// target ratio and flags those deviating by more than the tolerance. It is a
// no-op when the tolerance is not positive or the portfolio total is zero.
func AnalyzeRebalancingNeeds(stocks []CalculatedStock, currentTotal Money, tolerance Percent) []RebalancingNeed {
	if !tolerance.IsPositive() || currentTotal.IsZero() {
		return nil
	}
	var needs []RebalancingNeed
	for _, cs := range stocks {
		currentRatio := RatioOf(cs.amountIn(currentTotal.Currency()), currentTotal)
		deviation := currentRatio.Sub(cs.TargetRatio).Abs()
		if deviation.GreaterThan(tolerance) {
			needs = append(needs, RebalancingNeed{
				StockID:      cs.ID,
				Name:         cs.Stock.Name,
				CurrentRatio: currentRatio,
				TargetRatio:  cs.TargetRatio,
				Deviation:    deviation,
			})
		}
	}
	return needs
}

// WarningKind distinguishes the two concentration warnings.
type WarningKind string

const (
	WarnStockConcentration  WarningKind = "stock-concentration"
	WarnSectorConcentration WarningKind = "sector-concentration"
)

// RiskWarning flags one stock or sector that exceeds its concentration
// limit.
type RiskWarning struct {
	Kind  WarningKind `json:"kind"`
	Label string      `json:"label"` // stock name or sector label
	Share Percent     `json:"share"`
	Limit Percent     `json:"limit"`
}

// AnalyzeRiskWarnings flags any single stock above 30% of total value and
// any sector above 40%. It is a no-op when the portfolio total is zero.
func AnalyzeRiskWarnings(stocks []CalculatedStock, currentTotal Money, sectors []SectorAggregate) []RiskWarning {
	if currentTotal.IsZero() {
		return nil
	}
	var warnings []RiskWarning
	for _, cs := range stocks {
		share := RatioOf(cs.amountIn(currentTotal.Currency()), currentTotal)
		if share.GreaterThan(stockConcentrationLimit) {
			warnings = append(warnings, RiskWarning{
				Kind:  WarnStockConcentration,
				Label: cs.Stock.Name,
				Share: share,
				Limit: stockConcentrationLimit,
			})
		}
	}
	for _, sector := range sectors {
		if sector.Percentage.GreaterThan(sectorConcentrationLimit) {
			warnings = append(warnings, RiskWarning{
				Kind:  WarnSectorConcentration,
				Label: sector.Sector,
				Share: sector.Percentage,
				Limit: sectorConcentrationLimit,
			})
		}
	}
	return warnings
}
