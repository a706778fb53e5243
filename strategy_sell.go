package rebalance

// SellStrategy rebalances within the existing portfolio: each stock's
// adjustment is the signed gap between its current amount and its target
// amount, both read in the reporting currency (positive = excess to sell,
// negative = shortfall to buy). There is no cash constraint; sells are
// assumed to fund buys. Target ratios are taken strictly as given, even when
// they do not sum to 100.
type SellStrategy struct {
	strategyBase
}

// NewSellStrategy builds the sell-rebalance strategy over a calculated
// stock list, reading every amount in the given currency.
func NewSellStrategy(stocks []CalculatedStock, currency string) *SellStrategy {
	return &SellStrategy{strategyBase{stocks: stocks, currency: currency}}
}

func (*SellStrategy) Name() string { return "sell" }

func (s *SellStrategy) Calculate() []RebalanceResult {
	results := s.zeroResults()
	total := s.totalValue()
	for i, st := range s.stocks {
		// A stock exactly at target yields a zero adjustment.
		results[i].Adjustment = s.amount(st).Sub(st.TargetRatio.Of(total))
	}
	return results
}
