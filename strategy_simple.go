package rebalance

// SimpleRatioStrategy ignores current holdings entirely and splits the
// additional investment by target-ratio weight. Ratios are normalized, so
// they need not sum to 100.
type SimpleRatioStrategy struct {
	strategyBase
}

// NewSimpleRatioStrategy builds the simple-ratio strategy over a calculated
// stock list and the cash to invest.
func NewSimpleRatioStrategy(stocks []CalculatedStock, additionalInvestment Money) *SimpleRatioStrategy {
	return &SimpleRatioStrategy{strategyBase{
		stocks:     stocks,
		investment: additionalInvestment,
		currency:   additionalInvestment.Currency(),
	}}
}

func (*SimpleRatioStrategy) Name() string { return "simple-ratio" }

func (s *SimpleRatioStrategy) Calculate() []RebalanceResult {
	results := s.zeroResults()
	totalRatio := s.totalTargetRatio()
	if !s.investment.IsPositive() || totalRatio.IsZero() {
		return results
	}
	for i, st := range s.stocks {
		alloc := s.investment.Mul(st.TargetRatio.Weight(totalRatio))
		results[i].FinalBuyAmount = alloc
		results[i].BuyRatio = RatioOf(alloc, s.investment)
		if st.CurrentPrice.IsPositive() && st.CurrentPrice.Currency() == s.currency {
			results[i].FinalBuyQuantity = alloc.DivPrice(st.CurrentPrice)
		}
	}
	return results
}
