package rebalance

// AddStrategy allocates new cash across the portfolio without selling
// anything. Stocks with fixed-buy enabled are served first, capped at
// min(fixedBuyAmount, remaining cash); the remaining pool goes to the other
// stocks in proportion to their shortfall against target, so underweight
// stocks receive more. All amounts are taken in the investment's currency.
// The total allocated never exceeds the additional investment.
type AddStrategy struct {
	strategyBase
}

// NewAddStrategy builds the add-investment strategy over a calculated stock
// list and the cash to invest. The investment's currency is the denomination
// every stock value is read in.
func NewAddStrategy(stocks []CalculatedStock, additionalInvestment Money) *AddStrategy {
	return &AddStrategy{strategyBase{
		stocks:     stocks,
		investment: additionalInvestment,
		currency:   additionalInvestment.Currency(),
	}}
}

func (*AddStrategy) Name() string { return "add" }

func (s *AddStrategy) Calculate() []RebalanceResult {
	results := s.zeroResults()
	if !s.investment.IsPositive() || s.totalTargetRatio().IsZero() {
		return results
	}

	remaining := s.investment
	futureTotal := s.totalValue().Add(s.investment)

	// Fixed-buy stocks first. Their cap takes precedence over any
	// ratio-driven share.
	var open []int
	for i, st := range s.stocks {
		if st.FixedBuyEnabled && st.FixedBuyAmount.IsPositive() {
			alloc := st.FixedBuyAmount.Min(remaining).ClampZero()
			s.fill(&results[i], st, alloc)
			remaining = remaining.Sub(alloc)
			continue
		}
		open = append(open, i)
	}

	if !remaining.IsPositive() || len(open) == 0 {
		return results
	}

	// Distribute the rest of the pool to the remaining stocks in proportion
	// to their shortfall against target on the post-investment total.
	shortfalls := make([]Money, len(open))
	totalShortfall := M(0, s.currency)
	var openRatio Percent
	for n, i := range open {
		st := s.stocks[i]
		shortfalls[n] = st.TargetRatio.Of(futureTotal).Sub(s.amount(st)).ClampZero()
		totalShortfall = totalShortfall.Add(shortfalls[n])
		openRatio = openRatio.Add(st.TargetRatio)
	}

	pool := remaining
	for n, i := range open {
		st := s.stocks[i]
		var alloc Money
		switch {
		case totalShortfall.IsPositive():
			alloc = remaining.Mul(shortfalls[n].DivPrice(totalShortfall))
		case openRatio.IsPositive():
			// Everything already at or above target: fall back to the
			// target-ratio weights.
			alloc = remaining.Mul(st.TargetRatio.Weight(openRatio))
		}
		// Division rounds to a finite number of digits; never hand out more
		// than what is left of the pool.
		alloc = alloc.Min(pool).ClampZero()
		pool = pool.Sub(alloc)
		s.fill(&results[i], st, alloc)
	}
	return results
}

// fill completes one recommendation from its allocated amount. A price
// quoted in another denomination cannot produce a share count.
func (s *AddStrategy) fill(r *RebalanceResult, st CalculatedStock, alloc Money) {
	r.FinalBuyAmount = alloc
	r.BuyRatio = RatioOf(alloc, s.investment)
	if st.CurrentPrice.IsPositive() && st.CurrentPrice.Currency() == s.currency {
		r.FinalBuyQuantity = alloc.DivPrice(st.CurrentPrice)
	}
}
