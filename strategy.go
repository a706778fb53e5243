package rebalance

// Strategy is one rebalancing algorithm over a calculated portfolio. The
// caller constructs whichever concrete strategy it wants and hands it to the
// orchestrator; the orchestrator only ever dispatches Calculate.
type Strategy interface {
	// Name identifies the algorithm ("add", "sell", "simple-ratio").
	Name() string
	// Calculate produces one recommendation per stock, in input order.
	Calculate() []RebalanceResult

	// cacheComponents returns the input fingerprint used to key cached
	// results for this strategy.
	cacheComponents() []string
}

// strategyBase carries the inputs common to all strategies. Every amount is
// taken in the single reporting denomination, so a portfolio mixing won- and
// dollar-priced stocks sums cleanly.
type strategyBase struct {
	stocks     []CalculatedStock
	investment Money
	currency   string
}

// amount returns one stock's value in the strategy's denomination.
func (b strategyBase) amount(s CalculatedStock) Money {
	return s.amountIn(b.currency)
}

// totalValue sums the current amount of every stock.
func (b strategyBase) totalValue() Money {
	total := M(0, b.currency)
	for _, s := range b.stocks {
		total = total.Add(b.amount(s))
	}
	return total
}

// totalTargetRatio sums the target ratios of every stock.
func (b strategyBase) totalTargetRatio() Percent {
	var total Percent
	for _, s := range b.stocks {
		total = total.Add(s.TargetRatio)
	}
	return total
}

func (b strategyBase) cacheComponents() []string {
	components := make([]string, 0, len(b.stocks)+2)
	for _, s := range b.stocks {
		components = append(components, s.ID+":"+b.amount(s).Text()+":"+s.TargetRatio.value.String())
	}
	components = append(components, "cur:"+b.currency)
	if !b.investment.IsZero() {
		components = append(components, "inv:"+b.investment.Text())
	}
	return components
}

// zeroResults returns an all-zero recommendation list, one entry per stock.
// Every degenerate input (no cash, no target ratios) reduces to this.
func (b strategyBase) zeroResults() []RebalanceResult {
	results := make([]RebalanceResult, len(b.stocks))
	for i, s := range b.stocks {
		results[i] = RebalanceResult{StockID: s.ID, Name: s.Stock.Name}
	}
	return results
}
