package rebalance

// Stock is one holding of a portfolio, together with the transaction ledger
// that it owns.
type Stock struct {
	ID              string        `json:"id"`
	Name            string        `json:"name"`
	Ticker          string        `json:"ticker"`
	Sector          string        `json:"sector"`
	TargetRatio     Percent       `json:"targetRatio"`
	CurrentPrice    Money         `json:"currentPrice"`
	FixedBuyEnabled bool          `json:"isFixedBuyEnabled,omitempty"`
	FixedBuyAmount  Money         `json:"fixedBuyAmount,omitempty"`
	ManualAmount    *Money        `json:"manualAmount,omitempty"`
	Transactions    []Transaction `json:"transactions,omitempty"`
}

// Metrics holds every per-stock value derived from the transaction ledger.
// Metrics are ephemeral: recomputed on every orchestration pass and never
// persisted.
type Metrics struct {
	Quantity         Quantity `json:"quantity"`
	AvgBuyPrice      Money    `json:"avgBuyPrice"`
	TotalBuyAmount   Money    `json:"totalBuyAmount"`
	TotalSellAmount  Money    `json:"totalSellAmount"`
	CurrentAmount    Money    `json:"currentAmount"`
	CurrentAmountUSD Money    `json:"currentAmountUSD"`
	CurrentAmountKRW Money    `json:"currentAmountKRW"`
	ProfitLoss       Money    `json:"profitLoss"`
	ProfitLossRate   Percent  `json:"profitLossRate"`
	TotalDividends   Money    `json:"totalDividends"`
	RealizedPL       Money    `json:"realizedPL"`
	TotalRealizedPL  Money    `json:"totalRealizedPL"`
}

// CalculatedStock is a stock together with its derived metrics. It lives for
// one calculation pass and is replaced on the next.
type CalculatedStock struct {
	Stock
	Metrics
}

// SectorAggregate is the total value and share of one sector of the
// portfolio. It has no identity of its own; it is derived from a list of
// calculated stocks.
type SectorAggregate struct {
	Sector     string  `json:"sector"`
	TotalValue Money   `json:"totalValue"`
	Percentage Percent `json:"percentage"`
}

// UnclassifiedSector is the label grouping stocks that carry no sector.
const UnclassifiedSector = "Unclassified"

// RebalanceResult is one stock's buy/sell recommendation produced by a
// rebalancing strategy. FinalBuyAmount, FinalBuyQuantity and BuyRatio are
// filled by the allocating strategies; Adjustment is filled by the
// sell-rebalance strategy (positive = excess to sell, negative = shortfall
// to buy).
type RebalanceResult struct {
	StockID          string   `json:"stockId"`
	Name             string   `json:"name"`
	FinalBuyAmount   Money    `json:"finalBuyAmount"`
	FinalBuyQuantity Quantity `json:"finalBuyQuantity"`
	BuyRatio         Percent  `json:"buyRatio"`
	Adjustment       Money    `json:"adjustment"`
}

// Portfolio is a named collection of stocks with a reporting currency.
type Portfolio struct {
	Name     string   `json:"name"`
	Currency string   `json:"currency"`
	Stocks   []*Stock `json:"stocks"`
}

// Stock returns the stock with the given id, or nil if unknown.
func (p *Portfolio) Stock(id string) *Stock {
	for _, s := range p.Stocks {
		if s.ID == id {
			return s
		}
	}
	return nil
}
