package rebalance

// CalculateStockMetrics derives the full metric set for one stock from its
// transaction ledger. It never fails: invalid transactions are discarded,
// malformed numeric fields have already been normalized to zero at decode
// time, and an unexpected panic inside the computation is recovered and
// converted to an all-zero metric record so the remaining stocks still get
// calculated.
func (e *Engine) CalculateStockMetrics(s *Stock) (m Metrics) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Error().Str("stock", s.ID).Any("panic", r).Msg("metric calculation failed, returning zero metrics")
			m = Metrics{}
		}
	}()
	return calculateMetrics(s)
}

// calculateMetrics accumulates the ledger in date order and derives the
// holding quantity, weighted-average cost, and profit figures.
func calculateMetrics(s *Stock) Metrics {
	cur := s.CurrentPrice.Currency()

	var totalBuyQty, totalSellQty Quantity
	totalBuyAmount := M(0, cur)
	totalSellAmount := M(0, cur)
	totalDividends := M(0, cur)

	txs := make([]Transaction, len(s.Transactions))
	copy(txs, s.Transactions)
	SortTransactions(txs)

	for _, tx := range txs {
		if !tx.Valid() {
			continue
		}
		switch tx.Type {
		case TxBuy:
			totalBuyQty = totalBuyQty.Add(tx.Quantity)
			totalBuyAmount = totalBuyAmount.Add(tx.Amount())
		case TxSell:
			totalSellQty = totalSellQty.Add(tx.Quantity)
			totalSellAmount = totalSellAmount.Add(tx.Amount())
		case TxDividend:
			// Dividend entries encode the amount as quantity×price.
			totalDividends = totalDividends.Add(tx.Amount())
		}
	}

	quantity := totalBuyQty.Sub(totalSellQty).ClampZero()

	avgBuyPrice := M(0, cur)
	if totalBuyQty.IsPositive() {
		avgBuyPrice = totalBuyAmount.Div(totalBuyQty)
	}

	realizedPL := M(0, cur)
	if totalSellQty.IsPositive() && avgBuyPrice.IsPositive() {
		realizedPL = totalSellAmount.Sub(avgBuyPrice.Mul(totalSellQty))
	}
	totalRealizedPL := realizedPL.Add(totalDividends)

	currentAmount := s.CurrentPrice.Mul(quantity)
	if s.ManualAmount != nil {
		// A manual amount overrides the computed market value, for holdings
		// without a usable price feed.
		currentAmount = *s.ManualAmount
	}

	originalCost := avgBuyPrice.Mul(quantity)
	profitLoss := currentAmount.Sub(originalCost)

	return Metrics{
		Quantity:        quantity,
		AvgBuyPrice:     avgBuyPrice,
		TotalBuyAmount:  totalBuyAmount,
		TotalSellAmount: totalSellAmount,
		CurrentAmount:   currentAmount,
		ProfitLoss:      profitLoss,
		ProfitLossRate:  RatioOf(profitLoss, originalCost),
		TotalDividends:  totalDividends,
		RealizedPL:      realizedPL,
		TotalRealizedPL: totalRealizedPL,
	}
}
