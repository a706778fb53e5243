package rebalance

import (
	"sort"

	"github.com/rs/zerolog"

	"github.com/randomstrangerpassenger/rebalance/cache"
)

// Engine is the calculation orchestrator. It derives metrics for every stock
// of a portfolio, aggregates totals and sector breakdowns, and dispatches to
// whichever rebalancing strategy the caller constructed. The engine keeps no
// state between calls; every call is a pure function of its inputs, apart
// from lookups in the injected result cache.
type Engine struct {
	cache *cache.Registry // nil disables result caching
	log   zerolog.Logger
}

// NewEngine creates an engine. The registry may be nil, in which case every
// call recomputes from scratch.
func NewEngine(registry *cache.Registry, log zerolog.Logger) *Engine {
	return &Engine{cache: registry, log: log.With().Str("service", "engine").Logger()}
}

// StateRequest is the input of one portfolio calculation pass.
type StateRequest struct {
	Stocks       []*Stock `json:"portfolioData"`
	ExchangeRate Quantity `json:"exchangeRate"` // won per dollar
	Currency     string   `json:"currentCurrency"`
}

// State is the output of one portfolio calculation pass: every stock with
// its derived metrics, and the portfolio total in the requested currency.
type State struct {
	Stocks       []CalculatedStock `json:"portfolioData"`
	CurrentTotal Money             `json:"currentTotal"`
}

// CalculatePortfolioState derives metrics for every stock, converts current
// amounts into both currency denominations with the supplied exchange rate,
// and sums the denomination matching the requested currency into the total.
func (e *Engine) CalculatePortfolioState(req StateRequest) State {
	key := cache.Key(cache.NamespacePortfolio, cache.KeyOptions{}, e.stateComponents(req)...)
	if e.cache != nil {
		if v, ok := e.cache.Get(cache.NamespacePortfolio, key); ok {
			if state, ok := v.(State); ok {
				return state
			}
		}
	}

	conv := NewConverter(req.ExchangeRate)
	state := State{
		Stocks:       make([]CalculatedStock, 0, len(req.Stocks)),
		CurrentTotal: M(0, req.Currency),
	}
	for _, s := range req.Stocks {
		m := e.CalculateStockMetrics(s)
		if m.CurrentAmount.cur == "" {
			m.CurrentAmount.cur = req.Currency
		}
		m.CurrentAmountKRW = conv.ToKRW(m.CurrentAmount)
		m.CurrentAmountUSD = conv.ToUSD(m.CurrentAmount)

		cs := CalculatedStock{Stock: *s, Metrics: m}
		state.CurrentTotal = state.CurrentTotal.Add(cs.amountIn(req.Currency))
		state.Stocks = append(state.Stocks, cs)
	}

	if e.cache != nil {
		e.cache.Set(cache.NamespacePortfolio, key, state)
	}
	return state
}

// CalculateSectorAnalysis groups calculated stocks by sector and returns the
// per-sector totals and shares in the given currency, largest first. Stocks
// without a sector fall under the "Unclassified" label.
func (e *Engine) CalculateSectorAnalysis(stocks []CalculatedStock, currency string) []SectorAggregate {
	components := make([]string, 0, len(stocks)+1)
	for _, cs := range stocks {
		components = append(components, cs.ID+":"+cs.amountIn(currency).Text())
	}
	components = append(components, "cur:"+currency)
	key := cache.Key(cache.NamespaceSector, cache.KeyOptions{}, components...)
	if e.cache != nil {
		if v, ok := e.cache.Get(cache.NamespaceSector, key); ok {
			if sectors, ok := v.([]SectorAggregate); ok {
				return sectors
			}
		}
	}

	totals := make(map[string]Money)
	grandTotal := M(0, currency)
	for _, cs := range stocks {
		sector := cs.Sector
		if sector == "" {
			sector = UnclassifiedSector
		}
		amount := cs.amountIn(currency)
		totals[sector] = totals[sector].Add(amount)
		grandTotal = grandTotal.Add(amount)
	}

	sectors := make([]SectorAggregate, 0, len(totals))
	for sector, total := range totals {
		sectors = append(sectors, SectorAggregate{
			Sector:     sector,
			TotalValue: total,
			Percentage: RatioOf(total, grandTotal),
		})
	}
	sort.Slice(sectors, func(i, j int) bool {
		if !sectors[i].TotalValue.Equal(sectors[j].TotalValue) {
			return sectors[i].TotalValue.GreaterThan(sectors[j].TotalValue)
		}
		return sectors[i].Sector < sectors[j].Sector
	})

	if e.cache != nil {
		e.cache.Set(cache.NamespaceSector, key, sectors)
	}
	return sectors
}

// CalculateRebalancing runs the given strategy. Selecting the strategy is
// the caller's responsibility; the engine only dispatches.
func (e *Engine) CalculateRebalancing(s Strategy) []RebalanceResult {
	key := cache.Key(cache.NamespaceRebalancing, cache.KeyOptions{},
		append(s.cacheComponents(), "strategy:"+s.Name())...)
	if e.cache != nil {
		if v, ok := e.cache.Get(cache.NamespaceRebalancing, key); ok {
			if results, ok := v.([]RebalanceResult); ok {
				return results
			}
		}
	}
	results := s.Calculate()
	if e.cache != nil {
		e.cache.Set(cache.NamespaceRebalancing, key, results)
	}
	return results
}

// stateComponents derives the cache key components for a state request: one
// component per stock plus the exchange rate and currency. Stock order does
// not matter; the key generator sorts components.
func (e *Engine) stateComponents(req StateRequest) []string {
	components := make([]string, 0, len(req.Stocks)+2)
	for _, s := range req.Stocks {
		txIDs := make([]string, 0, len(s.Transactions))
		for _, tx := range s.Transactions {
			txIDs = append(txIDs, tx.ID)
		}
		components = append(components, cache.StockComponent(s.ID, s.CurrentPrice.Text(), txIDs))
	}
	components = append(components, "rate:"+req.ExchangeRate.String(), "cur:"+req.Currency)
	return components
}

// amountIn returns the stock's current amount in the requested denomination.
func (cs CalculatedStock) amountIn(currency string) Money {
	switch currency {
	case USD:
		return cs.CurrentAmountUSD
	case KRW:
		return cs.CurrentAmountKRW
	default:
		return cs.CurrentAmount
	}
}
