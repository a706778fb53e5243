// Package offload mirrors the calculation engine's entry points behind a
// message-passing boundary so the heavy passes can run off the caller's
// execution thread. Two interchangeable implementations of the same
// Calculator interface exist: an in-process one that invokes the engine
// directly, and a background one that serializes requests to a worker and
// falls back to in-process execution when the worker is unavailable. The
// caller never knows which implementation served a given request.
package offload

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/randomstrangerpassenger/rebalance"
)

// Calculator is the asynchronous face of the engine. Implementations never
// surface a computation failure for dirty input; an error only reports a
// broken transport, and the background implementation handles that itself
// by falling back.
type Calculator interface {
	CalculatePortfolioState(ctx context.Context, req rebalance.StateRequest) (rebalance.State, error)
	CalculateSectorAnalysis(ctx context.Context, stocks []rebalance.CalculatedStock, currency string) ([]rebalance.SectorAggregate, error)
	CalculateStockMetrics(ctx context.Context, stock *rebalance.Stock) (rebalance.Metrics, error)
	Close() error
}

// Options selects the Calculator implementation at construction time.
type Options struct {
	// InProcess forces the synchronous implementation, for hosts without a
	// background execution context.
	InProcess bool
}

// New builds a Calculator over the given engine.
func New(engine *rebalance.Engine, opts Options, log zerolog.Logger) Calculator {
	if opts.InProcess {
		return NewInProcess(engine)
	}
	return newService(engine, log)
}

// InProcess runs every calculation synchronously on the calling goroutine.
type InProcess struct {
	engine *rebalance.Engine
}

// NewInProcess wraps an engine in the synchronous Calculator.
func NewInProcess(engine *rebalance.Engine) *InProcess {
	return &InProcess{engine: engine}
}

func (p *InProcess) CalculatePortfolioState(_ context.Context, req rebalance.StateRequest) (rebalance.State, error) {
	return p.engine.CalculatePortfolioState(req), nil
}

func (p *InProcess) CalculateSectorAnalysis(_ context.Context, stocks []rebalance.CalculatedStock, currency string) ([]rebalance.SectorAggregate, error) {
	return p.engine.CalculateSectorAnalysis(stocks, currency), nil
}

func (p *InProcess) CalculateStockMetrics(_ context.Context, stock *rebalance.Stock) (rebalance.Metrics, error) {
	return p.engine.CalculateStockMetrics(stock), nil
}

func (p *InProcess) Close() error { return nil }
