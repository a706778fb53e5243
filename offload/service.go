package offload

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/randomstrangerpassenger/rebalance"
)

// Service is the background Calculator. Each request carries a correlation
// id so out-of-order responses reach the caller that issued them; there is
// no ordering guarantee between independent outstanding requests, no
// cancellation of an in-flight calculation, and no internal timeout. Any
// failure to reach the worker, or to decode what came back, switches the
// service permanently to the synchronous in-process path — callers never see
// the difference.
type Service struct {
	engine *rebalance.Engine // synchronous fallback path
	w      *worker
	log    zerolog.Logger

	broken atomic.Bool   // once set, everything runs in-process
	done   chan struct{} // closed by Close; unblocks in-flight calls

	mu      sync.Mutex
	pending map[string]chan envelope
	closed  bool
}

func newService(engine *rebalance.Engine, log zerolog.Logger) *Service {
	s := &Service{
		engine:  engine,
		log:     log.With().Str("service", "offload").Logger(),
		done:    make(chan struct{}),
		pending: make(map[string]chan envelope),
	}
	s.w = startWorker(log)
	go s.dispatch()
	return s
}

// dispatch routes worker responses to the pending request that issued them.
// A response whose caller has already gone away is discarded.
func (s *Service) dispatch() {
	for raw := range s.w.responses {
		var env envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			s.log.Warn().Err(err).Msg("undecodable worker response dropped")
			continue
		}
		if env.RequestID == "" {
			s.log.Warn().Str("error", env.Error).Msg("uncorrelated worker error dropped")
			continue
		}
		s.mu.Lock()
		ch, ok := s.pending[env.RequestID]
		delete(s.pending, env.RequestID)
		s.mu.Unlock()
		if !ok {
			s.log.Debug().Str("requestId", env.RequestID).Msg("response for abandoned request dropped")
			continue
		}
		ch <- env
	}
}

// call sends one request across the boundary and waits for its response.
func (s *Service) call(ctx context.Context, msgType string, payload any) (json.RawMessage, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding %s request: %w", msgType, err)
	}
	id := uuid.NewString()
	raw, err := json.Marshal(envelope{Type: msgType, Data: data, RequestID: id})
	if err != nil {
		return nil, fmt.Errorf("encoding %s envelope: %w", msgType, err)
	}

	ch := make(chan envelope, 1)
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, fmt.Errorf("offload service closed")
	}
	s.pending[id] = ch
	s.mu.Unlock()

	select {
	case s.w.requests <- raw:
	case <-s.done:
		s.forget(id)
		return nil, fmt.Errorf("offload service closed")
	case <-ctx.Done():
		s.forget(id)
		return nil, ctx.Err()
	}

	select {
	case env := <-ch:
		if env.Type == msgError {
			return nil, fmt.Errorf("worker: %s", env.Error)
		}
		return env.Result, nil
	case <-s.done:
		s.forget(id)
		return nil, fmt.Errorf("offload service closed")
	case <-ctx.Done():
		// The in-flight calculation cannot be aborted; its result is
		// discarded by dispatch when it arrives.
		s.forget(id)
		return nil, ctx.Err()
	}
}

func (s *Service) forget(id string) {
	s.mu.Lock()
	delete(s.pending, id)
	s.mu.Unlock()
}

// fallback logs the transport failure and marks the service broken so every
// subsequent call goes straight to the in-process path.
func (s *Service) fallback(op string, err error) {
	s.broken.Store(true)
	s.log.Warn().Err(err).Str("op", op).Msg("background execution unavailable, falling back to in-process")
}

func (s *Service) CalculatePortfolioState(ctx context.Context, req rebalance.StateRequest) (rebalance.State, error) {
	if !s.broken.Load() {
		raw, err := s.call(ctx, msgPortfolioState, req)
		if err == nil {
			var state rebalance.State
			if err = json.Unmarshal(raw, &state); err == nil {
				return state, nil
			}
		}
		if ctx.Err() != nil {
			return rebalance.State{}, ctx.Err()
		}
		s.fallback(msgPortfolioState, err)
	}
	return s.engine.CalculatePortfolioState(req), nil
}

func (s *Service) CalculateSectorAnalysis(ctx context.Context, stocks []rebalance.CalculatedStock, currency string) ([]rebalance.SectorAggregate, error) {
	if !s.broken.Load() {
		raw, err := s.call(ctx, msgSectorAnalysis, sectorPayload{Stocks: stocks, Currency: currency})
		if err == nil {
			var sectors []rebalance.SectorAggregate
			if err = json.Unmarshal(raw, &sectors); err == nil {
				return sectors, nil
			}
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		s.fallback(msgSectorAnalysis, err)
	}
	return s.engine.CalculateSectorAnalysis(stocks, currency), nil
}

func (s *Service) CalculateStockMetrics(ctx context.Context, stock *rebalance.Stock) (rebalance.Metrics, error) {
	if !s.broken.Load() {
		raw, err := s.call(ctx, msgStockMetrics, stock)
		if err == nil {
			var m rebalance.Metrics
			if err = json.Unmarshal(raw, &m); err == nil {
				return m, nil
			}
		}
		if ctx.Err() != nil {
			return rebalance.Metrics{}, ctx.Err()
		}
		s.fallback(msgStockMetrics, err)
	}
	return s.engine.CalculateStockMetrics(stock), nil
}

// Close shuts the worker down. Calls racing or following Close run
// in-process; the request channel stays open so they never hit a closed
// channel.
func (s *Service) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	s.broken.Store(true)
	close(s.done)
	close(s.w.quit)
	return nil
}
