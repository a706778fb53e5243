package offload

import (
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/randomstrangerpassenger/rebalance"
)

// worker is the background execution context: a goroutine owning its own
// engine, connected to the caller only through byte-encoded messages. No
// memory is shared across the boundary — inputs and outputs cross it as
// serialized copies, so neither side needs any locking discipline. The
// worker's engine carries no cache; the result cache lives exclusively on
// the calling side.
type worker struct {
	engine    *rebalance.Engine
	requests  chan []byte
	responses chan []byte
	quit      chan struct{}
}

func startWorker(log zerolog.Logger) *worker {
	w := &worker{
		engine:    rebalance.NewEngine(nil, log.With().Str("service", "offload-worker").Logger()),
		requests:  make(chan []byte, 16),
		responses: make(chan []byte, 16),
		quit:      make(chan struct{}),
	}
	go w.loop()
	return w
}

// loop serves requests until quit closes. The requests channel is never
// closed; senders racing a shutdown must not panic.
func (w *worker) loop() {
	for {
		select {
		case raw := <-w.requests:
			w.responses <- w.handle(raw)
		case <-w.quit:
			close(w.responses)
			return
		}
	}
}

// handle decodes one request, runs the matching engine operation, and
// encodes the response.
func (w *worker) handle(raw []byte) []byte {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return errorResponse("", fmt.Errorf("malformed request: %w", err))
	}
	switch env.Type {
	case msgPortfolioState:
		var req rebalance.StateRequest
		if err := json.Unmarshal(env.Data, &req); err != nil {
			return errorResponse(env.RequestID, fmt.Errorf("malformed %s payload: %w", env.Type, err))
		}
		return successResponse(env.RequestID, env.Type, w.engine.CalculatePortfolioState(req))

	case msgSectorAnalysis:
		var payload sectorPayload
		if err := json.Unmarshal(env.Data, &payload); err != nil {
			return errorResponse(env.RequestID, fmt.Errorf("malformed %s payload: %w", env.Type, err))
		}
		return successResponse(env.RequestID, env.Type, w.engine.CalculateSectorAnalysis(payload.Stocks, payload.Currency))

	case msgStockMetrics:
		var stock rebalance.Stock
		if err := json.Unmarshal(env.Data, &stock); err != nil {
			return errorResponse(env.RequestID, fmt.Errorf("malformed %s payload: %w", env.Type, err))
		}
		return successResponse(env.RequestID, env.Type, w.engine.CalculateStockMetrics(&stock))

	default:
		return errorResponse(env.RequestID, fmt.Errorf("unknown message type %q", env.Type))
	}
}
