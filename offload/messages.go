package offload

import (
	"encoding/json"

	"github.com/randomstrangerpassenger/rebalance"
)

// Message types of the background-execution protocol.
const (
	msgStockMetrics   = "calculateStockMetrics"
	msgPortfolioState = "calculatePortfolioState"
	msgSectorAnalysis = "calculateSectorAnalysis"
	msgError          = "error"
)

// envelope is one protocol message. Requests carry Data, success responses
// carry Result under the same type, failures carry type "error" and a
// message. Monetary fields inside Data and Result are decimal strings, never
// native floating-point numbers, so every value round-trips the boundary
// losslessly.
type envelope struct {
	Type      string          `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	Result    json.RawMessage `json:"result,omitempty"`
	Error     string          `json:"error,omitempty"`
	RequestID string          `json:"requestId,omitempty"`
}

// sectorPayload is the request payload of a sector-analysis message.
type sectorPayload struct {
	Stocks   []rebalance.CalculatedStock `json:"calculatedStocks"`
	Currency string                      `json:"currency"`
}

// errorResponse builds a protocol failure message.
func errorResponse(requestID string, err error) []byte {
	raw, _ := json.Marshal(envelope{Type: msgError, Error: err.Error(), RequestID: requestID})
	return raw
}

// successResponse builds a protocol success message, echoing the request
// type and correlation id.
func successResponse(requestID, msgType string, result any) []byte {
	encoded, err := json.Marshal(result)
	if err != nil {
		return errorResponse(requestID, err)
	}
	raw, _ := json.Marshal(envelope{Type: msgType, Result: encoded, RequestID: requestID})
	return raw
}
