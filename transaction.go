package rebalance

import (
	"encoding/json"
	"sort"
)

// TxType is a typed string identifying the kind of a transaction.
type TxType string

// Transaction types recorded in a stock's ledger.
const (
	TxBuy      TxType = "buy"
	TxSell     TxType = "sell"
	TxDividend TxType = "dividend"
)

// Transaction is a single immutable ledger entry for a stock.
//
// For buy and sell entries Quantity is a share count and Price a per-share
// price. Dividend entries encode the received amount as Quantity×Price, not
// a share count.
type Transaction struct {
	ID       string
	Type     TxType
	Date     Date
	Quantity Quantity
	Price    Money
}

// Amount returns Quantity×Price, the cash value of the transaction.
func (t Transaction) Amount() Money { return t.Price.Mul(t.Quantity) }

// Valid reports whether the transaction participates in metric calculation.
// Buy and sell entries need a strictly positive quantity and price; invalid
// entries are discarded, never mutated.
func (t Transaction) Valid() bool {
	switch t.Type {
	case TxBuy, TxSell:
		return t.Quantity.IsPositive() && t.Price.IsPositive()
	case TxDividend:
		return true
	default:
		return false
	}
}

// MarshalJSON implements the json.Marshaler interface for Transaction.
func (t Transaction) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", t.ID)
	w.Append("type", t.Type)
	w.Append("date", t.Date)
	w.Append("quantity", t.Quantity)
	w.Append("price", t.Price)
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Transaction.
// Malformed numeric fields decode to zero; they never fail the decode.
func (t *Transaction) UnmarshalJSON(data []byte) error {
	var temp struct {
		ID       string   `json:"id"`
		Type     TxType   `json:"type"`
		Date     Date     `json:"date"`
		Quantity Quantity `json:"quantity"`
		Price    Money    `json:"price"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	*t = Transaction{ID: temp.ID, Type: temp.Type, Date: temp.Date, Quantity: temp.Quantity, Price: temp.Price}
	return nil
}

// SortTransactions orders a transaction list by date ascending, keeping the
// original order for same-day entries. Average-cost computation depends on
// this ordering being deterministic.
func SortTransactions(txs []Transaction) {
	sort.SliceStable(txs, func(i, j int) bool {
		return txs[i].Date.Before(txs[j].Date)
	})
}
