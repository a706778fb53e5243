package rebalance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransactionValid(t *testing.T) {
	tests := []struct {
		name string
		tx   Transaction
		want bool
	}{
		{"buy", tx(TxBuy, "2025-01-10", 10, 100), true},
		{"buy zero quantity", tx(TxBuy, "2025-01-10", 0, 100), false},
		{"buy zero price", tx(TxBuy, "2025-01-10", 10, 0), false},
		{"sell negative quantity", tx(TxSell, "2025-01-10", -1, 100), false},
		{"dividend", tx(TxDividend, "2025-01-10", 0, 0), true},
		{"unknown type", tx("split", "2025-01-10", 10, 100), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.tx.Valid())
		})
	}
}

func TestSortTransactionsIsStable(t *testing.T) {
	txs := []Transaction{
		{ID: "c", Date: MustParseDate("2025-03-01")},
		{ID: "a1", Date: MustParseDate("2025-01-01")},
		{ID: "a2", Date: MustParseDate("2025-01-01")},
		{ID: "b", Date: MustParseDate("2025-02-01")},
	}
	SortTransactions(txs)
	var ids []string
	for _, x := range txs {
		ids = append(ids, x.ID)
	}
	assert.Equal(t, []string{"a1", "a2", "b", "c"}, ids)
}
