package portfolio

import (
	"slices"

	"github.com/shopspring/decimal"
)

// SortTransactionsDescending returns a copy of txs ordered newest first.
// Transactions sharing a timestamp keep their relative order.
func SortTransactionsDescending(txs []Transaction) []Transaction {
	out := slices.Clone(txs)
	slices.SortStableFunc(out, func(a, b Transaction) int {
		return b.Timestamp.Compare(a.Timestamp)
	})
	return out
}

// FilterTransactions selects transactions of one type; "all" or "" selects everything.
// The result is always a new slice.
func FilterTransactions(txs []Transaction, kind string) []Transaction {
	out := make([]Transaction, 0, len(txs))
	for _, tx := range txs {
		if kind == "" || kind == "all" || string(tx.TransactionType) == kind {
			out = append(out, tx)
		}
	}
	return out
}

type Totals struct {
	Count         int     `json:"count"`
	TotalBought   float64 `json:"totalBought"`
	TotalSold     float64 `json:"totalSold"`
	TotalRealized float64 `json:"totalRealized"`
}

// TransactionTotals summarises a transaction history. Realized P&L is only
// counted on sells.
func TransactionTotals(txs []Transaction) Totals {
	bought, sold, realized := decimal.Zero, decimal.Zero, decimal.Zero
	for _, tx := range txs {
		switch tx.TransactionType {
		case Buy:
			bought = bought.Add(decimal.NewFromFloat(tx.TotalValue))
		case Sell:
			sold = sold.Add(decimal.NewFromFloat(tx.TotalValue))
			realized = realized.Add(decimal.NewFromFloat(tx.RealizedProfitLoss))
		}
	}
	return Totals{
		Count:         len(txs),
		TotalBought:   bought.InexactFloat64(),
		TotalSold:     sold.InexactFloat64(),
		TotalRealized: realized.InexactFloat64(),
	}
}
