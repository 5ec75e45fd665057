package portfolio

import "time"

type TransactionType string

const (
	Buy  TransactionType = "buy"
	Sell TransactionType = "sell"
)

// Portfolio mirrors the backend's portfolio record. The aggregate figures are
// computed server-side and passed through untouched.
type Portfolio struct {
	ID                        string    `json:"id"`
	Name                      string    `json:"name"`
	Description               *string   `json:"description,omitempty"`
	Assets                    []Asset   `json:"assets"`
	TotalValue                float64   `json:"totalValue"`
	TotalProfitLoss           float64   `json:"totalProfitLoss"`
	TotalProfitLossPercentage float64   `json:"totalProfitLossPercentage"`
	TotalRealizedProfitLoss   *float64  `json:"totalRealizedProfitLoss,omitempty"`
	TotalCostBasis            *float64  `json:"totalCostBasis,omitempty"`
	CreatedAt                 time.Time `json:"createdAt"`
	UpdatedAt                 time.Time `json:"updatedAt"`
}

type Asset struct {
	ID                   string        `json:"id"`
	CryptoID             string        `json:"cryptoId"`
	Symbol               string        `json:"symbol"`
	Name                 string        `json:"name"`
	Amount               float64       `json:"amount"`
	AverageBuyPrice      float64       `json:"averageBuyPrice"`
	PurchasePrice        float64       `json:"purchasePrice,omitempty"`
	CurrentPrice         float64       `json:"currentPrice"`
	TotalValue           float64       `json:"totalValue"`
	ProfitLoss           float64       `json:"profitLoss"`
	ProfitLossPercentage float64       `json:"profitLossPercentage"`
	Transactions         []Transaction `json:"transactions,omitempty"`
}

type Transaction struct {
	ID                 string          `json:"id"`
	TransactionType    TransactionType `json:"transactionType"`
	Amount             float64         `json:"amount"`
	PricePerUnit       float64         `json:"pricePerUnit"`
	TotalValue         float64         `json:"totalValue"`
	RealizedProfitLoss float64         `json:"realizedProfitLoss"`
	Timestamp          time.Time       `json:"timestamp"`
	Notes              *string         `json:"notes,omitempty"`
}

func valueOrZero(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}
