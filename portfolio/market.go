package portfolio

import "time"

// Cryptocurrency is one market listing as the backend reports it. The
// top-cryptos section renders these.
type Cryptocurrency struct {
	ID                       string    `json:"id"`
	Symbol                   string    `json:"symbol"`
	Name                     string    `json:"name"`
	CurrentPrice             float64   `json:"currentPrice"`
	MarketCap                float64   `json:"marketCap"`
	MarketCapRank            int       `json:"marketCapRank"`
	PriceChange24h           float64   `json:"priceChange24h"`
	PriceChangePercentage24h float64   `json:"priceChangePercentage24h"`
	High24h                  float64   `json:"high24h"`
	Low24h                   float64   `json:"low24h"`
	ATH                      *float64  `json:"ath,omitempty"`
	ATL                      *float64  `json:"atl,omitempty"`
	TotalVolume              float64   `json:"totalVolume"`
	CirculatingSupply        *float64  `json:"circulatingSupply,omitempty"`
	MaxSupply                *float64  `json:"maxSupply,omitempty"`
	LastUpdated              time.Time `json:"lastUpdated"`
}

type PricePoint struct {
	Timestamp time.Time `json:"timestamp"`
	Price     float64   `json:"price"`
}
