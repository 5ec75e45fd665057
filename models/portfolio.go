package models

import (
	"time"

	"gorm.io/gorm"
)

// PortfolioSnapshot records the backend's portfolio figures at the moment a
// summary was served. The performance chart reads them back as a time series.
type PortfolioSnapshot struct {
	gorm.Model
	UserID                    string `gorm:"index;size:64"`
	PortfolioID               string `gorm:"index"`
	Name                      string
	TotalValue                float64
	TotalProfitLoss           float64
	TotalProfitLossPercentage float64
	TotalRealizedProfitLoss   float64
	TotalCostBasis            float64
	Timestamp                 time.Time `gorm:"index;default:CURRENT_TIMESTAMP"`
}
