// Package portfolio derives dashboard figures from portfolios fetched from the
// backend. The backend is authoritative for every per-portfolio and per-asset
// number; this package only sums across portfolios and never cross-checks.
package portfolio

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

func sum(portfolios []Portfolio, field func(Portfolio) float64) decimal.Decimal {
	total := decimal.Zero
	for _, p := range portfolios {
		total = total.Add(decimal.NewFromFloat(field(p)))
	}
	return total
}

func totalValue(p Portfolio) float64 { return p.TotalValue }
func totalUnrealized(p Portfolio) float64 { return p.TotalProfitLoss }
func totalRealized(p Portfolio) float64 { return valueOrZero(p.TotalRealizedProfitLoss) }
func totalCostBasis(p Portfolio) float64 { return valueOrZero(p.TotalCostBasis) }

func TotalValue(portfolios []Portfolio) float64 {
	return sum(portfolios, totalValue).InexactFloat64()
}

func TotalUnrealizedPL(portfolios []Portfolio) float64 {
	return sum(portfolios, totalUnrealized).InexactFloat64()
}

// TotalRealizedPL treats a missing realized figure as zero.
func TotalRealizedPL(portfolios []Portfolio) float64 {
	return sum(portfolios, totalRealized).InexactFloat64()
}

// TotalCostBasis treats a missing cost basis as zero.
func TotalCostBasis(portfolios []Portfolio) float64 {
	return sum(portfolios, totalCostBasis).InexactFloat64()
}

// CombinedProfitLossPercentage returns the return across all portfolios.
//
// A single portfolio reports the backend's own percentage verbatim, since the
// backend may account for gains the cost basis alone cannot express. Several
// portfolios are combined as (unrealized + realized) / cost basis * 100, or 0
// when there is no cost basis.
func CombinedProfitLossPercentage(portfolios []Portfolio) float64 {
	switch len(portfolios) {
	case 0:
		return 0
	case 1:
		return portfolios[0].TotalProfitLossPercentage
	}

	costBasis := sum(portfolios, totalCostBasis)
	if !costBasis.IsPositive() {
		return 0
	}
	gain := sum(portfolios, totalUnrealized).Add(sum(portfolios, totalRealized))
	return gain.Div(costBasis).Mul(hundred).InexactFloat64()
}

// AssetReturnPercentage is the backend's per-asset percentage, unchanged.
func AssetReturnPercentage(a Asset) float64 {
	return a.ProfitLossPercentage
}

// Summary is what the summary-cards section renders.
type Summary struct {
	PortfolioCount               int     `json:"portfolioCount"`
	AssetCount                   int     `json:"assetCount"`
	TotalValue                   float64 `json:"totalValue"`
	TotalUnrealizedProfitLoss    float64 `json:"totalUnrealizedProfitLoss"`
	TotalRealizedProfitLoss      float64 `json:"totalRealizedProfitLoss"`
	TotalCostBasis               float64 `json:"totalCostBasis"`
	CombinedProfitLossPercentage float64 `json:"combinedProfitLossPercentage"`
}

func Summarize(portfolios []Portfolio) Summary {
	assets := 0
	for _, p := range portfolios {
		assets += len(p.Assets)
	}
	return Summary{
		PortfolioCount:               len(portfolios),
		AssetCount:                   assets,
		TotalValue:                   TotalValue(portfolios),
		TotalUnrealizedProfitLoss:    TotalUnrealizedPL(portfolios),
		TotalRealizedProfitLoss:      TotalRealizedPL(portfolios),
		TotalCostBasis:               TotalCostBasis(portfolios),
		CombinedProfitLossPercentage: CombinedProfitLossPercentage(portfolios),
	}
}

// FindAsset locates an asset within the given portfolio.
func FindAsset(portfolios []Portfolio, portfolioID, assetID string) (Asset, bool) {
	for _, p := range portfolios {
		if p.ID != portfolioID {
			continue
		}
		for _, a := range p.Assets {
			if a.ID == assetID {
				return a, true
			}
		}
		return Asset{}, false
	}
	return Asset{}, false
}
