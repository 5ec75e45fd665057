package backend

import (
	"context"
	"fmt"

	"crypto-dashboard/portfolio"
)

// CreatePortfolio creates an empty portfolio for the caller.
func (c *Client) CreatePortfolio(ctx context.Context, caller Caller, name string, description *string) (portfolio.Portfolio, error) {
	input := map[string]any{"name": name}
	if description != nil {
		input["description"] = *description
	}

	var data struct {
		Portfolio portfolio.Portfolio `json:"createPortfolio"`
	}
	if err := c.do(ctx, caller, "createPortfolio", createPortfolioMutation, map[string]any{"input": input}, &data); err != nil {
		return portfolio.Portfolio{}, err
	}

	c.Invalidate(ctx, caller)
	c.log.Info().Str("user_id", caller.UserID).Str("portfolio_id", data.Portfolio.ID).Msg("portfolio created")
	return data.Portfolio, nil
}

// UpdatePortfolio renames or re-describes a portfolio. Nil fields are left as
// they are.
func (c *Client) UpdatePortfolio(ctx context.Context, caller Caller, id string, name, description *string) (portfolio.Portfolio, error) {
	vars := map[string]any{"id": id}
	if name != nil {
		vars["name"] = *name
	}
	if description != nil {
		vars["description"] = *description
	}

	var data struct {
		Portfolio *portfolio.Portfolio `json:"updatePortfolio"`
	}
	if err := c.do(ctx, caller, "updatePortfolio", updatePortfolioMutation, vars, &data); err != nil {
		return portfolio.Portfolio{}, err
	}
	if data.Portfolio == nil {
		return portfolio.Portfolio{}, fmt.Errorf("portfolio %s: %w", id, ErrNotFound)
	}

	c.Invalidate(ctx, caller)
	return *data.Portfolio, nil
}

func (c *Client) DeletePortfolio(ctx context.Context, caller Caller, id string) error {
	var data struct {
		Deleted bool `json:"deletePortfolio"`
	}
	if err := c.do(ctx, caller, "deletePortfolio", deletePortfolioMutation, map[string]any{"id": id}, &data); err != nil {
		return err
	}
	if !data.Deleted {
		return fmt.Errorf("portfolio %s: %w", id, ErrNotFound)
	}

	c.Invalidate(ctx, caller)
	c.log.Info().Str("user_id", caller.UserID).Str("portfolio_id", id).Msg("portfolio deleted")
	return nil
}

type NewAsset struct {
	PortfolioID   string
	CryptoID      string
	Amount        float64
	PurchasePrice float64
}

// AddAsset adds a holding of a listed cryptocurrency to a portfolio.
func (c *Client) AddAsset(ctx context.Context, caller Caller, in NewAsset) (portfolio.Asset, error) {
	vars := map[string]any{
		"portfolioId":   in.PortfolioID,
		"cryptoId":      in.CryptoID,
		"amount":        in.Amount,
		"purchasePrice": in.PurchasePrice,
	}

	var data struct {
		Asset *portfolio.Asset `json:"addAssetToPortfolio"`
	}
	if err := c.do(ctx, caller, "addAssetToPortfolio", addAssetMutation, vars, &data); err != nil {
		return portfolio.Asset{}, err
	}
	if data.Asset == nil {
		return portfolio.Asset{}, fmt.Errorf("portfolio %s: %w", in.PortfolioID, ErrNotFound)
	}

	c.Invalidate(ctx, caller)
	c.log.Info().
		Str("user_id", caller.UserID).
		Str("portfolio_id", in.PortfolioID).
		Str("crypto_id", in.CryptoID).
		Float64("amount", in.Amount).
		Msg("asset added")
	return *data.Asset, nil
}

func (c *Client) RemoveAsset(ctx context.Context, caller Caller, portfolioID, assetID string) error {
	var data struct {
		Removed bool `json:"removeAssetFromPortfolio"`
	}
	vars := map[string]any{"portfolioId": portfolioID, "assetId": assetID}
	if err := c.do(ctx, caller, "removeAssetFromPortfolio", removeAssetMutation, vars, &data); err != nil {
		return err
	}
	if !data.Removed {
		return fmt.Errorf("asset %s in portfolio %s: %w", assetID, portfolioID, ErrNotFound)
	}

	c.Invalidate(ctx, caller)
	return nil
}
