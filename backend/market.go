package backend

import (
	"context"
	"fmt"
	"strconv"

	"crypto-dashboard/portfolio"
)

const (
	DefaultListingLimit = 20
	DefaultHistoryDays  = 30
)

// Cryptocurrencies returns the top listings by market cap. Listings are the
// same for every user, so the cache entry is shared.
func (c *Client) Cryptocurrencies(ctx context.Context, caller Caller, limit int) ([]portfolio.Cryptocurrency, error) {
	if limit <= 0 {
		limit = DefaultListingLimit
	}
	key := "market:cryptocurrencies:" + strconv.Itoa(limit)
	if cached, ok := cacheGet[[]portfolio.Cryptocurrency](ctx, c, key); ok {
		return cached, nil
	}

	var data struct {
		Cryptocurrencies []portfolio.Cryptocurrency `json:"cryptocurrencies"`
	}
	if err := c.do(ctx, caller, "cryptocurrencies", cryptocurrenciesQuery, map[string]any{"limit": limit}, &data); err != nil {
		return nil, err
	}
	if data.Cryptocurrencies == nil {
		data.Cryptocurrencies = []portfolio.Cryptocurrency{}
	}

	cacheSet(ctx, c, key, data.Cryptocurrencies)
	return data.Cryptocurrencies, nil
}

func (c *Client) Cryptocurrency(ctx context.Context, caller Caller, id string) (portfolio.Cryptocurrency, error) {
	var data struct {
		Cryptocurrency *portfolio.Cryptocurrency `json:"cryptocurrency"`
	}
	if err := c.do(ctx, caller, "cryptocurrency", cryptocurrencyQuery, map[string]any{"id": id}, &data); err != nil {
		return portfolio.Cryptocurrency{}, err
	}
	if data.Cryptocurrency == nil {
		return portfolio.Cryptocurrency{}, fmt.Errorf("cryptocurrency %s: %w", id, ErrNotFound)
	}
	return *data.Cryptocurrency, nil
}

// PriceHistory returns the price points of the last days days.
func (c *Client) PriceHistory(ctx context.Context, caller Caller, cryptoID string, days int) ([]portfolio.PricePoint, error) {
	if days <= 0 {
		days = DefaultHistoryDays
	}

	var data struct {
		Points *[]portfolio.PricePoint `json:"priceHistory"`
	}
	vars := map[string]any{"cryptoId": cryptoID, "days": days}
	if err := c.do(ctx, caller, "priceHistory", priceHistoryQuery, vars, &data); err != nil {
		return nil, err
	}
	if data.Points == nil {
		return nil, fmt.Errorf("cryptocurrency %s: %w", cryptoID, ErrNotFound)
	}
	return *data.Points, nil
}
