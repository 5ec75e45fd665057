package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"crypto-dashboard/backend"
	"crypto-dashboard/middleware"
	"crypto-dashboard/models"
	"crypto-dashboard/portfolio"
)

const maxHistory = 1000

func (h *Handler) GetSummary(c *gin.Context) {
	ctx := c.Request.Context()
	ps, fresh, err := h.portfolios.PortfoliosFresh(ctx, caller(c))
	if err != nil {
		h.backendError(c, err)
		return
	}

	// cached figures were already recorded when they were fetched
	if fresh && h.snapshots != nil && len(ps) > 0 {
		if err := h.snapshots.Record(ctx, middleware.UserID(c), ps, h.now()); err != nil {
			log := h.requestLog(c)
			log.Warn().Err(err).Msg("failed to record portfolio snapshots")
		}
	}

	c.JSON(http.StatusOK, portfolio.Summarize(ps))
}

func (h *Handler) GetHistory(c *gin.Context) {
	limit, ok := intQuery(c, "limit", maxHistory, maxHistory)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
		return
	}

	if h.snapshots == nil {
		c.JSON(http.StatusOK, gin.H{"snapshots": []models.PortfolioSnapshot{}})
		return
	}

	rows, err := h.snapshots.History(c.Request.Context(), middleware.UserID(c), c.Query("portfolioId"), limit)
	if err != nil {
		log := h.requestLog(c)
		log.Error().Err(err).Msg("failed to load portfolio history")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch portfolio history"})
		return
	}
	if rows == nil {
		rows = []models.PortfolioSnapshot{}
	}
	c.JSON(http.StatusOK, gin.H{"snapshots": rows})
}

func (h *Handler) GetPortfolioTransactions(c *gin.Context) {
	kind := c.DefaultQuery("type", "all")
	switch kind {
	case "all", string(portfolio.Buy), string(portfolio.Sell):
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "type must be one of all, buy, sell"})
		return
	}

	txs, err := h.portfolios.PortfolioTransactions(c.Request.Context(), caller(c), c.Param("id"))
	if err != nil {
		h.backendError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"transactions": portfolio.SortTransactionsDescending(portfolio.FilterTransactions(txs, kind)),
		"totals":       portfolio.TransactionTotals(txs),
	})
}

func (h *Handler) GetAssetTransactions(c *gin.Context) {
	ps, err := h.portfolios.Portfolios(c.Request.Context(), caller(c))
	if err != nil {
		h.backendError(c, err)
		return
	}

	asset, ok := portfolio.FindAsset(ps, c.Param("id"), c.Param("assetId"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Asset not found"})
		return
	}

	txs := portfolio.SortTransactionsDescending(asset.Transactions)
	if txs == nil {
		txs = []portfolio.Transaction{}
	}
	c.JSON(http.StatusOK, gin.H{
		"assetId":              asset.ID,
		"symbol":               asset.Symbol,
		"amount":               asset.Amount,
		"profitLossPercentage": portfolio.AssetReturnPercentage(asset),
		"transactions":         txs,
		"totals":               portfolio.TransactionTotals(asset.Transactions),
	})
}

type TransactionInput struct {
	TransactionType portfolio.TransactionType `json:"transactionType" binding:"required,oneof=buy sell"`
	Amount          float64                   `json:"amount" binding:"required,gt=0"`
	PricePerUnit    float64                   `json:"pricePerUnit" binding:"required,gt=0"`
	Notes           string                    `json:"notes"`
	// Confirm accepts a sell amount adjusted down to the holding.
	Confirm bool `json:"confirm"`
}

// AddAssetTransaction runs a buy or sell through the trade form and submits
// it once confirmed. An oversized sell without confirm answers 409 with the
// amount it would be adjusted to.
func (h *Handler) AddAssetTransaction(c *gin.Context) {
	var input TransactionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	ps, err := h.portfolios.Portfolios(ctx, caller(c))
	if err != nil {
		h.backendError(c, err)
		return
	}
	portfolioID, assetID := c.Param("id"), c.Param("assetId")
	asset, ok := portfolio.FindAsset(ps, portfolioID, assetID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Asset not found"})
		return
	}

	form := portfolio.NewTradeForm(asset, input.TransactionType)
	if err := form.SetAmount(input.Amount); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	state, err := form.Submit()
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, portfolio.ErrInvalidAmount):
			status = http.StatusBadRequest
		case errors.Is(err, portfolio.ErrNothingToSell):
			status = http.StatusConflict
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	adjusted := state == portfolio.Adjusted
	if adjusted {
		if !input.Confirm {
			c.JSON(http.StatusConflict, gin.H{
				"error":                fmt.Sprintf("Only %s %s held", formatAmount(asset.Amount), strings.ToUpper(asset.Symbol)),
				"outcome":              form.Check().Outcome,
				"requested":            input.Amount,
				"amount":               form.Amount(),
				"requiresConfirmation": true,
			})
			_ = form.Cancel()
			return
		}
		if err := form.Confirm(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}

	notes := input.Notes
	if notes == "" && form.FullSellout() {
		notes = fmt.Sprintf("Full sellout of %s %s", formatAmount(form.Amount()), strings.ToUpper(asset.Symbol))
	}

	tx, err := h.portfolios.AddTransaction(ctx, caller(c), backend.NewTransaction{
		PortfolioID:     portfolioID,
		AssetID:         assetID,
		TransactionType: form.Kind(),
		Amount:          form.Amount(),
		PricePerUnit:    input.PricePerUnit,
		Notes:           notes,
	})
	if err != nil {
		h.backendError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"transaction": tx,
		"amount":      form.Amount(),
		"adjusted":    adjusted,
		"fullSellout": form.FullSellout(),
	})
}

// formatAmount renders the shortest decimal form, without trailing zeros.
func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
