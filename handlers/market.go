package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"crypto-dashboard/backend"
)

const (
	maxListingLimit = 250
	maxHistoryDays  = 365
)

// intQuery reads a positive integer query parameter capped at upper. ok is
// false when the value is present but not a positive integer.
func intQuery(c *gin.Context, name string, def, upper int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, false
	}
	return min(n, upper), true
}

func (h *Handler) ListCryptocurrencies(c *gin.Context) {
	limit, ok := intQuery(c, "limit", backend.DefaultListingLimit, maxListingLimit)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
		return
	}

	coins, err := h.market.Cryptocurrencies(c.Request.Context(), caller(c), limit)
	if err != nil {
		h.backendError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cryptocurrencies": coins})
}

func (h *Handler) GetCryptocurrency(c *gin.Context) {
	coin, err := h.market.Cryptocurrency(c.Request.Context(), caller(c), c.Param("id"))
	if err != nil {
		h.backendError(c, err)
		return
	}
	c.JSON(http.StatusOK, coin)
}

func (h *Handler) GetPriceHistory(c *gin.Context) {
	days, ok := intQuery(c, "days", backend.DefaultHistoryDays, maxHistoryDays)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "days must be a positive integer"})
		return
	}

	points, err := h.market.PriceHistory(c.Request.Context(), caller(c), c.Param("id"), days)
	if err != nil {
		h.backendError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cryptoId": c.Param("id"), "days": days, "prices": points})
}
