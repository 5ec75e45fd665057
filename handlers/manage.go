package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"crypto-dashboard/backend"
)

type CreatePortfolioInput struct {
	Name        string  `json:"name" binding:"required,max=100"`
	Description *string `json:"description" binding:"omitempty,max=500"`
}

func (h *Handler) CreatePortfolio(c *gin.Context) {
	var input CreatePortfolioInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, err := h.portfolios.CreatePortfolio(c.Request.Context(), caller(c), input.Name, input.Description)
	if err != nil {
		h.backendError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

type UpdatePortfolioInput struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=100"`
	Description *string `json:"description" binding:"omitempty,max=500"`
}

func (h *Handler) UpdatePortfolio(c *gin.Context) {
	var input UpdatePortfolioInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Name == nil && input.Description == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to update"})
		return
	}

	p, err := h.portfolios.UpdatePortfolio(c.Request.Context(), caller(c), c.Param("id"), input.Name, input.Description)
	if err != nil {
		h.backendError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) DeletePortfolio(c *gin.Context) {
	if err := h.portfolios.DeletePortfolio(c.Request.Context(), caller(c), c.Param("id")); err != nil {
		h.backendError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Portfolio deleted successfully"})
}

type AddAssetInput struct {
	CryptoID      string  `json:"cryptoId" binding:"required"`
	Amount        float64 `json:"amount" binding:"required,gt=0"`
	PurchasePrice float64 `json:"purchasePrice" binding:"required,gt=0"`
}

func (h *Handler) AddAsset(c *gin.Context) {
	var input AddAssetInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	a, err := h.portfolios.AddAsset(c.Request.Context(), caller(c), backend.NewAsset{
		PortfolioID:   c.Param("id"),
		CryptoID:      input.CryptoID,
		Amount:        input.Amount,
		PurchasePrice: input.PurchasePrice,
	})
	if err != nil {
		h.backendError(c, err)
		return
	}
	c.JSON(http.StatusCreated, a)
}

func (h *Handler) RemoveAsset(c *gin.Context) {
	if err := h.portfolios.RemoveAsset(c.Request.Context(), caller(c), c.Param("id"), c.Param("assetId")); err != nil {
		h.backendError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Asset removed successfully"})
}
