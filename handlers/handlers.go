package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"crypto-dashboard/backend"
	"crypto-dashboard/middleware"
	"crypto-dashboard/models"
	"crypto-dashboard/portfolio"
	"crypto-dashboard/storage"
)

// PortfolioSource is the remote portfolio API as the handlers see it.
type PortfolioSource interface {
	Portfolios(ctx context.Context, caller backend.Caller) ([]portfolio.Portfolio, error)
	// PortfoliosFresh also reports whether the list came from the backend
	// rather than the cache.
	PortfoliosFresh(ctx context.Context, caller backend.Caller) ([]portfolio.Portfolio, bool, error)
	PortfolioTransactions(ctx context.Context, caller backend.Caller, portfolioID string) ([]portfolio.Transaction, error)
	AddTransaction(ctx context.Context, caller backend.Caller, in backend.NewTransaction) (portfolio.Transaction, error)

	CreatePortfolio(ctx context.Context, caller backend.Caller, name string, description *string) (portfolio.Portfolio, error)
	UpdatePortfolio(ctx context.Context, caller backend.Caller, id string, name, description *string) (portfolio.Portfolio, error)
	DeletePortfolio(ctx context.Context, caller backend.Caller, id string) error
	AddAsset(ctx context.Context, caller backend.Caller, in backend.NewAsset) (portfolio.Asset, error)
	RemoveAsset(ctx context.Context, caller backend.Caller, portfolioID, assetID string) error
}

// MarketSource serves the market listings behind the top-cryptos section.
type MarketSource interface {
	Cryptocurrencies(ctx context.Context, caller backend.Caller, limit int) ([]portfolio.Cryptocurrency, error)
	Cryptocurrency(ctx context.Context, caller backend.Caller, id string) (portfolio.Cryptocurrency, error)
	PriceHistory(ctx context.Context, caller backend.Caller, cryptoID string, days int) ([]portfolio.PricePoint, error)
}

// Source is everything the handlers need from the backend.
type Source interface {
	PortfolioSource
	MarketSource
}

// SnapshotRecorder stores portfolio figures for the performance chart.
type SnapshotRecorder interface {
	Record(ctx context.Context, userID string, ps []portfolio.Portfolio, at time.Time) error
	History(ctx context.Context, userID, portfolioID string, limit int) ([]models.PortfolioSnapshot, error)
}

type Handler struct {
	layouts    storage.KV
	portfolios PortfolioSource
	market     MarketSource
	snapshots  SnapshotRecorder
	log        zerolog.Logger
	now        func() time.Time
}

// New builds the handler set. snapshots may be nil, which disables history.
func New(layouts storage.KV, src Source, snapshots SnapshotRecorder, log zerolog.Logger) *Handler {
	return &Handler{
		layouts:    layouts,
		portfolios: src,
		market:     src,
		snapshots:  snapshots,
		log:        log,
		now:        time.Now,
	}
}

// Register mounts every dashboard route on r, which must already be
// behind JWTAuth.
func (h *Handler) Register(r gin.IRoutes) {
	r.GET("/dashboard/layout", h.GetLayout)
	r.GET("/dashboard/sections", h.GetEnabledSections)
	r.GET("/dashboard/presets", h.ListPresets)
	r.POST("/dashboard/layout/reorder", h.ReorderSections)
	r.POST("/dashboard/layout/reset", h.ResetLayout)
	r.POST("/dashboard/layout/presets/:name", h.ApplyPreset)
	r.POST("/dashboard/sections/:id/toggle", h.ToggleSection)
	r.PUT("/dashboard/sections/:id/size", h.ResizeSection)

	r.GET("/portfolios/summary", h.GetSummary)
	r.GET("/portfolios/history", h.GetHistory)
	r.POST("/portfolios", h.CreatePortfolio)
	r.PUT("/portfolios/:id", h.UpdatePortfolio)
	r.DELETE("/portfolios/:id", h.DeletePortfolio)
	r.POST("/portfolios/:id/assets", h.AddAsset)
	r.DELETE("/portfolios/:id/assets/:assetId", h.RemoveAsset)
	r.GET("/portfolios/:id/transactions", h.GetPortfolioTransactions)
	r.GET("/portfolios/:id/assets/:assetId/transactions", h.GetAssetTransactions)
	r.POST("/portfolios/:id/assets/:assetId/transactions", h.AddAssetTransaction)

	r.GET("/market/cryptocurrencies", h.ListCryptocurrencies)
	r.GET("/market/cryptocurrencies/:id", h.GetCryptocurrency)
	r.GET("/market/cryptocurrencies/:id/history", h.GetPriceHistory)
}

func caller(c *gin.Context) backend.Caller {
	return backend.Caller{UserID: middleware.UserID(c), Token: middleware.Token(c)}
}

func (h *Handler) requestLog(c *gin.Context) zerolog.Logger {
	return h.log.With().
		Str("request_id", middleware.GetRequestID(c)).
		Str("user_id", middleware.UserID(c)).
		Logger()
}

// backendError maps a backend failure onto an HTTP response.
func (h *Handler) backendError(c *gin.Context, err error) {
	log := h.requestLog(c)
	switch {
	case errors.Is(err, backend.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Portfolio service rejected credentials"})
	case errors.Is(err, backend.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, backend.ErrUnavailable):
		log.Error().Err(err).Msg("portfolio service unavailable")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Portfolio service unavailable"})
	default:
		log.Error().Err(err).Msg("portfolio service call failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch portfolio data"})
	}
}
