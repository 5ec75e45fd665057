package database

import (
	"context"
	"fmt"
	"slices"
	"time"

	"gorm.io/gorm"

	"crypto-dashboard/models"
	"crypto-dashboard/portfolio"
)

var ErrInvalidBatchSize = fmt.Errorf("invalid batch size")

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.KVEntry{},
		&models.PortfolioSnapshot{},
	)
}

// CreateInBatches inserts rows in chunks of batchSize inside one transaction.
func CreateInBatches[T any](ctx context.Context, db *gorm.DB, rows []T, batchSize int) error {
	if batchSize <= 0 {
		return ErrInvalidBatchSize
	}
	if len(rows) == 0 {
		return nil
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := 0; i < len(rows); i += batchSize {
			end := min(i+batchSize, len(rows))
			if err := tx.Create(rows[i:end]).Error; err != nil {
				return fmt.Errorf("batch insert failed: %w", err)
			}
		}
		return nil
	})
}

const snapshotBatchSize = 100

// SnapshotStore persists the backend's per-portfolio figures over time so the
// performance chart has a history to draw.
type SnapshotStore struct {
	db          *gorm.DB
	minInterval time.Duration
}

// NewSnapshotStore keeps at most one snapshot per portfolio every minInterval.
// Zero records every call.
func NewSnapshotStore(db *gorm.DB, minInterval time.Duration) *SnapshotStore {
	return &SnapshotStore{db: db, minInterval: minInterval}
}

// SnapshotsFor converts fetched portfolios into snapshot rows stamped with at.
func SnapshotsFor(userID string, ps []portfolio.Portfolio, at time.Time) []models.PortfolioSnapshot {
	rows := make([]models.PortfolioSnapshot, 0, len(ps))
	for _, p := range ps {
		row := models.PortfolioSnapshot{
			UserID:                    userID,
			PortfolioID:               p.ID,
			Name:                      p.Name,
			TotalValue:                p.TotalValue,
			TotalProfitLoss:           p.TotalProfitLoss,
			TotalProfitLossPercentage: p.TotalProfitLossPercentage,
			Timestamp:                 at,
		}
		if p.TotalRealizedProfitLoss != nil {
			row.TotalRealizedProfitLoss = *p.TotalRealizedProfitLoss
		}
		if p.TotalCostBasis != nil {
			row.TotalCostBasis = *p.TotalCostBasis
		}
		rows = append(rows, row)
	}
	return rows
}

// Record stores a snapshot of each portfolio, skipping portfolios already
// recorded within the store's minimum interval before at.
func (s *SnapshotStore) Record(ctx context.Context, userID string, ps []portfolio.Portfolio, at time.Time) error {
	at = at.UTC()
	rows := SnapshotsFor(userID, ps, at)
	if s.minInterval > 0 && len(rows) > 0 {
		var recent []string
		err := s.db.WithContext(ctx).Model(&models.PortfolioSnapshot{}).
			Where("user_id = ? AND timestamp > ?", userID, at.Add(-s.minInterval)).
			Pluck("portfolio_id", &recent).Error
		if err != nil {
			return fmt.Errorf("load recent snapshots: %w", err)
		}
		rows = slices.DeleteFunc(rows, func(r models.PortfolioSnapshot) bool {
			return slices.Contains(recent, r.PortfolioID)
		})
	}
	return CreateInBatches(ctx, s.db, rows, snapshotBatchSize)
}

// History returns a user's snapshots oldest first, optionally for one
// portfolio, limited to the most recent limit rows.
func (s *SnapshotStore) History(ctx context.Context, userID, portfolioID string, limit int) ([]models.PortfolioSnapshot, error) {
	q := s.db.WithContext(ctx).Where("user_id = ?", userID)
	if portfolioID != "" {
		q = q.Where("portfolio_id = ?", portfolioID)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	var rows []models.PortfolioSnapshot
	if err := q.Order("timestamp DESC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load snapshots: %w", err)
	}
	for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
		rows[i], rows[j] = rows[j], rows[i]
	}
	return rows, nil
}
