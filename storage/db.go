package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"crypto-dashboard/models"
)

// DBKV keeps values in the kv_entries table. It is the durable alternative to
// RedisKV when layouts must survive a cache flush.
type DBKV struct {
	db  *gorm.DB
	now func() time.Time
}

func NewDBKV(db *gorm.DB) *DBKV {
	return &DBKV{db: db, now: time.Now}
}

func (d *DBKV) Get(ctx context.Context, key string) (string, bool, error) {
	var entry models.KVEntry
	err := d.db.WithContext(ctx).Where(map[string]any{"key": key}).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("db get %s: %w", key, err)
	}
	if entry.ExpiresAt != nil && !d.now().Before(*entry.ExpiresAt) {
		return "", false, nil
	}
	return entry.Value, true, nil
}

func (d *DBKV) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	entry := models.KVEntry{Key: key, Value: value}
	if ttl > 0 {
		exp := d.now().Add(ttl)
		entry.ExpiresAt = &exp
	}
	err := d.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "expires_at", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("db set %s: %w", key, err)
	}
	return nil
}

func (d *DBKV) Delete(ctx context.Context, key string) error {
	if err := d.db.WithContext(ctx).Where(map[string]any{"key": key}).Delete(&models.KVEntry{}).Error; err != nil {
		return fmt.Errorf("db delete %s: %w", key, err)
	}
	return nil
}
