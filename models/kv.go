package models

import "time"

// KVEntry backs storage.DBKV: one row per key.
type KVEntry struct {
	Key       string `gorm:"primaryKey;size:255"`
	Value     string `gorm:"type:text"`
	ExpiresAt *time.Time
	UpdatedAt time.Time
}

func (KVEntry) TableName() string {
	return "kv_entries"
}
