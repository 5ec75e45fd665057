// Package storage holds the key-value collaborators used to persist dashboard
// layouts and to cache data fetched from the portfolio API.
package storage

import (
	"context"
	"time"
)

// KV is a string key-value store. Get reports absence through its bool result
// rather than an error; errors are reserved for an unreachable backend.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
