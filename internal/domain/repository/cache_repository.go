package repository

import (
	"context"
	"time"

	"github.com/clinic-directory/internal/domain"
)

// CacheRepository is the Redis-backed side cache for geocoding results.
type CacheRepository interface {
	// Get returns the cached value or nil on a miss.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value with TTL.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a key.
	Delete(ctx context.Context, key string) error

	// Exists reports whether a key is present.
	Exists(ctx context.Context, key string) (bool, error)

	// GetGeocode returns a cached geocoding result or nil on a miss.
	GetGeocode(ctx context.Context, key string) (*domain.GeocodeResult, error)

	// SetGeocode caches a geocoding result with TTL.
	SetGeocode(ctx context.Context, key string, result *domain.GeocodeResult, ttl time.Duration) error
}
