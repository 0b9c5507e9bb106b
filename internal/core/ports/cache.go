package ports

import (
	"context"
	"encoding/json"
	"time"

	"go.trai.ch/depgraph/internal/core/domain"
)

// CacheStore defines a namespaced, TTL-expiring key-value cache.
// Reads and writes never fail from the caller's point of view.
//
//go:generate mockgen -source=cache.go -destination=mocks/mock_cache.go -package=mocks
type CacheStore interface {
	// Get returns the cached payload, or false when it is missing, corrupt or expired.
	Get(ctx context.Context, ns domain.CacheNamespace, key string) (json.RawMessage, bool)

	// Set stores data under key. A ttl of zero or less selects the default ttl.
	Set(ctx context.Context, ns domain.CacheNamespace, key string, data any, ttl time.Duration)

	// ClearAll removes every entry and returns how many were removed.
	ClearAll(ctx context.Context) (int, error)

	// ClearExpired removes expired and corrupt entries and returns how many were removed.
	ClearExpired(ctx context.Context) (int, error)

	// Stats summarizes the cache content.
	Stats(ctx context.Context) (domain.CacheStats, error)
}

// CacheBackend defines the raw storage under a CacheStore.
// Names are storage-safe already; backends never see logical keys.
type CacheBackend interface {
	// Name identifies the backend in statistics.
	Name() string

	// Read returns the stored payload. A missing entry returns nil, nil.
	Read(ctx context.Context, ns domain.CacheNamespace, name string) ([]byte, error)

	// Write stores the payload, replacing any previous one.
	Write(ctx context.Context, ns domain.CacheNamespace, name string, payload []byte) error

	// Delete removes the entry. Deleting a missing entry is not an error.
	Delete(ctx context.Context, ns domain.CacheNamespace, name string) error

	// Scan calls fn for every entry of the namespace.
	Scan(ctx context.Context, ns domain.CacheNamespace, fn func(name string, payload []byte) error) error

	// Close releases the storage.
	Close() error
}
