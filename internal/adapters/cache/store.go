// Package cache implements the namespaced, TTL-expiring cache store.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"go.trai.ch/depgraph/internal/core/domain"
	"go.trai.ch/depgraph/internal/core/ports"
	"go.trai.ch/zerr"
)

// Store implements ports.CacheStore on top of a ports.CacheBackend.
// Logical keys are hashed before they reach the backend.
type Store struct {
	backend ports.CacheBackend
	logger  ports.Logger
	ttl     time.Duration
	now     func() time.Time
}

// New creates a Store. A ttl of zero or less selects domain.DefaultTTL.
func New(backend ports.CacheBackend, log ports.Logger, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = domain.DefaultTTL
	}
	return &Store{
		backend: backend,
		logger:  log,
		ttl:     ttl,
		now:     time.Now,
	}
}

// WithClock replaces the time source. Used for testing expiry.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

// StorageName maps a logical key to a bounded, storage-safe name.
func StorageName(key string) string {
	hash := sha256.Sum256([]byte(key))
	return hex.EncodeToString(hash[:])
}

// Get returns the cached payload. Corrupt and expired entries are removed.
func (s *Store) Get(ctx context.Context, ns domain.CacheNamespace, key string) (json.RawMessage, bool) {
	name := StorageName(key)

	payload, err := s.backend.Read(ctx, ns, name)
	if err != nil {
		lookupsTotal.WithLabelValues(string(ns), resultCorrupt).Inc()
		s.logger.Warn(zerr.With(zerr.Wrap(err, "cache read failed"), "key", key).Error())
		s.evict(ctx, ns, name)
		return nil, false
	}
	if payload == nil {
		lookupsTotal.WithLabelValues(string(ns), resultMiss).Inc()
		return nil, false
	}

	entry, ok := decodeEntry(payload)
	if !ok {
		lookupsTotal.WithLabelValues(string(ns), resultCorrupt).Inc()
		s.evict(ctx, ns, name)
		return nil, false
	}

	if entry.Expired(s.now()) {
		lookupsTotal.WithLabelValues(string(ns), resultExpired).Inc()
		s.evict(ctx, ns, name)
		return nil, false
	}

	lookupsTotal.WithLabelValues(string(ns), resultHit).Inc()
	return entry.Data, true
}

// Set stores data under key. Failures are logged and never returned.
func (s *Store) Set(ctx context.Context, ns domain.CacheNamespace, key string, data any, ttl time.Duration) {
	if ttl <= 0 {
		ttl = s.ttl
	}

	if err := s.write(ctx, ns, key, data, ttl); err != nil {
		writeFailuresTotal.WithLabelValues(string(ns)).Inc()
		s.logger.Warn(zerr.With(err, "key", key).Error())
	}
}

func (s *Store) write(ctx context.Context, ns domain.CacheNamespace, key string, data any, ttl time.Duration) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return zerr.Wrap(err, domain.ErrCacheMarshalFailed.Error())
	}

	payload, err := json.Marshal(domain.NewCacheEntry(raw, s.now(), ttl))
	if err != nil {
		return zerr.Wrap(err, domain.ErrCacheMarshalFailed.Error())
	}

	return s.backend.Write(ctx, ns, StorageName(key), payload)
}

// ClearAll removes every entry of every namespace.
func (s *Store) ClearAll(ctx context.Context) (int, error) {
	return s.clear(ctx, func(domain.CacheEntry, bool) bool { return true })
}

// ClearExpired removes expired and corrupt entries.
func (s *Store) ClearExpired(ctx context.Context) (int, error) {
	now := s.now()
	return s.clear(ctx, func(entry domain.CacheEntry, ok bool) bool {
		return !ok || entry.Expired(now)
	})
}

func (s *Store) clear(ctx context.Context, match func(entry domain.CacheEntry, ok bool) bool) (int, error) {
	removed := 0
	for _, ns := range domain.Namespaces() {
		var names []string
		err := s.backend.Scan(ctx, ns, func(name string, payload []byte) error {
			if match(decodeEntry(payload)) {
				names = append(names, name)
			}
			return nil
		})
		if err != nil {
			return removed, zerr.With(err, "namespace", string(ns))
		}

		for _, name := range names {
			if err := s.backend.Delete(ctx, ns, name); err != nil {
				return removed, zerr.With(err, "namespace", string(ns))
			}
			removed++
			evictionsTotal.WithLabelValues(string(ns)).Inc()
		}
	}
	return removed, nil
}

// Stats counts entries per namespace. Corrupt entries count as expired.
func (s *Store) Stats(ctx context.Context) (domain.CacheStats, error) {
	stats := domain.CacheStats{Backend: s.backend.Name()}
	now := s.now()

	for _, ns := range domain.Namespaces() {
		err := s.backend.Scan(ctx, ns, func(_ string, payload []byte) error {
			entry, ok := decodeEntry(payload)
			stats.Count(ns, int64(len(payload)), !ok || entry.Expired(now))
			return nil
		})
		if err != nil {
			return stats, zerr.With(err, "namespace", string(ns))
		}
	}
	return stats, nil
}

func (s *Store) evict(ctx context.Context, ns domain.CacheNamespace, name string) {
	if err := s.backend.Delete(ctx, ns, name); err != nil {
		s.logger.Debug("cache eviction failed: " + err.Error())
		return
	}
	evictionsTotal.WithLabelValues(string(ns)).Inc()
}

func decodeEntry(payload []byte) (domain.CacheEntry, bool) {
	var entry domain.CacheEntry
	if err := json.Unmarshal(payload, &entry); err != nil {
		return entry, false
	}
	return entry, entry.Valid()
}
