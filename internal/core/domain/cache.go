package domain

import (
	"encoding/json"
	"math"
	"time"
)

// CacheNamespace partitions the cache keyspace.
type CacheNamespace string

const (
	// NamespaceIssue holds normalized issue records keyed by issue key.
	NamespaceIssue CacheNamespace = "issue"
	// NamespaceSearch holds whole graph results keyed by request fingerprint.
	NamespaceSearch CacheNamespace = "search"
)

// Namespaces lists every cache namespace.
func Namespaces() []CacheNamespace {
	return []CacheNamespace{NamespaceIssue, NamespaceSearch}
}

// Partition is the storage partition (directory, key prefix, table value) of the namespace.
func (n CacheNamespace) Partition() string {
	switch n {
	case NamespaceIssue:
		return "issues"
	case NamespaceSearch:
		return "searches"
	default:
		return string(n)
	}
}

// CacheEntry is the persisted form of a cached value.
type CacheEntry struct {
	Data      json.RawMessage `json:"data"`
	CachedAt  time.Time       `json:"cached_at"`
	ExpiresAt time.Time       `json:"expires_at"`
}

// NewCacheEntry wraps data with its timestamps.
func NewCacheEntry(data json.RawMessage, now time.Time, ttl time.Duration) CacheEntry {
	return CacheEntry{
		Data:      data,
		CachedAt:  now,
		ExpiresAt: now.Add(ttl),
	}
}

// Expired reports whether the entry is stale at the given time.
func (e *CacheEntry) Expired(now time.Time) bool {
	return now.After(e.ExpiresAt)
}

// Valid reports whether the entry carries the fields every record must have.
func (e *CacheEntry) Valid() bool {
	return len(e.Data) > 0 && !e.ExpiresAt.IsZero()
}

// CacheStats summarizes the cache content.
type CacheStats struct {
	Backend         string  `json:"backend"`
	TotalIssues     int     `json:"total_issues"`
	TotalSearches   int     `json:"total_searches"`
	ExpiredIssues   int     `json:"expired_issues"`
	ExpiredSearches int     `json:"expired_searches"`
	TotalBytes      int64   `json:"total_bytes"`
	SizeMB          float64 `json:"cache_size_mb"`
}

// Count records one stored entry of the namespace.
func (s *CacheStats) Count(ns CacheNamespace, size int64, expired bool) {
	s.TotalBytes += size
	s.SizeMB = math.Round(float64(s.TotalBytes)/(1024*1024)*100) / 100

	switch ns {
	case NamespaceIssue:
		s.TotalIssues++
		if expired {
			s.ExpiredIssues++
		}
	case NamespaceSearch:
		s.TotalSearches++
		if expired {
			s.ExpiredSearches++
		}
	}
}
