package domain_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/depgraph/internal/core/domain"
)

func TestCacheEntry(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	entry := domain.NewCacheEntry(json.RawMessage(`{"a":1}`), now, time.Minute)

	assert.True(t, entry.Valid())
	assert.False(t, entry.Expired(now))
	assert.False(t, entry.Expired(now.Add(time.Minute)))
	assert.True(t, entry.Expired(now.Add(time.Minute+time.Nanosecond)))

	var missing domain.CacheEntry
	assert.False(t, missing.Valid())
}

func TestCacheStats_Count(t *testing.T) {
	var stats domain.CacheStats
	stats.Count(domain.NamespaceIssue, 1024*1024, false)
	stats.Count(domain.NamespaceIssue, 512*1024, true)
	stats.Count(domain.NamespaceSearch, 10, true)

	assert.Equal(t, 2, stats.TotalIssues)
	assert.Equal(t, 1, stats.ExpiredIssues)
	assert.Equal(t, 1, stats.TotalSearches)
	assert.Equal(t, 1, stats.ExpiredSearches)
	assert.InDelta(t, 1.5, stats.SizeMB, 0.001)
}

func TestCacheNamespace_Partition(t *testing.T) {
	assert.Equal(t, "issues", domain.NamespaceIssue.Partition())
	assert.Equal(t, "searches", domain.NamespaceSearch.Partition())
}
