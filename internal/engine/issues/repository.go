// Package issues implements the cache-first issue data access layer.
package issues

import (
	"context"
	"encoding/json"
	"fmt"

	"go.trai.ch/depgraph/internal/core/domain"
	"go.trai.ch/depgraph/internal/core/ports"
	"go.trai.ch/zerr"
)

// Repository implements ports.IssueRepository.
// Tracker failures are logged and resolved to absent or empty results.
type Repository struct {
	tracker ports.TrackerClient
	cache   ports.CacheStore
	logger  ports.Logger
}

// NewRepository creates a Repository.
func NewRepository(tracker ports.TrackerClient, cache ports.CacheStore, log ports.Logger) *Repository {
	return &Repository{
		tracker: tracker,
		cache:   cache,
		logger:  log,
	}
}

// GetIssue returns the issue from the cache when the cached copy covers the requested
// fields, and from the tracker otherwise.
func (r *Repository) GetIssue(ctx context.Context, key string, fields domain.FieldSet) (*domain.IssueRecord, bool) {
	want := fields
	if cached, ok := r.cached(ctx, key); ok {
		if cached.Covers(fields) {
			r.logger.Debug(fmt.Sprintf("cache hit: %s", key))
			return cached, true
		}
		// Refetch with the union so the replaced entry still covers the cached set.
		want = cached.Fields.Union(fields)
	}

	r.logger.Debug(fmt.Sprintf("cache miss: %s", key))
	rec, err := r.tracker.GetIssue(ctx, key, want)
	if err != nil {
		r.logger.Warn(zerr.With(err, "issue_key", key).Error())
		return nil, false
	}
	if rec == nil {
		return nil, false
	}
	if rec.Fields == nil {
		rec.Fields = want
	}

	r.cache.Set(ctx, domain.NamespaceIssue, key, rec, 0)
	return rec, true
}

// Seed stores records in the issue namespace as if they had been fetched.
func (r *Repository) Seed(ctx context.Context, records []domain.IssueRecord) int {
	for i := range records {
		r.cache.Set(ctx, domain.NamespaceIssue, records[i].Key, &records[i], 0)
	}
	return len(records)
}

// Search collects up to maxResults issues across tracker pages.
func (r *Repository) Search(
	ctx context.Context,
	query string,
	maxResults int,
	fields domain.FieldSet,
) []domain.IssueRecord {
	var (
		out   []domain.IssueRecord
		token string
	)

	for len(out) < maxResults {
		batch := min(domain.SearchPageSize, maxResults-len(out))
		page, err := r.tracker.Search(ctx, query, batch, fields, token)
		if err != nil {
			r.logger.Warn(zerr.With(err, "jql", query).Error())
			return []domain.IssueRecord{}
		}
		if len(page.Issues) == 0 {
			break
		}

		for i := range page.Issues {
			if page.Issues[i].Fields == nil {
				page.Issues[i].Fields = fields
			}
		}
		out = append(out, page.Issues...)

		if page.NextToken == "" {
			break
		}
		token = page.NextToken
	}

	if len(out) > maxResults {
		out = out[:maxResults]
	}
	if out == nil {
		out = []domain.IssueRecord{}
	}
	return out
}

func (r *Repository) cached(ctx context.Context, key string) (*domain.IssueRecord, bool) {
	data, ok := r.cache.Get(ctx, domain.NamespaceIssue, key)
	if !ok {
		return nil, false
	}

	var rec domain.IssueRecord
	if err := json.Unmarshal(data, &rec); err != nil || rec.Key == "" {
		r.logger.Debug(fmt.Sprintf("ignoring undecodable cache entry: %s", key))
		return nil, false
	}
	return &rec, true
}
