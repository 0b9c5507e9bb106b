package graph_test

import (
	"context"
	"fmt"
	"sync"

	"go.trai.ch/depgraph/internal/core/domain"
)

// fakeRepo is an in-memory issue repository that records every fetch.
type fakeRepo struct {
	mu       sync.Mutex
	issues   map[string]domain.IssueRecord
	searches map[string][]string
	fetches  map[string]int
}

func newFakeRepo(records ...domain.IssueRecord) *fakeRepo {
	r := &fakeRepo{
		issues:   make(map[string]domain.IssueRecord),
		searches: make(map[string][]string),
		fetches:  make(map[string]int),
	}
	for _, rec := range records {
		r.issues[rec.Key] = rec
	}
	return r
}

func (r *fakeRepo) GetIssue(_ context.Context, key string, _ domain.FieldSet) (*domain.IssueRecord, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fetches[key]++
	rec, ok := r.issues[key]
	if !ok {
		return nil, false
	}
	return &rec, true
}

func (r *fakeRepo) Search(_ context.Context, query string, maxResults int, _ domain.FieldSet) []domain.IssueRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.IssueRecord{}
	for _, key := range r.searches[query] {
		if len(out) == maxResults {
			break
		}
		out = append(out, r.issues[key])
	}
	return out
}

func (r *fakeRepo) fetchCount(key string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.fetches[key]
}

func issue(key string, links ...domain.IssueLink) domain.IssueRecord {
	return domain.IssueRecord{Key: key, Summary: "Issue " + key, Links: links}
}

func blocks(other string) domain.IssueLink {
	return domain.IssueLink{
		Type: "Blocks", Outward: "blocks", Inward: "is blocked by",
		OtherKey: other, Direction: domain.LinkOutward,
	}
}

func blockedBy(other string) domain.IssueLink {
	return domain.IssueLink{
		Type: "Blocks", Outward: "blocks", Inward: "is blocked by",
		OtherKey: other, Direction: domain.LinkInward,
	}
}

func relates(other string) domain.IssueLink {
	return domain.IssueLink{
		Type: "Relates", Outward: "relates to", Inward: "relates to",
		OtherKey: other, Direction: domain.LinkOutward,
	}
}

// chain builds C-0 blocks C-1 blocks ... C-n.
func chain(n int) []domain.IssueRecord {
	out := make([]domain.IssueRecord, 0, n+1)
	for i := 0; i <= n; i++ {
		rec := issue(chainKey(i))
		if i < n {
			rec.Links = []domain.IssueLink{blocks(chainKey(i + 1))}
		}
		out = append(out, rec)
	}
	return out
}

func chainKey(i int) string {
	return fmt.Sprintf("C-%d", i)
}
