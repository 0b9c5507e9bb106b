// Package graph discovers and assembles the dependency graph of an issue set.
package graph

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/depgraph/internal/core/domain"
	"go.trai.ch/depgraph/internal/core/ports"
	"golang.org/x/sync/errgroup"
)

// keySet is a set of issue keys.
type keySet map[string]struct{}

func (s keySet) has(key string) bool {
	_, ok := s[key]
	return ok
}

func (s keySet) add(key string) {
	s[key] = struct{}{}
}

// Traversal expands a seed frontier breadth-first over blocking and, optionally, subtask relations.
type Traversal struct {
	repo        ports.IssueRepository
	concurrency int
}

// NewTraversal creates a Traversal fetching at most concurrency issues at a time.
func NewTraversal(repo ports.IssueRepository, concurrency int) *Traversal {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Traversal{repo: repo, concurrency: concurrency}
}

// Run returns the keys reachable from seeds within maxDepth levels, in discovery order.
// Keys in excluded are never visited. Keys that cannot be fetched are dead ends and are
// not returned. Every key is fetched at most once, so cyclic links terminate.
func (t *Traversal) Run(
	ctx context.Context,
	seeds []string,
	excluded keySet,
	maxDepth int,
	includeChildren bool,
) []string {
	ctx, span := tracer.Start(ctx, "graph.Traversal",
		trace.WithAttributes(
			attribute.Int("graph.seeds", len(seeds)),
			attribute.Int("graph.max_depth", maxDepth),
		),
	)
	defer span.End()

	visited := make(keySet)
	var found []string

	frontier := seeds
	depth := 0
	for len(frontier) > 0 && depth < maxDepth {
		batch := make([]string, 0, len(frontier))
		for _, key := range frontier {
			if key == "" || visited.has(key) || excluded.has(key) {
				continue
			}
			visited.add(key)
			batch = append(batch, key)
		}
		depth++

		records := t.fetch(ctx, batch)

		var next []string
		for i, rec := range records {
			if rec == nil {
				continue
			}
			found = append(found, batch[i])

			candidates := rec.BlockingNeighbours()
			if includeChildren {
				candidates = append(candidates, rec.ChildKeys...)
			}
			for _, key := range candidates {
				if key != "" && !visited.has(key) && !excluded.has(key) {
					next = append(next, key)
				}
			}
		}
		frontier = next
	}

	span.SetAttributes(
		attribute.Int("graph.depth", depth),
		attribute.Int("graph.found", len(found)),
	)
	return found
}

// fetch resolves one level concurrently. The result is aligned with keys; absent issues are nil.
func (t *Traversal) fetch(ctx context.Context, keys []string) []*domain.IssueRecord {
	records := make([]*domain.IssueRecord, len(keys))

	var g errgroup.Group
	g.SetLimit(t.concurrency)
	for i, key := range keys {
		g.Go(func() error {
			if rec, ok := t.repo.GetIssue(ctx, key, domain.TraversalFields()); ok {
				records[i] = rec
			}
			return nil
		})
	}
	_ = g.Wait()

	return records
}
