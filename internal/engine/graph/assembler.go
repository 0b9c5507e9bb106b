package graph

import (
	"context"
	"slices"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/depgraph/internal/core/domain"
	"go.trai.ch/depgraph/internal/core/ports"
	"golang.org/x/sync/errgroup"
)

// Assembler turns a primary issue set into nodes and edges.
type Assembler struct {
	repo        ports.IssueRepository
	traversal   *Traversal
	server      string
	maxDepth    int
	concurrency int
}

// NewAssembler creates an Assembler. Node URLs point at server.
func NewAssembler(repo ports.IssueRepository, server string, cfg domain.GraphConfig) *Assembler {
	maxDepth := cfg.MaxDepth
	if maxDepth < 1 {
		maxDepth = domain.DefaultMaxDepth
	}
	concurrency := cfg.Concurrency
	if concurrency < 1 {
		concurrency = domain.DefaultConcurrency
	}
	return &Assembler{
		repo:        repo,
		traversal:   NewTraversal(repo, concurrency),
		server:      server,
		maxDepth:    maxDepth,
		concurrency: concurrency,
	}
}

// Depth returns the traversal bound for the given mode.
func (a *Assembler) Depth(fullTree bool) int {
	if fullTree {
		return a.maxDepth
	}
	return domain.ShallowDepth
}

// Assemble builds the graph of the primary issues and the issues they are linked to.
// Primary nodes come first in their original order, linked nodes follow sorted by key.
// Edges are deduplicated, sorted and only connect nodes of the graph.
func (a *Assembler) Assemble(
	ctx context.Context,
	primary []domain.IssueRecord,
	highlighted []string,
	fullTree bool,
	includeChildren bool,
) *domain.Graph {
	ctx, span := tracer.Start(ctx, "graph.Assemble",
		trace.WithAttributes(
			attribute.Int("graph.primary", len(primary)),
			attribute.Bool("graph.full_tree", fullTree),
			attribute.Bool("graph.include_children", includeChildren),
		),
	)
	defer span.End()

	highlight := make(keySet, len(highlighted))
	for _, key := range highlighted {
		highlight.add(key)
	}

	present := make(keySet, len(primary))
	records := make([]*domain.IssueRecord, 0, len(primary))
	nodes := make([]domain.GraphNode, 0, len(primary))
	for i := range primary {
		rec := &primary[i]
		if rec.Key == "" || present.has(rec.Key) {
			continue
		}
		present.add(rec.Key)
		records = append(records, rec)
		nodes = append(nodes, domain.NewGraphNode(rec, a.server, true, highlight.has(rec.Key)))
	}

	// Subtasks are expanded only for issues the traversal itself visits.
	var seeds []string
	for _, rec := range records {
		seeds = append(seeds, rec.BlockingNeighbours()...)
	}

	linkedKeys := a.traversal.Run(ctx, seeds, present, a.Depth(fullTree), includeChildren)
	slices.Sort(linkedKeys)

	for _, rec := range a.fetchDetails(ctx, linkedKeys) {
		if rec == nil || present.has(rec.Key) {
			continue
		}
		present.add(rec.Key)
		records = append(records, rec)
		nodes = append(nodes, domain.NewGraphNode(rec, a.server, false, highlight.has(rec.Key)))
	}

	edges := buildEdges(records, present, includeChildren)

	span.SetAttributes(
		attribute.Int("graph.nodes", len(nodes)),
		attribute.Int("graph.edges", len(edges)),
	)
	return &domain.Graph{Nodes: nodes, Edges: edges}
}

// fetchDetails loads the full records of the linked keys. The result is aligned with keys.
func (a *Assembler) fetchDetails(ctx context.Context, keys []string) []*domain.IssueRecord {
	records := make([]*domain.IssueRecord, len(keys))

	var g errgroup.Group
	g.SetLimit(a.concurrency)
	for i, key := range keys {
		g.Go(func() error {
			if rec, ok := a.repo.GetIssue(ctx, key, domain.DetailFields()); ok {
				records[i] = rec
			}
			return nil
		})
	}
	_ = g.Wait()

	return records
}

func buildEdges(records []*domain.IssueRecord, present keySet, includeChildren bool) []domain.GraphEdge {
	seen := make(map[domain.GraphEdge]struct{})
	edges := []domain.GraphEdge{}

	add := func(e domain.GraphEdge) {
		if !present.has(e.Source) || !present.has(e.Target) {
			return
		}
		if _, dup := seen[e]; dup {
			return
		}
		seen[e] = struct{}{}
		edges = append(edges, e)
	}

	for _, rec := range records {
		for _, e := range rec.BlockingEdges() {
			add(e)
		}
		if includeChildren {
			for _, e := range rec.SubtaskEdges() {
				add(e)
			}
		}
	}

	slices.SortFunc(edges, domain.CompareEdges)
	return edges
}
