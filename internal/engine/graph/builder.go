package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/depgraph/internal/core/domain"
	"go.trai.ch/depgraph/internal/core/ports"
)

// Builder answers graph requests, caching whole results under the request fingerprint.
type Builder struct {
	repo      ports.IssueRepository
	cache     ports.CacheStore
	assembler *Assembler
	logger    ports.Logger
}

// NewBuilder creates a Builder.
func NewBuilder(
	repo ports.IssueRepository,
	cache ports.CacheStore,
	assembler *Assembler,
	log ports.Logger,
) *Builder {
	return &Builder{
		repo:      repo,
		cache:     cache,
		assembler: assembler,
		logger:    log,
	}
}

// Build returns the graph of the request. Only invalid requests fail; tracker
// outages yield a smaller graph.
func (b *Builder) Build(ctx context.Context, req domain.GraphRequest) (*domain.Graph, error) {
	buildID := uuid.NewString()[:8]
	fingerprint := req.Fingerprint()

	ctx, span := tracer.Start(ctx, "graph.Build",
		trace.WithAttributes(
			attribute.String("graph.build_id", buildID),
			attribute.String("graph.fingerprint", fingerprint),
			attribute.Int("graph.max_results", req.MaxResults),
		),
	)
	defer span.End()

	if err := req.Validate(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid request")
		return nil, err
	}

	start := time.Now()

	if !req.NoCache {
		if g, ok := b.cached(ctx, fingerprint); ok {
			span.SetAttributes(attribute.Bool("graph.cache_hit", true))
			buildDuration.WithLabelValues(sourceCache).Observe(time.Since(start).Seconds())
			b.logger.Info(fmt.Sprintf("graph %s served from cache: %d nodes, %d edges",
				buildID, len(g.Nodes), len(g.Edges)))
			return g, nil
		}
	}

	primary := b.repo.Search(ctx, req.Query, req.MaxResults, domain.DetailFields())

	var highlighted []string
	if req.HighlightQuery != "" {
		for _, rec := range b.repo.Search(ctx, req.HighlightQuery, req.MaxResults, domain.NewFieldSet(domain.FieldSummary)) {
			highlighted = append(highlighted, rec.Key)
		}
	}

	g := b.assembler.Assemble(ctx, primary, highlighted, req.FullTree, req.IncludeChildren)
	g.JQL = req.Query
	g.HighlightJQL = req.HighlightQuery

	// An empty primary set may be a tracker outage; it is not kept past this request.
	if len(primary) > 0 {
		b.cache.Set(ctx, domain.NamespaceSearch, fingerprint, g, 0)
	} else {
		b.logger.Debug(fmt.Sprintf("graph %s not cached: no primary issues", buildID))
	}

	buildDuration.WithLabelValues(sourceTracker).Observe(time.Since(start).Seconds())
	graphNodes.Observe(float64(len(g.Nodes)))
	b.logger.Info(fmt.Sprintf("graph %s built in %s: %d primary, %d nodes, %d edges",
		buildID, time.Since(start).Round(time.Millisecond), len(primary), len(g.Nodes), len(g.Edges)))

	return g, nil
}

// Cached returns the stored result of the request without building it.
func (b *Builder) Cached(ctx context.Context, req domain.GraphRequest) (*domain.Graph, bool) {
	if err := req.Validate(); err != nil {
		return nil, false
	}
	return b.cached(ctx, req.Fingerprint())
}

func (b *Builder) cached(ctx context.Context, fingerprint string) (*domain.Graph, bool) {
	data, ok := b.cache.Get(ctx, domain.NamespaceSearch, fingerprint)
	if !ok {
		return nil, false
	}

	var g domain.Graph
	if err := json.Unmarshal(data, &g); err != nil {
		b.logger.Debug(fmt.Sprintf("ignoring undecodable graph for %s", fingerprint))
		return nil, false
	}
	if g.Nodes == nil {
		g.Nodes = []domain.GraphNode{}
	}
	if g.Edges == nil {
		g.Edges = []domain.GraphEdge{}
	}
	return &g, true
}
