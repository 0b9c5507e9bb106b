// Package app implements the application layer for depgraph.
package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"path/filepath"
	"slices"
	"time"

	"go.trai.ch/depgraph/internal/adapters/config"  //nolint:depguard // Wired in app layer
	"go.trai.ch/depgraph/internal/adapters/fixture" //nolint:depguard // Wired in app layer
	"go.trai.ch/depgraph/internal/adapters/httpapi" //nolint:depguard // Wired in app layer
	"go.trai.ch/depgraph/internal/adapters/tracker" //nolint:depguard // Wired in app layer
	"go.trai.ch/depgraph/internal/core/domain"
	"go.trai.ch/depgraph/internal/core/ports"
	"go.trai.ch/depgraph/internal/engine/graph"
	"go.trai.ch/depgraph/internal/engine/issues"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

// GraphBuilder builds dependency graphs for requests.
type GraphBuilder interface {
	Build(ctx context.Context, req domain.GraphRequest) (*domain.Graph, error)
	Cached(ctx context.Context, req domain.GraphRequest) (*domain.Graph, bool)
}

// App represents the main application logic.
type App struct {
	builder GraphBuilder
	cache   ports.CacheStore
	logger  ports.Logger
	cfg     *domain.Config
}

// New creates a new App instance.
func New(builder GraphBuilder, cache ports.CacheStore, log ports.Logger, cfg *domain.Config) *App {
	return &App{
		builder: builder,
		cache:   cache,
		logger:  log,
		cfg:     cfg,
	}
}

// Graph builds the dependency graph of a query. Without a configured tracker only
// previously cached results are served.
func (a *App) Graph(ctx context.Context, q domain.GraphQuery) (*domain.Graph, error) {
	req := q.Request(a.maxResults())

	if !tracker.Configured(a.cfg.Jira) {
		if err := req.Validate(); err != nil {
			return nil, err
		}
		if !req.NoCache {
			if g, ok := a.builder.Cached(ctx, req); ok {
				return g, nil
			}
		}
		return nil, domain.ErrTrackerNotConfigured
	}

	return a.builder.Build(ctx, req)
}

// CacheStats summarizes the cache content.
func (a *App) CacheStats(ctx context.Context) (domain.CacheStats, error) {
	return a.cache.Stats(ctx)
}

// ClearCache removes every cache entry, or only the expired ones.
func (a *App) ClearCache(ctx context.Context, expiredOnly bool) (int, error) {
	if expiredOnly {
		return a.cache.ClearExpired(ctx)
	}
	return a.cache.ClearAll(ctx)
}

// SeedResult reports what SeedCache stored.
type SeedResult struct {
	Issues   int `json:"issues"`
	Searches int `json:"searches"`
}

// SeedCache fills the cache from a fixture file, or from the embedded demo project
// when path is empty. Every fixture issue is stored, and the graph of every fixture
// search is built and stored under its default request.
func (a *App) SeedCache(ctx context.Context, path string) (SeedResult, error) {
	src := fixture.Demo()
	if path != "" {
		var err error
		if src, err = fixture.Load(path); err != nil {
			return SeedResult{}, err
		}
	}

	repo := issues.NewRepository(src, a.cache, a.logger)
	result := SeedResult{Issues: repo.Seed(ctx, src.Records())}

	builder := graph.NewBuilder(repo, a.cache, graph.NewAssembler(repo, a.cfg.Jira.Server, a.cfg.Graph), a.logger)

	searches := src.Searches()
	queries := make([]string, 0, len(searches))
	for q := range searches {
		queries = append(queries, q)
	}
	slices.Sort(queries)

	for _, q := range queries {
		req := domain.GraphQuery{JQL: q, NoCache: true}.Request(a.maxResults())
		if _, err := builder.Build(ctx, req); err != nil {
			return result, zerr.With(err, "jql", q)
		}
		result.Searches++
	}

	a.logger.Info(fmt.Sprintf("seeded %d issues and %d searches", result.Issues, result.Searches))
	return result, nil
}

// InitConfig writes the default configuration file into dir and returns its path.
func (a *App) InitConfig(dir string) (string, error) {
	path := filepath.Join(dir, domain.ConfigFileName)
	if err := config.WriteDefault(path); err != nil {
		return "", err
	}
	a.logger.Info(fmt.Sprintf("wrote %s", path))
	return path, nil
}

// Serve runs the HTTP API on addr until ctx is done. An empty addr selects the configured one.
func (a *App) Serve(ctx context.Context, addr string) error {
	if addr == "" {
		addr = a.cfg.Server.Addr
	}

	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrServerFailed.Error()), "addr", addr)
	}
	return a.serve(ctx, ln)
}

func (a *App) serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           httpapi.NewRouter(a, a.logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	a.logger.Info(fmt.Sprintf("listening on http://%s", ln.Addr()))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return zerr.Wrap(err, domain.ErrServerFailed.Error())
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func (a *App) maxResults() int {
	if a.cfg.Graph.MaxResults > 0 {
		return a.cfg.Graph.MaxResults
	}
	return domain.DefaultMaxResults
}
