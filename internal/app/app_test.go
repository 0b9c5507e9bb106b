package app_test

import (
	"context"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/depgraph/internal/adapters/cache"
	"go.trai.ch/depgraph/internal/adapters/cas"
	"go.trai.ch/depgraph/internal/app"
	"go.trai.ch/depgraph/internal/core/domain"
	"go.trai.ch/depgraph/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

// stubBuilder records the requests it receives.
type stubBuilder struct {
	built  []domain.GraphRequest
	cached *domain.Graph
}

func (s *stubBuilder) Build(_ context.Context, req domain.GraphRequest) (*domain.Graph, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	s.built = append(s.built, req)
	return &domain.Graph{JQL: req.Query, Nodes: []domain.GraphNode{}, Edges: []domain.GraphEdge{}}, nil
}

func (s *stubBuilder) Cached(context.Context, domain.GraphRequest) (*domain.Graph, bool) {
	return s.cached, s.cached != nil
}

func quietLogger(ctrl *gomock.Controller) *mocks.MockLogger {
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Debug(gomock.Any()).AnyTimes()
	log.EXPECT().Info(gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any()).AnyTimes()
	log.EXPECT().Error(gomock.Any()).AnyTimes()
	return log
}

func configured() *domain.Config {
	cfg := domain.DefaultConfig()
	cfg.Jira.Server = "https://example.atlassian.net"
	return cfg
}

func TestApp_Graph(t *testing.T) {
	ctx := context.Background()

	t.Run("BuildsResolvedRequest", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		builder := &stubBuilder{}
		cfg := configured()
		cfg.Graph.MaxResults = 25
		a := app.New(builder, mocks.NewMockCacheStore(ctrl), quietLogger(ctrl), cfg)

		g, err := a.Graph(ctx, domain.GraphQuery{Project: "T", FullTree: true})
		require.NoError(t, err)
		assert.Equal(t, `project = "T"`, g.JQL)

		require.Len(t, builder.built, 1)
		assert.Equal(t, 25, builder.built[0].MaxResults)
		assert.True(t, builder.built[0].FullTree)
	})

	t.Run("InvalidRequest", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		a := app.New(&stubBuilder{}, mocks.NewMockCacheStore(ctrl), quietLogger(ctrl), configured())

		_, err := a.Graph(ctx, domain.GraphQuery{JQL: "project = T", MaxResults: 501})
		require.ErrorIs(t, err, domain.ErrInvalidMaxResults)
	})

	t.Run("UnconfiguredServesCache", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		builder := &stubBuilder{cached: &domain.Graph{JQL: "project = DEMO"}}
		a := app.New(builder, mocks.NewMockCacheStore(ctrl), quietLogger(ctrl), domain.DefaultConfig())

		g, err := a.Graph(ctx, domain.GraphQuery{JQL: "project = DEMO"})
		require.NoError(t, err)
		assert.Equal(t, "project = DEMO", g.JQL)
		assert.Empty(t, builder.built)

		_, err = a.Graph(ctx, domain.GraphQuery{JQL: "project = DEMO", NoCache: true})
		require.ErrorIs(t, err, domain.ErrTrackerNotConfigured)
	})

	t.Run("UnconfiguredMiss", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		a := app.New(&stubBuilder{}, mocks.NewMockCacheStore(ctrl), quietLogger(ctrl), domain.DefaultConfig())

		_, err := a.Graph(ctx, domain.GraphQuery{JQL: "project = X"})
		require.ErrorIs(t, err, domain.ErrTrackerNotConfigured)
	})
}

func TestApp_Cache(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	store := mocks.NewMockCacheStore(ctrl)
	a := app.New(&stubBuilder{}, store, quietLogger(ctrl), configured())

	store.EXPECT().Stats(ctx).Return(domain.CacheStats{Backend: "file", TotalSearches: 2}, nil)
	store.EXPECT().ClearAll(ctx).Return(5, nil)
	store.EXPECT().ClearExpired(ctx).Return(1, nil)

	stats, err := a.CacheStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalSearches)

	n, err := a.ClearCache(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	n, err = a.ClearCache(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestApp_SeedCache(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	log := quietLogger(ctrl)

	backend, err := cas.NewStore(t.TempDir())
	require.NoError(t, err)
	store := cache.New(backend, log, time.Hour)

	a := app.New(&stubBuilder{}, store, log, domain.DefaultConfig())

	t.Run("Demo", func(t *testing.T) {
		res, err := a.SeedCache(ctx, "")
		require.NoError(t, err)
		assert.Equal(t, app.SeedResult{Issues: 3, Searches: 1}, res)

		stats, err := store.Stats(ctx)
		require.NoError(t, err)
		assert.Equal(t, 3, stats.TotalIssues)
		assert.Equal(t, 1, stats.TotalSearches)

		// The demo search is answered from the cache without a tracker.
		req := domain.GraphQuery{JQL: "project = DEMO"}.Request(domain.DefaultMaxResults)
		_, ok := store.Get(ctx, domain.NamespaceSearch, req.Fingerprint())
		assert.True(t, ok)
	})

	t.Run("MissingFile", func(t *testing.T) {
		_, err := a.SeedCache(ctx, filepath.Join(t.TempDir(), "missing.yaml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), domain.ErrFixtureReadFailed.Error())
	})
}

func TestApp_InitConfig(t *testing.T) {
	ctrl := gomock.NewController(t)
	a := app.New(&stubBuilder{}, mocks.NewMockCacheStore(ctrl), quietLogger(ctrl), domain.DefaultConfig())
	dir := t.TempDir()

	path, err := a.InitConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, domain.ConfigFileName), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "customfield_10015")

	_, err = a.InitConfig(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrConfigExists.Error())
}

func TestApp_Serve(t *testing.T) {
	ctrl := gomock.NewController(t)
	a := app.New(&stubBuilder{}, mocks.NewMockCacheStore(ctrl), quietLogger(ctrl), configured())

	t.Run("ShutsDownOnCancel", func(t *testing.T) {
		ln, err := net.Listen("tcp", "127.0.0.1:0")
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- a.ServeListener(ctx, ln) }()

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, "http://"+ln.Addr().String()+"/healthz", http.NoBody)
		require.NoError(t, err)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		_ = resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		cancel()
		select {
		case err := <-done:
			require.NoError(t, err)
		case <-time.After(10 * time.Second):
			t.Fatal("server did not shut down")
		}
	})

	t.Run("BadAddress", func(t *testing.T) {
		err := a.Serve(context.Background(), "not-an-address")
		require.Error(t, err)
		assert.Contains(t, err.Error(), domain.ErrServerFailed.Error())
	})
}

func TestComponents_Close(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := mocks.NewMockCacheBackend(ctrl)
	backend.EXPECT().Close().Return(nil)

	c := app.NewComponents(nil, nil, nil, backend)
	require.NoError(t, c.Close())

	assert.NoError(t, (&app.Components{}).Close())
}
