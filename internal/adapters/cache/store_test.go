package cache_test

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/depgraph/internal/adapters/badgerdb"
	"go.trai.ch/depgraph/internal/adapters/cache"
	"go.trai.ch/depgraph/internal/adapters/cas"
	"go.trai.ch/depgraph/internal/adapters/sqlitedb"
	"go.trai.ch/depgraph/internal/core/domain"
	"go.trai.ch/depgraph/internal/core/ports"
	"go.trai.ch/depgraph/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

// clock is a manually advanced time source.
type clock struct {
	now time.Time
}

func (c *clock) Now() time.Time { return c.now }

func (c *clock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newClock() *clock {
	return &clock{now: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)}
}

func quietLogger(t *testing.T) *mocks.MockLogger {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Debug(gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any()).AnyTimes()
	return log
}

func newFileStore(t *testing.T) (*cache.Store, *clock, string) {
	t.Helper()
	dir := t.TempDir()
	backend, err := cas.NewStore(dir)
	require.NoError(t, err)
	clk := newClock()
	return cache.New(backend, quietLogger(t), time.Hour).WithClock(clk.Now), clk, dir
}

// backends returns every backend implementation for table driven tests.
func backends(t *testing.T) map[string]ports.CacheBackend {
	t.Helper()

	file, err := cas.NewStore(t.TempDir())
	require.NoError(t, err)

	kv, err := badgerdb.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = kv.Close() })

	db, err := sqlitedb.Open(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return map[string]ports.CacheBackend{"file": file, "badger": kv, "sqlite": db}
}

type payload struct {
	Key   string   `json:"key"`
	Items []string `json:"items"`
	Score *float64 `json:"score"`
}

func TestStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	score := 2.5
	value := payload{Key: "T-1", Items: []string{"a", "b"}, Score: &score}
	want, err := json.Marshal(value)
	require.NoError(t, err)

	for name, backend := range backends(t) {
		t.Run(name, func(t *testing.T) {
			store := cache.New(backend, quietLogger(t), 0)

			store.Set(ctx, domain.NamespaceIssue, "T-1", value, 0)

			got, ok := store.Get(ctx, domain.NamespaceIssue, "T-1")
			require.True(t, ok)
			assert.Equal(t, string(want), string(got))

			_, ok = store.Get(ctx, domain.NamespaceSearch, "T-1")
			assert.False(t, ok, "namespaces must not share keys")
		})
	}
}

func TestStore_KeySafety(t *testing.T) {
	ctx := context.Background()
	store, _, dir := newFileStore(t)

	keys := []string{
		"../../etc/passwd",
		"a/b/c",
		`C:\windows\system32`,
		"project = \"X\" AND status in (\"In Progress\")",
		"key with\ttabs and\nnewlines",
		strings.Repeat("long-", 200),
		"",
	}

	for i, key := range keys {
		store.Set(ctx, domain.NamespaceSearch, key, i, 0)
	}

	for i, key := range keys {
		got, ok := store.Get(ctx, domain.NamespaceSearch, key)
		require.True(t, ok, "key %q", key)
		assert.JSONEq(t, string(mustJSON(t, i)), string(got))
	}

	// Every entry lives directly inside the namespace directory.
	entries, err := os.ReadDir(filepath.Join(dir, "searches"))
	require.NoError(t, err)
	assert.Len(t, entries, len(keys))
	for _, e := range entries {
		assert.False(t, e.IsDir())
		assert.Len(t, e.Name(), 64+len(".json"))
	}

	_, err = os.Stat(filepath.Join(dir, "..", "etc"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestStorageName(t *testing.T) {
	a := cache.StorageName("T-1")
	assert.Equal(t, a, cache.StorageName("T-1"))
	assert.NotEqual(t, a, cache.StorageName("T-2"))
	assert.Len(t, a, 64)
	assert.Regexp(t, "^[0-9a-f]+$", cache.StorageName("../x y:z"))
}

func TestStore_Expiry(t *testing.T) {
	ctx := context.Background()
	store, clk, dir := newFileStore(t)

	store.Set(ctx, domain.NamespaceIssue, "T-1", "value", 10*time.Second)

	clk.Advance(9 * time.Second)
	_, ok := store.Get(ctx, domain.NamespaceIssue, "T-1")
	assert.True(t, ok, "entry is present before the ttl elapses")

	clk.Advance(2 * time.Second)
	_, ok = store.Get(ctx, domain.NamespaceIssue, "T-1")
	assert.False(t, ok, "entry is absent after the ttl elapses")

	_, err := os.Stat(filepath.Join(dir, "issues", cache.StorageName("T-1")+".json"))
	assert.True(t, errors.Is(err, os.ErrNotExist), "expired entry is removed on read")
}

func TestStore_DefaultTTL(t *testing.T) {
	ctx := context.Background()
	store, clk, _ := newFileStore(t)

	store.Set(ctx, domain.NamespaceIssue, "T-1", "value", 0)

	clk.Advance(59 * time.Minute)
	_, ok := store.Get(ctx, domain.NamespaceIssue, "T-1")
	assert.True(t, ok)

	clk.Advance(2 * time.Minute)
	_, ok = store.Get(ctx, domain.NamespaceIssue, "T-1")
	assert.False(t, ok)
}

func TestStore_PersistedRecordFormat(t *testing.T) {
	ctx := context.Background()
	store, clk, dir := newFileStore(t)

	store.Set(ctx, domain.NamespaceIssue, "T-1", map[string]string{"k": "v"}, time.Minute)

	data, err := os.ReadFile(filepath.Join(dir, "issues", cache.StorageName("T-1")+".json"))
	require.NoError(t, err)

	var record map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &record))
	assert.ElementsMatch(t, []string{"data", "cached_at", "expires_at"}, keysOf(record))
	assert.JSONEq(t, `{"k":"v"}`, string(record["data"]))

	var cachedAt, expiresAt time.Time
	require.NoError(t, json.Unmarshal(record["cached_at"], &cachedAt))
	require.NoError(t, json.Unmarshal(record["expires_at"], &expiresAt))
	assert.True(t, clk.Now().Equal(cachedAt))
	assert.True(t, clk.Now().Add(time.Minute).Equal(expiresAt))
}

func TestStore_CorruptEntry(t *testing.T) {
	ctx := context.Background()
	store, _, dir := newFileStore(t)

	store.Set(ctx, domain.NamespaceIssue, "T-1", "value", 0)
	path := filepath.Join(dir, "issues", cache.StorageName("T-1")+".json")

	for _, content := range []string{"{ invalid json", `{"data":"x"}`, `[]`} {
		require.NoError(t, os.WriteFile(path, []byte(content), domain.PrivateFilePerm))

		_, ok := store.Get(ctx, domain.NamespaceIssue, "T-1")
		assert.False(t, ok, "content %q", content)

		_, err := os.Stat(path)
		assert.True(t, errors.Is(err, os.ErrNotExist), "corrupt entry %q is removed", content)
	}
}

func TestStore_WriteFailureIsSwallowed(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)

	backend := mocks.NewMockCacheBackend(ctrl)
	log := mocks.NewMockLogger(ctrl)

	backend.EXPECT().
		Write(gomock.Any(), domain.NamespaceIssue, cache.StorageName("T-1"), gomock.Any()).
		Return(errors.New("disk full"))
	log.EXPECT().Warn(gomock.Any()).Do(func(msg string) {
		assert.Contains(t, msg, "disk full")
	})

	store := cache.New(backend, log, time.Hour)
	assert.NotPanics(t, func() {
		store.Set(ctx, domain.NamespaceIssue, "T-1", "value", 0)
	})
}

func TestStore_UnmarshalableValue(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)

	backend := mocks.NewMockCacheBackend(ctrl)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Warn(gomock.Any())

	store := cache.New(backend, log, time.Hour)
	store.Set(ctx, domain.NamespaceIssue, "T-1", make(chan int), 0)
}

func TestStore_ReadFailureIsMiss(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)

	backend := mocks.NewMockCacheBackend(ctrl)
	log := mocks.NewMockLogger(ctrl)
	name := cache.StorageName("T-1")

	backend.EXPECT().Read(gomock.Any(), domain.NamespaceIssue, name).Return(nil, errors.New("io error"))
	backend.EXPECT().Delete(gomock.Any(), domain.NamespaceIssue, name).Return(nil)
	log.EXPECT().Warn(gomock.Any())

	store := cache.New(backend, log, time.Hour)
	_, ok := store.Get(ctx, domain.NamespaceIssue, "T-1")
	assert.False(t, ok)
}

func TestStore_ClearAndStats(t *testing.T) {
	ctx := context.Background()

	for name, backend := range backends(t) {
		t.Run(name, func(t *testing.T) {
			clk := newClock()
			store := cache.New(backend, quietLogger(t), time.Hour).WithClock(clk.Now)

			store.Set(ctx, domain.NamespaceIssue, "T-1", "fresh", time.Hour)
			store.Set(ctx, domain.NamespaceIssue, "T-2", "short", time.Minute)
			store.Set(ctx, domain.NamespaceSearch, "q1", "fresh", time.Hour)
			store.Set(ctx, domain.NamespaceSearch, "q2", "short", time.Minute)
			require.NoError(t, backend.Write(ctx, domain.NamespaceSearch, "corrupt", []byte("nope")))

			clk.Advance(2 * time.Minute)

			stats, err := store.Stats(ctx)
			require.NoError(t, err)
			assert.Equal(t, name, stats.Backend)
			assert.Equal(t, 2, stats.TotalIssues)
			assert.Equal(t, 1, stats.ExpiredIssues)
			assert.Equal(t, 3, stats.TotalSearches)
			assert.Equal(t, 2, stats.ExpiredSearches)
			assert.Positive(t, stats.TotalBytes)

			removed, err := store.ClearExpired(ctx)
			require.NoError(t, err)
			assert.Equal(t, 3, removed)

			_, ok := store.Get(ctx, domain.NamespaceIssue, "T-1")
			assert.True(t, ok)

			removed, err = store.ClearAll(ctx)
			require.NoError(t, err)
			assert.Equal(t, 2, removed)

			stats, err = store.Stats(ctx)
			require.NoError(t, err)
			assert.Zero(t, stats.TotalIssues+stats.TotalSearches)
		})
	}
}

func TestNewBackend(t *testing.T) {
	dir := t.TempDir()

	for _, kind := range []domain.CacheBackend{"", domain.CacheBackendFile, domain.CacheBackendBadger, domain.CacheBackendSQLite} {
		backend, err := cache.NewBackend(domain.CacheConfig{Backend: kind, Dir: filepath.Join(dir, string(kind)+"x")})
		require.NoError(t, err, "backend %q", kind)
		require.NoError(t, backend.Close())
	}

	_, err := cache.NewBackend(domain.CacheConfig{Backend: "redis", Dir: dir})
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrUnknownCacheBackend.Error())
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return data
}

func keysOf(m map[string]json.RawMessage) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}
