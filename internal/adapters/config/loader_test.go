package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/depgraph/internal/adapters/config"
	"go.trai.ch/depgraph/internal/core/domain"
	"go.trai.ch/depgraph/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func newLoader(t *testing.T) *config.Loader {
	t.Helper()
	t.Setenv(config.EnvConfigPath, "")
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Debug(gomock.Any()).AnyTimes()
	return config.NewLoader(log)
}

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, domain.ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), domain.PrivateFilePerm))
	return path
}

func TestLoader_Defaults(t *testing.T) {
	loader := newLoader(t)
	dir := t.TempDir()

	cfg, err := loader.Load(dir)
	require.NoError(t, err)

	assert.Equal(t, domain.CacheBackendFile, cfg.Cache.Backend)
	assert.Equal(t, time.Hour, cfg.Cache.TTL)
	assert.Equal(t, filepath.Join(dir, domain.DefaultCachePath()), cfg.Cache.Dir)
	assert.Equal(t, domain.DefaultMaxDepth, cfg.Graph.MaxDepth)
	assert.Equal(t, domain.DefaultMaxResults, cfg.Graph.MaxResults)
	assert.Equal(t, "customfield_10015", cfg.Jira.StartDateField)
	assert.Equal(t, "customfield_10016", cfg.Jira.EndDateField)
	assert.Equal(t, "customfield_10005", cfg.Jira.StoryPointsField)
	assert.Equal(t, 30*time.Second, cfg.Jira.Timeout)
	assert.Empty(t, cfg.Jira.Fixtures)
}

func TestLoader_FileDiscoveredFromSubdirectory(t *testing.T) {
	loader := newLoader(t)
	root := t.TempDir()
	writeConfig(t, root, `
jira:
  server: https://example.atlassian.net
  fixtures: fixtures.yaml
cache:
  backend: sqlite
  dir: .cache
  ttl: 30m
graph:
  max_depth: 4
`)
	sub := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(sub, domain.DirPerm))

	cfg, err := loader.Load(sub)
	require.NoError(t, err)

	assert.Equal(t, "https://example.atlassian.net", cfg.Jira.Server)
	assert.Equal(t, domain.CacheBackendSQLite, cfg.Cache.Backend)
	assert.Equal(t, 30*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, 4, cfg.Graph.MaxDepth)
	assert.Equal(t, filepath.Join(root, ".cache"), cfg.Cache.Dir, "relative paths resolve against the config file")
	assert.Equal(t, filepath.Join(root, "fixtures.yaml"), cfg.Jira.Fixtures)
}

func TestLoader_EnvironmentOverrides(t *testing.T) {
	loader := newLoader(t)
	dir := t.TempDir()
	writeConfig(t, dir, "jira:\n  server: https://file.example\n")

	t.Setenv("JIRA_SERVER", "https://legacy.example")
	t.Setenv("JIRA_API_TOKEN", "secret")
	t.Setenv("DEPGRAPH_GRAPH_CONCURRENCY", "2")

	cfg, err := loader.Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "https://legacy.example", cfg.Jira.Server)
	assert.Equal(t, "secret", cfg.Jira.APIToken)
	assert.Equal(t, 2, cfg.Graph.Concurrency)
}

func TestLoader_ExplicitPath(t *testing.T) {
	loader := newLoader(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  addr: 0.0.0.0:9000\n"), domain.PrivateFilePerm))
	t.Setenv(config.EnvConfigPath, path)

	cfg, err := loader.Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:9000", cfg.Server.Addr)
}

func TestLoader_InvalidFile(t *testing.T) {
	loader := newLoader(t)
	dir := t.TempDir()
	writeConfig(t, dir, "jira: [unclosed\n")

	_, err := loader.Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrConfigParseFailed.Error())
}

func TestLoader_DiscoverConfigPath(t *testing.T) {
	loader := newLoader(t)

	empty := t.TempDir()
	path, err := loader.DiscoverConfigPath(empty)
	require.NoError(t, err)
	assert.Empty(t, path)

	root := t.TempDir()
	want := writeConfig(t, root, "{}\n")
	got, err := loader.DiscoverConfigPath(root)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestWriteDefault(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, domain.ConfigFileName)

	require.NoError(t, config.WriteDefault(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "backend: file")
	assert.Contains(t, string(data), "ttl: 1h0m0s")
	assert.Contains(t, string(data), "story_points_field: customfield_10005")

	err = config.WriteDefault(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrConfigExists.Error())

	// The rendered file loads back to the defaults.
	cfg, err := newLoader(t).Load(dir)
	require.NoError(t, err)
	assert.Equal(t, time.Hour, cfg.Cache.TTL)
	assert.Equal(t, domain.CacheBackendFile, cfg.Cache.Backend)
}
