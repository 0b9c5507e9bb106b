package tracker_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/depgraph/internal/adapters/fixture"
	"go.trai.ch/depgraph/internal/adapters/jira"
	"go.trai.ch/depgraph/internal/adapters/tracker"
	"go.trai.ch/depgraph/internal/core/domain"
)

func TestNew(t *testing.T) {
	t.Run("Fixtures", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "issues.yaml")
		require.NoError(t, os.WriteFile(path, []byte("issues:\n  - key: A-1\n"), domain.FilePerm))

		cfg := domain.JiraConfig{Server: "https://example.atlassian.net", Fixtures: path}
		client, err := tracker.New(cfg)
		require.NoError(t, err)
		assert.IsType(t, &fixture.Tracker{}, client)
		assert.True(t, tracker.Configured(cfg))
	})

	t.Run("Jira", func(t *testing.T) {
		client, err := tracker.New(domain.JiraConfig{Server: "https://example.atlassian.net"})
		require.NoError(t, err)
		assert.IsType(t, &jira.Client{}, client)
	})

	t.Run("Unconfigured", func(t *testing.T) {
		cfg := domain.JiraConfig{}
		assert.False(t, tracker.Configured(cfg))

		client, err := tracker.New(cfg)
		require.NoError(t, err)

		_, err = client.GetIssue(context.Background(), "A-1", domain.TraversalFields())
		require.ErrorIs(t, err, domain.ErrTrackerNotConfigured)
		_, err = client.Search(context.Background(), "project = A", 10, domain.TraversalFields(), "")
		require.ErrorIs(t, err, domain.ErrTrackerNotConfigured)
	})
}
