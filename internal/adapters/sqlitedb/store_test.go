package sqlitedb_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/depgraph/internal/adapters/sqlitedb"
	"go.trai.ch/depgraph/internal/core/domain"
)

func openStore(t *testing.T) (*sqlitedb.Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "cache.db")
	store, err := sqlitedb.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store, path
}

func TestStore_ReadWrite(t *testing.T) {
	ctx := context.Background()
	store, _ := openStore(t)

	assert.Equal(t, "sqlite", store.Name())

	require.NoError(t, store.Write(ctx, domain.NamespaceIssue, "k", []byte(`"v1"`)))
	require.NoError(t, store.Write(ctx, domain.NamespaceIssue, "k", []byte(`"v2"`)))

	got, err := store.Read(ctx, domain.NamespaceIssue, "k")
	require.NoError(t, err)
	assert.Equal(t, `"v2"`, string(got))

	other, err := store.Read(ctx, domain.NamespaceSearch, "k")
	require.NoError(t, err)
	assert.Nil(t, other)
}

func TestStore_ScanAndDelete(t *testing.T) {
	ctx := context.Background()
	store, _ := openStore(t)

	require.NoError(t, store.Write(ctx, domain.NamespaceSearch, "b", []byte(`2`)))
	require.NoError(t, store.Write(ctx, domain.NamespaceSearch, "a", []byte(`1`)))
	require.NoError(t, store.Write(ctx, domain.NamespaceIssue, "c", []byte(`3`)))

	var names []string
	err := store.Scan(ctx, domain.NamespaceSearch, func(name string, payload []byte) error {
		names = append(names, name+"="+string(payload))
		// Writing during a scan must not deadlock.
		return store.Delete(ctx, domain.NamespaceSearch, name)
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a=1", "b=2"}, names)

	got, err := store.Read(ctx, domain.NamespaceSearch, "a")
	require.NoError(t, err)
	assert.Nil(t, got)

	kept, err := store.Read(ctx, domain.NamespaceIssue, "c")
	require.NoError(t, err)
	assert.Equal(t, `3`, string(kept))
}

func TestStore_Reopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "cache.db")

	store, err := sqlitedb.Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Write(ctx, domain.NamespaceIssue, "k", []byte(`1`)))
	require.NoError(t, store.Close())

	reopened, err := sqlitedb.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })

	got, err := reopened.Read(ctx, domain.NamespaceIssue, "k")
	require.NoError(t, err)
	assert.Equal(t, `1`, string(got))
}
