package cache

import (
	"path/filepath"

	"go.trai.ch/depgraph/internal/adapters/badgerdb"
	"go.trai.ch/depgraph/internal/adapters/cas"
	"go.trai.ch/depgraph/internal/adapters/sqlitedb"
	"go.trai.ch/depgraph/internal/core/domain"
	"go.trai.ch/depgraph/internal/core/ports"
	"go.trai.ch/zerr"
)

// NewBackend opens the backend selected by the configuration.
func NewBackend(cfg domain.CacheConfig) (ports.CacheBackend, error) {
	dir := cfg.Dir
	if dir == "" {
		dir = domain.DefaultCachePath()
	}

	switch cfg.Backend {
	case "", domain.CacheBackendFile:
		return cas.NewStore(dir)
	case domain.CacheBackendBadger:
		return badgerdb.Open(filepath.Join(dir, domain.BadgerDirName))
	case domain.CacheBackendSQLite:
		return sqlitedb.Open(filepath.Join(dir, domain.SQLiteFileName))
	default:
		return nil, zerr.With(domain.ErrUnknownCacheBackend, "backend", string(cfg.Backend))
	}
}
