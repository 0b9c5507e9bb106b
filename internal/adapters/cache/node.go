package cache

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/depgraph/internal/adapters/config"
	"go.trai.ch/depgraph/internal/adapters/logger"
	"go.trai.ch/depgraph/internal/core/domain"
	"go.trai.ch/depgraph/internal/core/ports"
)

const (
	// BackendNodeID is the unique identifier for the cache backend Graft node.
	BackendNodeID graft.ID = "adapter.cache_backend"
	// NodeID is the unique identifier for the cache store Graft node.
	NodeID graft.ID = "adapter.cache_store"
)

func init() {
	graft.Register(graft.Node[ports.CacheBackend]{
		ID:        BackendNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.ConfigNodeID},
		Run: func(ctx context.Context) (ports.CacheBackend, error) {
			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			return NewBackend(cfg.Cache)
		},
	})

	graft.Register(graft.Node[ports.CacheStore]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{BackendNodeID, config.ConfigNodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.CacheStore, error) {
			backend, err := graft.Dep[ports.CacheBackend](ctx)
			if err != nil {
				return nil, err
			}
			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return New(backend, log, cfg.Cache.TTL), nil
		},
	})
}
