package issues

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/depgraph/internal/adapters/cache"
	"go.trai.ch/depgraph/internal/adapters/logger"
	"go.trai.ch/depgraph/internal/adapters/tracker"
	"go.trai.ch/depgraph/internal/core/ports"
)

// NodeID is the unique identifier for the issue repository Graft node.
const NodeID graft.ID = "engine.issues"

func init() {
	graft.Register(graft.Node[*Repository]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{tracker.NodeID, cache.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (*Repository, error) {
			client, err := graft.Dep[ports.TrackerClient](ctx)
			if err != nil {
				return nil, err
			}
			store, err := graft.Dep[ports.CacheStore](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewRepository(client, store, log), nil
		},
	})
}
