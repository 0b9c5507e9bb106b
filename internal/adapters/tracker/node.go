package tracker

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/depgraph/internal/adapters/config"
	"go.trai.ch/depgraph/internal/core/domain"
	"go.trai.ch/depgraph/internal/core/ports"
)

// NodeID is the unique identifier for the tracker client Graft node.
const NodeID graft.ID = "adapter.tracker"

func init() {
	graft.Register(graft.Node[ports.TrackerClient]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.ConfigNodeID},
		Run: func(ctx context.Context) (ports.TrackerClient, error) {
			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			return New(cfg.Jira)
		},
	})
}
