package varstore

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/loom/internal/adapters/settings"
	"go.trai.ch/loom/internal/core/ports"
)

// NodeID is the unique identifier for the variable store Graft node.
const NodeID graft.ID = "adapter.var_store"

func init() {
	graft.Register(graft.Node[ports.VarStore]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{settings.NodeID},
		Run: func(ctx context.Context) (ports.VarStore, error) {
			s, err := graft.Dep[*settings.Settings](ctx)
			if err != nil {
				return nil, err
			}
			return New(s.Store.Driver, s.Store.Path)
		},
	})
}
