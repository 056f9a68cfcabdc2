package fetch

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/loom/internal/adapters/logger"
	"go.trai.ch/loom/internal/adapters/settings"
	"go.trai.ch/loom/internal/adapters/telemetry"
	"go.trai.ch/loom/internal/core/ports"
)

// NodeID is the unique identifier for the fetcher Graft node.
const NodeID graft.ID = "adapter.fetcher"

func init() {
	graft.Register(graft.Node[ports.Fetcher]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{settings.NodeID, logger.NodeID, telemetry.TracerNodeID},
		Run: func(ctx context.Context) (ports.Fetcher, error) {
			s, err := graft.Dep[*settings.Settings](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}
			return New(log,
				WithBaseURL(s.BaseURL),
				WithRoot(s.Root),
				WithTimeout(s.Timeout),
				WithTracer(tracer),
			)
		},
	})
}
