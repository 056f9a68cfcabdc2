package registry

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/loom/internal/adapters/codec"     //nolint:depguard // Wired in engine wiring
	"go.trai.ch/loom/internal/adapters/fetch"     //nolint:depguard // Wired in engine wiring
	"go.trai.ch/loom/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/loom/internal/adapters/schema"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/loom/internal/adapters/settings"  //nolint:depguard // Wired in engine wiring
	"go.trai.ch/loom/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/loom/internal/adapters/varstore"  //nolint:depguard // Wired in engine wiring
	"go.trai.ch/loom/internal/core/ports"
)

// NodeID is the unique identifier for the registry Graft node.
const NodeID graft.ID = "engine.registry"

func init() {
	graft.Register(graft.Node[*Registry]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			settings.NodeID,
			fetch.NodeID,
			varstore.NodeID,
			schema.NodeID,
			codec.NodeID,
			logger.NodeID,
			telemetry.TracerNodeID,
		},
		Run: runNode,
	})
}

func runNode(ctx context.Context) (*Registry, error) {
	s, err := graft.Dep[*settings.Settings](ctx)
	if err != nil {
		return nil, err
	}
	fetcher, err := graft.Dep[ports.Fetcher](ctx)
	if err != nil {
		return nil, err
	}
	vars, err := graft.Dep[ports.VarStore](ctx)
	if err != nil {
		return nil, err
	}
	validator, err := graft.Dep[ports.SchemaValidator](ctx)
	if err != nil {
		return nil, err
	}
	decoder, err := graft.Dep[ports.DocumentDecoder](ctx)
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

	return New(fetcher, vars, validator, decoder,
		WithReserved(s.Reserved...),
		WithCredentials(s.WithCredentials),
		WithLogger(log),
		WithTracer(tracer),
	), nil
}
