package codec

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/loom/internal/core/ports"
)

// NodeID is the unique identifier for the document decoder Graft node.
const NodeID graft.ID = "adapter.decoder"

func init() {
	graft.Register(graft.Node[ports.DocumentDecoder]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.DocumentDecoder, error) {
			return New(), nil
		},
	})
}
