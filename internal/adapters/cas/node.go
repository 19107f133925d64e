package cas

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/podgen/internal/core/ports"
)

// NodeID is the unique identifier for the digest store opener Graft node.
const NodeID graft.ID = "adapter.digest_store"

func init() {
	graft.Register(graft.Node[ports.DigestStoreOpener]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.DigestStoreOpener, error) {
			return Open, nil
		},
	})
}
