package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/podgen/internal/core/ports"
)

const (
	// HasherNodeID is the unique identifier for the hasher Graft node.
	HasherNodeID graft.ID = "adapter.fs.hasher"
	// WriterNodeID is the unique identifier for the document writer Graft node.
	WriterNodeID graft.ID = "adapter.fs.writer"
	// FinderNodeID is the unique identifier for the project finder Graft node.
	FinderNodeID graft.ID = "adapter.fs.finder"
	// ArtifactsNodeID is the unique identifier for the artifact resolver Graft node.
	ArtifactsNodeID graft.ID = "adapter.fs.artifacts"
)

func init() {
	graft.Register(graft.Node[ports.Hasher]{
		ID:        HasherNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Hasher, error) {
			return NewHasher(), nil
		},
	})

	graft.Register(graft.Node[ports.DocumentWriter]{
		ID:        WriterNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{HasherNodeID},
		Run: func(ctx context.Context) (ports.DocumentWriter, error) {
			hasher, err := graft.Dep[ports.Hasher](ctx)
			if err != nil {
				return nil, err
			}
			return NewDocumentWriter(hasher), nil
		},
	})

	graft.Register(graft.Node[ports.ProjectFinder]{
		ID:        FinderNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ProjectFinder, error) {
			return NewFinder(), nil
		},
	})

	graft.Register(graft.Node[ports.ArtifactResolver]{
		ID:        ArtifactsNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ArtifactResolver, error) {
			return NewArtifactResolver(), nil
		},
	})
}
