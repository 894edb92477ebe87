package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/precache/internal/core/ports"
)

const (
	// WalkerNodeID is the unique identifier for the file walker Graft node.
	WalkerNodeID graft.ID = "adapter.fs.walker"
	// HasherNodeID is the unique identifier for the concrete hasher Graft node.
	HasherNodeID graft.ID = "adapter.fs.hasher"
	// DigestNodeID is the unique identifier for the ports.Hasher Graft node.
	DigestNodeID graft.ID = "adapter.fs.digest"
	// ResolverNodeID is the unique identifier for the file resolver Graft node.
	ResolverNodeID graft.ID = "adapter.fs.resolver"
	// CopierNodeID is the unique identifier for the copier Graft node.
	CopierNodeID graft.ID = "adapter.fs.copier"
)

func init() {
	// Walker Node (concrete implementation needed by Copier)
	graft.Register(graft.Node[*Walker]{
		ID:        WalkerNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Walker, error) {
			return NewWalker(), nil
		},
	})

	// Hasher Node (concrete implementation needed by Copier)
	graft.Register(graft.Node[*Hasher]{
		ID:        HasherNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Hasher, error) {
			return NewHasher(), nil
		},
	})

	// Digest Node
	graft.Register(graft.Node[ports.Hasher]{
		ID:        DigestNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{HasherNodeID},
		Run: func(ctx context.Context) (ports.Hasher, error) {
			hasher, err := graft.Dep[*Hasher](ctx)
			if err != nil {
				return nil, err
			}
			return hasher, nil
		},
	})

	// Resolver Node
	graft.Register(graft.Node[ports.FileResolver]{
		ID:        ResolverNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.FileResolver, error) {
			return NewResolver(), nil
		},
	})

	// Copier Node
	graft.Register(graft.Node[ports.Copier]{
		ID:        CopierNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{WalkerNodeID, HasherNodeID},
		Run: func(ctx context.Context) (ports.Copier, error) {
			walker, err := graft.Dep[*Walker](ctx)
			if err != nil {
				return nil, err
			}
			hasher, err := graft.Dep[*Hasher](ctx)
			if err != nil {
				return nil, err
			}
			return NewCopier(walker, hasher), nil
		},
	})
}
