package manifest

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/precache/internal/adapters/fs"
	"go.trai.ch/precache/internal/adapters/logger"
	"go.trai.ch/precache/internal/adapters/telemetry"
	"go.trai.ch/precache/internal/core/ports"
)

// NodeID is the unique identifier for the manifest generator Graft node.
const NodeID graft.ID = "engine.manifest"

func init() {
	graft.Register(graft.Node[*Generator]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			fs.ResolverNodeID,
			fs.DigestNodeID,
			logger.NodeID,
			telemetry.TracerNodeID,
		},
		Run: func(ctx context.Context) (*Generator, error) {
			resolver, err := graft.Dep[ports.FileResolver](ctx)
			if err != nil {
				return nil, err
			}
			hasher, err := graft.Dep[ports.Hasher](ctx)
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
			return NewGenerator(resolver, hasher, log, tracer), nil
		},
	})
}
