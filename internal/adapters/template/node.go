package template

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/precache/internal/core/ports"
)

// NodeID is the unique identifier for the template renderer Graft node.
const NodeID graft.ID = "adapter.template"

func init() {
	graft.Register(graft.Node[ports.ScriptRenderer]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ScriptRenderer, error) {
			return NewRenderer(), nil
		},
	})
}
