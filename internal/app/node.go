package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/precache/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/precache/internal/adapters/fs"        //nolint:depguard // Wired in app layer
	"go.trai.ch/precache/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/precache/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/precache/internal/adapters/template"  //nolint:depguard // Wired in app layer
	"go.trai.ch/precache/internal/adapters/watcher"   //nolint:depguard // Wired in app layer
	"go.trai.ch/precache/internal/core/ports"
	"go.trai.ch/precache/internal/engine/manifest"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components holds what the command line needs from the dependency graph.
type Components struct {
	App    *App
	Logger ports.Logger
}

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			fs.CopierNodeID,
			manifest.NodeID,
			template.NodeID,
			watcher.NodeID,
			logger.NodeID,
			telemetry.TracerNodeID,
		},
		Run: runAppNode,
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return &Components{App: app, Logger: log}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}
	copier, err := graft.Dep[ports.Copier](ctx)
	if err != nil {
		return nil, err
	}
	generator, err := graft.Dep[*manifest.Generator](ctx)
	if err != nil {
		return nil, err
	}
	renderer, err := graft.Dep[ports.ScriptRenderer](ctx)
	if err != nil {
		return nil, err
	}
	w, err := graft.Dep[ports.Watcher](ctx)
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

	return New(loader, copier, generator, renderer, w, log, tracer), nil
}
