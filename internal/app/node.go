package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/podgen/internal/adapters/cas"       //nolint:depguard // Wired in app layer
	"go.trai.ch/podgen/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/podgen/internal/adapters/fs"        //nolint:depguard // Wired in app layer
	"go.trai.ch/podgen/internal/adapters/graphviz"  //nolint:depguard // Wired in app layer
	"go.trai.ch/podgen/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/podgen/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/podgen/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components contains the initialized application components.
type Components struct {
	App    *App
	Logger ports.Logger
}

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			fs.WriterNodeID,
			fs.FinderNodeID,
			fs.ArtifactsNodeID,
			graphviz.NodeID,
			cas.NodeID,
			telemetry.TracerNodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{AppNodeID, logger.NodeID},
		Run: func(ctx context.Context) (*Components, error) {
			a, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return &Components{App: a, Logger: log}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ManifestLoader](ctx)
	if err != nil {
		return nil, err
	}
	writer, err := graft.Dep[ports.DocumentWriter](ctx)
	if err != nil {
		return nil, err
	}
	finder, err := graft.Dep[ports.ProjectFinder](ctx)
	if err != nil {
		return nil, err
	}
	artifacts, err := graft.Dep[ports.ArtifactResolver](ctx)
	if err != nil {
		return nil, err
	}
	exporter, err := graft.Dep[ports.GraphExporter](ctx)
	if err != nil {
		return nil, err
	}
	openStore, err := graft.Dep[ports.DigestStoreOpener](ctx)
	if err != nil {
		return nil, err
	}
	tracer, err := graft.Dep[ports.Tracer](ctx)
	if err != nil {
		return nil, err
	}
	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}
	return New(loader, writer, finder, artifacts, exporter, openStore, tracer, log), nil
}
