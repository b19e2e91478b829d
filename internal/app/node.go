package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/baker/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/baker/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/baker/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/baker/internal/adapters/toolchain" //nolint:depguard // Wired in app layer
	"go.trai.ch/baker/internal/adapters/watcher"   //nolint:depguard // Wired in app layer
	"go.trai.ch/baker/internal/core/ports"
)

// AppNodeID is the unique identifier for the main App Graft node.
const AppNodeID graft.ID = "app.main"

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			toolchain.RunnerNodeID,
			telemetry.TracerNodeID,
			watcher.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*App, error) {
			loader, err := graft.Dep[ports.ConfigLoader](ctx)
			if err != nil {
				return nil, err
			}

			runner, err := graft.Dep[ports.Runner](ctx)
			if err != nil {
				return nil, err
			}

			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}

			fsw, err := graft.Dep[ports.Watcher](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return New(loader, runner, tracer, fsw, log), nil
		},
	})
}
