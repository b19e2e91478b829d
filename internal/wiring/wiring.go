// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/baker/internal/adapters/config"
	_ "go.trai.ch/baker/internal/adapters/logger"
	_ "go.trai.ch/baker/internal/adapters/telemetry"
	_ "go.trai.ch/baker/internal/adapters/toolchain"
	_ "go.trai.ch/baker/internal/adapters/watcher"
	// Register app nodes.
	_ "go.trai.ch/baker/internal/app"
)
