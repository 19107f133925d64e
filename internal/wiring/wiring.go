// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/podgen/internal/adapters/cas"
	_ "go.trai.ch/podgen/internal/adapters/config"
	_ "go.trai.ch/podgen/internal/adapters/fs"
	_ "go.trai.ch/podgen/internal/adapters/graphviz"
	_ "go.trai.ch/podgen/internal/adapters/logger"
	_ "go.trai.ch/podgen/internal/adapters/telemetry"
	// Register app nodes.
	_ "go.trai.ch/podgen/internal/app"
)
