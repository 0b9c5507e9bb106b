// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/depgraph/internal/adapters/cache"
	_ "go.trai.ch/depgraph/internal/adapters/config"
	_ "go.trai.ch/depgraph/internal/adapters/logger"
	_ "go.trai.ch/depgraph/internal/adapters/tracker"
	// Register app and engine nodes.
	_ "go.trai.ch/depgraph/internal/app"
	_ "go.trai.ch/depgraph/internal/engine/graph"
	_ "go.trai.ch/depgraph/internal/engine/issues"
)
