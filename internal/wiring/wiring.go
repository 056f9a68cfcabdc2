// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/loom/internal/adapters/codec"
	_ "go.trai.ch/loom/internal/adapters/config"
	_ "go.trai.ch/loom/internal/adapters/fetch"
	_ "go.trai.ch/loom/internal/adapters/logger"
	_ "go.trai.ch/loom/internal/adapters/schema"
	_ "go.trai.ch/loom/internal/adapters/settings"
	_ "go.trai.ch/loom/internal/adapters/telemetry"
	_ "go.trai.ch/loom/internal/adapters/varstore"
	// Register app and engine nodes.
	_ "go.trai.ch/loom/internal/app"
	_ "go.trai.ch/loom/internal/engine/registry"
)
