// Package modkit provides module wiring and core deps
package modkit

import (
	phttp "devsolutions/internal/platform/net/http"
)

// Module is the common surface for API modules
// keep this tiny so modules stay decoupled
type Module interface {
	// MountRoutes mounts HTTP routes under the provided router seam
	MountRoutes(r phttp.Router)
	// Ports returns the module's service port for cross wiring and tests, nil when none
	Ports() any
	// Name returns the module name
	Name() string
}

// Builder constructs a Module from shared deps and options
type Builder func(Deps, ...Option) Module
