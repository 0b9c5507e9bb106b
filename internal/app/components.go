package app

import (
	"go.trai.ch/depgraph/internal/core/domain"
	"go.trai.ch/depgraph/internal/core/ports"
)

// Components contains all the initialized application components.
// This struct provides controlled access to components needed by the CLI layer.
type Components struct {
	App    *App
	Logger ports.Logger
	Config *domain.Config

	backend ports.CacheBackend
}

// NewComponents creates a new Components struct from dependencies.
func NewComponents(app *App, logger ports.Logger, cfg *domain.Config, backend ports.CacheBackend) *Components {
	return &Components{
		App:     app,
		Logger:  logger,
		Config:  cfg,
		backend: backend,
	}
}

// Close releases the cache storage.
func (c *Components) Close() error {
	if c.backend == nil {
		return nil
	}
	return c.backend.Close()
}
