package app

import (
	"io"

	"go.trai.ch/loom/internal/core/ports"
)

// Components holds the wired top-level dependencies the CLI needs.
type Components struct {
	App    *App
	Logger ports.Logger
	Vars   ports.VarStore
}

// Close releases the variable store and flushes the logger.
func (c *Components) Close() error {
	var err error
	if closer, ok := c.Vars.(io.Closer); ok {
		if err = closer.Close(); err != nil {
			c.Logger.Error(err)
		}
	}
	if syncer, ok := c.Logger.(interface{ Sync() error }); ok {
		_ = syncer.Sync()
	}
	return err
}
