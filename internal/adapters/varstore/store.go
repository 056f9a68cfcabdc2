package varstore

import (
	"go.trai.ch/loom/internal/core/domain"
	"go.trai.ch/loom/internal/core/ports"
	"go.trai.ch/zerr"
)

// Store drivers accepted by New.
const (
	DriverFile   = "file"
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
)

// New opens the store selected by driver at path.
func New(driver, path string) (ports.VarStore, error) {
	switch driver {
	case DriverFile, "":
		return NewFileStore(path)
	case DriverSQLite:
		return NewSQLiteStore(path)
	case DriverMemory:
		return NewMemoryStore(nil), nil
	default:
		return nil, zerr.With(zerr.Wrap(domain.ErrUnknownStoreDriver, "cannot open variable store"), "driver", driver)
	}
}
