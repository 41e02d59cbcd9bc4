package app

import (
	"fmt"
	"path/filepath"

	"github.com/tgienger/taskflow/internal/config"
	"github.com/tgienger/taskflow/internal/db"
	"github.com/tgienger/taskflow/internal/storage"
)

// StoreDir is the diskv directory inside the data directory
const StoreDir = "store"

// OpenBackend opens the storage backend named by cfg.Storage
func OpenBackend(cfg *config.Config) (storage.Backend, error) {
	switch cfg.Storage {
	case storage.DriverSQLite:
		database, err := db.New(cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return database, nil
	case storage.DriverDiskv:
		store, err := storage.NewDiskv(filepath.Join(cfg.DataDir, StoreDir))
		if err != nil {
			return nil, fmt.Errorf("open diskv store: %w", err)
		}
		return store, nil
	case storage.DriverMemory:
		return storage.NewMemory(), nil
	}
	return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage)
}
