package store

import (
	"fmt"
	"path/filepath"

	"tcm-go/internal/config"
	"tcm-go/internal/tcm"
)

// NewStoreFromConfig creates a Store implementation based on the store config type.
func NewStoreFromConfig(cfg config.StoreConfig) (tcm.Store, error) {
	switch cfg.Type {
	case "filesystem":
		if cfg.DataDir == "" {
			return nil, fmt.Errorf("data_dir required for filesystem store")
		}
		return NewFileSystemStore(cfg.DataDir)
	case "sqlite":
		if cfg.DataDir == "" {
			return nil, fmt.Errorf("data_dir required for sqlite store")
		}
		return NewSQLiteStore(filepath.Join(cfg.DataDir, "tcm.db"))
	case "memory":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store type: %s", cfg.Type)
	}
}
