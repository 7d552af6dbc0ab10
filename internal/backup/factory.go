package backup

import (
	"fmt"
	"os"
	"path/filepath"

	"tunetidy/internal/config"
	"tunetidy/internal/engine"
)

// NewStoreFromConfig creates a BackupStore based on the configured type.
func NewStoreFromConfig(cfg config.BackupStoreConfig) (engine.BackupStore, error) {
	switch cfg.Type {
	case "sqlite":
		if cfg.DataDir == "" {
			return nil, fmt.Errorf("data_dir required for sqlite backup store")
		}
		if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
			return nil, fmt.Errorf("creating backup data dir: %w", err)
		}
		return NewSQLiteStore(filepath.Join(cfg.DataDir, "backups.db"))
	case "memory":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown backup store type: %s", cfg.Type)
	}
}
