// internal/storage/factory.go
package storage

import (
	"fmt"

	"github.com/scrappydevs/ProVision-sub002/internal/config"
	gormstore "github.com/scrappydevs/ProVision-sub002/internal/storage/gorm"
	"github.com/scrappydevs/ProVision-sub002/internal/storage/memory"
)

// NewBackend creates a storage backend based on configuration
func NewBackend(cfg config.StorageConfig) (Backend, error) {
	switch cfg.Type {
	case "postgres":
		return gormstore.New(gormstore.Dependencies{}), nil
	case "sqlite":
		return gormstore.New(gormstore.Dependencies{SqlitePath: cfg.Path}), nil
	case "memory":
		return memory.New(cfg.Memory), nil
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Type)
	}
}
