package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scrappydevs/ProVision-sub002/internal/config"
	"github.com/scrappydevs/ProVision-sub002/internal/storage/memory"
)

func TestNewBackend_Memory(t *testing.T) {
	b, err := NewBackend(config.StorageConfig{
		Type:   "memory",
		Memory: config.MemoryConfig{OutputDir: t.TempDir()},
	})
	require.NoError(t, err)
	require.NotNil(t, b)

	_, isMemory := b.(*memory.Backend)
	assert.True(t, isMemory)

	// memory backend also supports export
	_, isExportable := b.(Exportable)
	assert.True(t, isExportable)
}

func TestNewBackend_Unknown(t *testing.T) {
	_, err := NewBackend(config.StorageConfig{Type: "etcd"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown storage type")
}
