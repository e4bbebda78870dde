package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/runoshun/hourlog/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_GetLocalConfigInfo(t *testing.T) {
	t.Run("returns info when file exists", func(t *testing.T) {
		dataDir := t.TempDir()
		configContent := "[log]\nlevel = \"debug\""
		err := os.WriteFile(filepath.Join(dataDir, domain.ConfigFileName), []byte(configContent), 0644)
		require.NoError(t, err)

		manager := NewManagerWithGlobalDir(dataDir, "")
		info := manager.GetLocalConfigInfo()

		assert.Equal(t, filepath.Join(dataDir, domain.ConfigFileName), info.Path)
		assert.Equal(t, configContent, info.Content)
		assert.True(t, info.Exists)
	})

	t.Run("returns info when file does not exist", func(t *testing.T) {
		dataDir := t.TempDir()

		manager := NewManagerWithGlobalDir(dataDir, "")
		info := manager.GetLocalConfigInfo()

		assert.Equal(t, filepath.Join(dataDir, domain.ConfigFileName), info.Path)
		assert.Empty(t, info.Content)
		assert.False(t, info.Exists)
	})
}

func TestManager_GetGlobalConfigInfo(t *testing.T) {
	t.Run("returns info when file exists", func(t *testing.T) {
		globalDir := t.TempDir()
		configContent := "[log]\nlevel = \"debug\""
		err := os.WriteFile(filepath.Join(globalDir, domain.ConfigFileName), []byte(configContent), 0644)
		require.NoError(t, err)

		manager := NewManagerWithGlobalDir("", globalDir)
		info := manager.GetGlobalConfigInfo()

		assert.Equal(t, filepath.Join(globalDir, domain.ConfigFileName), info.Path)
		assert.Equal(t, configContent, info.Content)
		assert.True(t, info.Exists)
	})

	t.Run("returns empty info when global dir is empty", func(t *testing.T) {
		manager := NewManagerWithGlobalDir("", "")
		info := manager.GetGlobalConfigInfo()

		assert.Empty(t, info.Path)
		assert.False(t, info.Exists)
	})
}

func TestManager_InitLocalConfig(t *testing.T) {
	t.Run("creates data directory and config file", func(t *testing.T) {
		dataDir := filepath.Join(t.TempDir(), "hourlog")
		cfg := domain.NewDefaultConfig()
		cfg.Projects.Seed = []string{"Website"}

		manager := NewManagerWithGlobalDir(dataDir, "")
		require.NoError(t, manager.InitLocalConfig(cfg))

		content, err := os.ReadFile(filepath.Join(dataDir, domain.ConfigFileName))
		require.NoError(t, err)
		assert.Contains(t, string(content), "hourlog configuration")
		assert.Contains(t, string(content), "[store]")
		assert.Contains(t, string(content), `seed = ["Website"]`)
	})

	t.Run("returns error if file already exists", func(t *testing.T) {
		dataDir := t.TempDir()
		err := os.WriteFile(filepath.Join(dataDir, domain.ConfigFileName), []byte("existing"), 0644)
		require.NoError(t, err)

		manager := NewManagerWithGlobalDir(dataDir, "")
		err = manager.InitLocalConfig(domain.NewDefaultConfig())

		assert.ErrorIs(t, err, domain.ErrConfigExists)
	})
}

func TestManager_InitGlobalConfig(t *testing.T) {
	t.Run("creates config file and parent directory", func(t *testing.T) {
		globalDir := filepath.Join(t.TempDir(), "hourlog")

		manager := NewManagerWithGlobalDir("", globalDir)
		require.NoError(t, manager.InitGlobalConfig(domain.NewDefaultConfig()))

		info := manager.GetGlobalConfigInfo()
		assert.True(t, info.Exists)
		assert.Contains(t, info.Content, "[log]")
	})

	t.Run("returns error if global dir is not available", func(t *testing.T) {
		manager := NewManagerWithGlobalDir("", "")
		err := manager.InitGlobalConfig(domain.NewDefaultConfig())
		assert.Error(t, err)
	})

	t.Run("returns error if file already exists", func(t *testing.T) {
		globalDir := t.TempDir()
		err := os.WriteFile(filepath.Join(globalDir, domain.ConfigFileName), []byte("existing"), 0644)
		require.NoError(t, err)

		manager := NewManagerWithGlobalDir("", globalDir)
		err = manager.InitGlobalConfig(domain.NewDefaultConfig())

		assert.ErrorIs(t, err, domain.ErrConfigExists)
	})
}
