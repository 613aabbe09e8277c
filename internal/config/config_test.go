package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -- Constructor and Defaults Tests --

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	assert.Equal(t, 800, cfg.Viewport.Width)
	assert.Equal(t, 600, cfg.Viewport.Height)
	assert.Equal(t, 16.0, cfg.Font.Size)
	assert.Empty(t, cfg.Font.Path)
	assert.True(t, cfg.Render.UserAgent)
	assert.False(t, cfg.Render.Scripts)
	assert.Equal(t, 30*time.Second, cfg.Render.Timeout)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "console", cfg.Logger.Format)
}

// -- Loading Tests --

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tessera.yaml")
	content := `
viewport:
  width: 320
font:
  size: 12
render:
  scripts: true
logger:
  format: json
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 320, cfg.Viewport.Width)
	assert.Equal(t, 600, cfg.Viewport.Height, "unset keys keep defaults")
	assert.Equal(t, 12.0, cfg.Font.Size)
	assert.True(t, cfg.Render.Scripts)
	assert.Equal(t, "json", cfg.Logger.Format)
}

func TestLoad_TOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tessera.toml")
	require.NoError(t, os.WriteFile(path, []byte("[viewport]\nheight = 90\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 90, cfg.Viewport.Height)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("TESSERA_VIEWPORT_WIDTH", "1024")
	t.Setenv("TESSERA_LOGGER_LEVEL", "debug")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 1024, cfg.Viewport.Width)
	assert.Equal(t, "debug", cfg.Logger.Level)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

// -- Validation Logic Tests --

func TestConfigValidation(t *testing.T) {
	cfg := NewDefaultConfig()
	require.NoError(t, cfg.Validate())

	bad := *cfg
	bad.Viewport.Width = 0
	err := bad.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "viewport.width must be a positive integer")

	bad = *cfg
	bad.Font.Size = -1
	bad.Logger.Format = "xml"
	err = bad.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "font.size must be positive")
	assert.Contains(t, err.Error(), "logger.format must be console or json")
}
