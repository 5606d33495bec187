package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_InitializesDefaults(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "eyes-editor")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.FileExists(t, filepath.Join(dir, ConfigFile))

	// The written file round-trips to the same settings.
	again, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, cfg, again)
}

func TestLoadConfig_FileOverrides(t *testing.T) {
	dir := t.TempDir()
	data := "canvas_size = 640\nmax_scale = 3.0\nexport_name = \"meme.png\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFile), []byte(data), 0644))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, 640, cfg.CanvasSize)
	assert.Equal(t, 3.0, cfg.MaxScale)
	assert.Equal(t, "meme.png", cfg.ExportName)
	// Unset keys keep their defaults.
	assert.Equal(t, 0.1, cfg.MinScale)
	assert.Equal(t, 0.7, cfg.WatermarkOpacity)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WriteConfig(dir, DefaultConfig()))
	t.Setenv("EYES_CANVAS_SIZE", "1024")
	t.Setenv("EYES_ASSET_DIR", "/srv/eyes")
	t.Setenv("EYES_WATCH_ASSETS", "true")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, 1024, cfg.CanvasSize)
	assert.Equal(t, "/srv/eyes", cfg.AssetDir)
	assert.True(t, cfg.WatchAssets)
}

func TestLoadConfig_Malformed(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFile), []byte("canvas_size = \"big\""), 0644))

	_, err := LoadConfig(dir)
	assert.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"zero canvas", func(c *Config) { c.CanvasSize = 0 }, true},
		{"inverted scale", func(c *Config) { c.MinScale, c.MaxScale = 2, 1 }, true},
		{"zero min scale", func(c *Config) { c.MinScale = 0 }, true},
		{"opacity above one", func(c *Config) { c.WatermarkOpacity = 1.5 }, true},
		{"zero fraction", func(c *Config) { c.WatermarkFraction = 0 }, true},
		{"no handle", func(c *Config) { c.HandleSize = 0 }, true},
		{"no export name", func(c *Config) { c.ExportName = "" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfigLimits(t *testing.T) {
	cfg := DefaultConfig()
	lim := cfg.Limits()
	assert.Equal(t, 0.1, lim.MinScale)
	assert.Equal(t, 5.0, lim.MaxScale)
	assert.Equal(t, 20.0, lim.HandleSize)
	assert.Equal(t, 30.0, lim.RotateOffset)
}
