package app

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"eyes-editor/internal/editor"
	"eyes-editor/internal/image"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"go-simpler.org/env"
)

// ConfigFile is the name of the config file inside the config directory.
const ConfigFile = "config.toml"

// Config holds the tunables of the editor. Values come from DefaultConfig,
// then config.toml, then EYES_* environment variables (a .env file in the
// working directory is honored).
type Config struct {
	CanvasSize      int     `toml:"canvas_size" env:"EYES_CANVAS_SIZE"`
	HandleSize      float64 `toml:"handle_size" env:"EYES_HANDLE_SIZE"`
	TouchHandleSize float64 `toml:"touch_handle_size" env:"EYES_TOUCH_HANDLE_SIZE"`
	RotateOffset    float64 `toml:"rotate_offset" env:"EYES_ROTATE_OFFSET"`
	MinScale        float64 `toml:"min_scale" env:"EYES_MIN_SCALE"`
	MaxScale        float64 `toml:"max_scale" env:"EYES_MAX_SCALE"`

	WatermarkOpacity  float64 `toml:"watermark_opacity" env:"EYES_WATERMARK_OPACITY"`
	WatermarkPadding  float64 `toml:"watermark_padding" env:"EYES_WATERMARK_PADDING"`
	WatermarkFraction float64 `toml:"watermark_fraction" env:"EYES_WATERMARK_FRACTION"`
	Watermark         bool    `toml:"watermark" env:"EYES_WATERMARK"` // Stamp the final image

	ExportName  string `toml:"export_name" env:"EYES_EXPORT_NAME"`
	AssetDir    string `toml:"asset_dir" env:"EYES_ASSET_DIR"`
	WatchAssets bool   `toml:"watch_assets" env:"EYES_WATCH_ASSETS"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() Config {
	return Config{
		CanvasSize:        512,
		HandleSize:        editor.DefaultHandleSize,
		TouchHandleSize:   32,
		RotateOffset:      editor.DefaultRotateOffset,
		MinScale:          editor.DefaultMinScale,
		MaxScale:          editor.DefaultMaxScale,
		WatermarkOpacity:  image.DefaultWatermarkOpacity,
		WatermarkPadding:  image.DefaultWatermarkPadding,
		WatermarkFraction: image.DefaultWatermarkMaxFraction,
		Watermark:         true,
		ExportName:        "bossburger-edited.png",
	}
}

// Limits returns the editor limits described by the config.
func (c Config) Limits() editor.Limits {
	return editor.Limits{
		MinScale:     c.MinScale,
		MaxScale:     c.MaxScale,
		HandleSize:   c.HandleSize,
		RotateOffset: c.RotateOffset,
	}
}

// Validate checks that the settings can drive the editor.
func (c Config) Validate() error {
	switch {
	case c.CanvasSize <= 0:
		return fmt.Errorf("canvas_size must be positive, got %d", c.CanvasSize)
	case c.MinScale <= 0 || c.MaxScale < c.MinScale:
		return fmt.Errorf("invalid scale range [%g, %g]", c.MinScale, c.MaxScale)
	case c.HandleSize <= 0 || c.TouchHandleSize <= 0:
		return errors.New("handle sizes must be positive")
	case c.WatermarkOpacity < 0 || c.WatermarkOpacity > 1:
		return fmt.Errorf("watermark_opacity must be within [0, 1], got %g", c.WatermarkOpacity)
	case c.WatermarkFraction <= 0 || c.WatermarkFraction > 1:
		return fmt.Errorf("watermark_fraction must be within (0, 1], got %g", c.WatermarkFraction)
	case c.ExportName == "":
		return errors.New("export_name is required")
	}
	return nil
}

// ConfigDir returns the directory holding config.toml and preferences.
func ConfigDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "eyes-editor")
}

// LoadConfig reads dir/config.toml, writing the defaults there first if it
// does not exist yet, and applies environment overrides.
func LoadConfig(dir string) (Config, error) {
	cfg := DefaultConfig()

	path := filepath.Join(dir, ConfigFile)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		log.Printf("Initializing config at %s", path)
		if err := WriteConfig(dir, cfg); err != nil {
			log.Printf("Couldn't write default config: %v", err)
		}
	} else if err != nil {
		return cfg, fmt.Errorf("failed to check config file: %w", err)
	} else if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found, using environment variables")
	}
	if err := env.Load(&cfg, nil); err != nil {
		return cfg, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// WriteConfig stores cfg as dir/config.toml.
func WriteConfig(dir string, cfg Config) error {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return os.WriteFile(filepath.Join(dir, ConfigFile), buf.Bytes(), 0644)
}
