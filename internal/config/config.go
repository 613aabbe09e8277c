package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. TESSERA_VIEWPORT_WIDTH.
const EnvPrefix = "TESSERA"

// Config is the top-level configuration for the tessera commands.
type Config struct {
	Viewport ViewportConfig `mapstructure:"viewport" yaml:"viewport"`
	Font     FontConfig     `mapstructure:"font" yaml:"font"`
	Render   RenderConfig   `mapstructure:"render" yaml:"render"`
	Logger   LoggerConfig   `mapstructure:"logger" yaml:"logger"`
}

// ViewportConfig is the canvas size in pixels.
type ViewportConfig struct {
	Width  int `mapstructure:"width" yaml:"width"`
	Height int `mapstructure:"height" yaml:"height"`
}

// FontConfig selects the glyph source. An empty Path uses the bundled face.
type FontConfig struct {
	Size float64 `mapstructure:"size" yaml:"size"`
	Path string  `mapstructure:"path" yaml:"path"`
}

// RenderConfig toggles optional pipeline stages.
type RenderConfig struct {
	UserAgent bool          `mapstructure:"user_agent" yaml:"user_agent"`
	Scripts   bool          `mapstructure:"scripts" yaml:"scripts"`
	Timeout   time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// LoggerConfig configures the zap logger.
type LoggerConfig struct {
	Level       string `mapstructure:"level" yaml:"level"`
	Format      string `mapstructure:"format" yaml:"format"`
	ServiceName string `mapstructure:"service_name" yaml:"service_name"`
}

// SetDefaults registers every key with its default value.
func SetDefaults(v *viper.Viper) {
	// -- Viewport --
	v.SetDefault("viewport.width", 800)
	v.SetDefault("viewport.height", 600)

	// -- Font --
	v.SetDefault("font.size", 16.0)
	v.SetDefault("font.path", "")

	// -- Render --
	v.SetDefault("render.user_agent", true)
	v.SetDefault("render.scripts", false)
	v.SetDefault("render.timeout", 30*time.Second)

	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.service_name", "tessera")
}

// NewViper returns a viper instance with defaults and environment binding.
func NewViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// NewDefaultConfig returns a config populated only from defaults.
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)
	cfg, err := NewConfigFromViper(v)
	if err != nil {
		panic(fmt.Sprintf("config: defaults do not unmarshal: %v", err))
	}
	return cfg
}

// NewConfigFromViper unmarshals and validates the configuration held by v.
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Load reads configuration from path, if given, on top of defaults and
// TESSERA_* environment overrides.
func Load(path string) (*Config, error) {
	v := NewViper()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}
	return NewConfigFromViper(v)
}

// Validate checks that values are usable.
func (c *Config) Validate() error {
	var errs []error
	if c.Viewport.Width <= 0 {
		errs = append(errs, errors.New("viewport.width must be a positive integer"))
	}
	if c.Viewport.Height <= 0 {
		errs = append(errs, errors.New("viewport.height must be a positive integer"))
	}
	if c.Font.Size <= 0 {
		errs = append(errs, errors.New("font.size must be positive"))
	}
	switch c.Logger.Format {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("logger.format must be console or json, got %q", c.Logger.Format))
	}
	return errors.Join(errs...)
}
