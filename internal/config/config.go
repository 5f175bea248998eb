package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"

	"github.com/ironsheep/draw-click/internal/annotate"
	"github.com/ironsheep/draw-click/internal/imaging"
)

// Environment variables read by Load.
const (
	EnvConfigPath  = "DRAW_CLICK_CONFIG"
	EnvLogLevel    = "DRAW_CLICK_LOG_LEVEL"
	EnvJPEGQuality = "DRAW_CLICK_JPEG_QUALITY"
	EnvFont        = "DRAW_CLICK_FONT"
)

// ErrInvalidConfig is wrapped by every error Validate returns.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds the application configuration
type Config struct {
	Style    annotate.Style `yaml:"style"`
	Output   OutputConfig   `yaml:"output"`
	LogLevel string         `yaml:"log_level"`
}

// OutputConfig holds encoder settings for the written image
type OutputConfig struct {
	JPEGQuality  int  `yaml:"jpeg_quality"`
	WebPQuality  int  `yaml:"webp_quality"`
	WebPLossless bool `yaml:"webp_lossless"`
}

// Default returns a configuration with default values
func Default() *Config {
	return &Config{
		Style: annotate.DefaultStyle(),
		Output: OutputConfig{
			JPEGQuality: imaging.DefaultJPEGQuality,
			WebPQuality: 90,
		},
		LogLevel: "info",
	}
}

// LoadFromFile reads a YAML file over the defaults. Keys missing from the
// file keep their default values.
func LoadFromFile(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", filename, err)
	}
	return cfg, nil
}

// Load builds the effective configuration.
//
// A .env file in the working directory is loaded first if present; it never
// overrides variables already set. The config file is path, or the file named
// by DRAW_CLICK_CONFIG when path is empty, or none. Environment overrides are
// applied last. The result is not validated.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}

	cfg := Default()
	if path != "" {
		var err error
		if cfg, err = LoadFromFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv(EnvFont); v != "" {
		c.Style.Font = imaging.FontFamily(v)
	}
	if v := os.Getenv(EnvJPEGQuality); v != "" {
		q, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %q is not an integer", EnvJPEGQuality, v)
		}
		c.Output.JPEGQuality = q
	}
	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if err := c.Style.Validate(); err != nil {
		return fmt.Errorf("%w: style: %w", ErrInvalidConfig, err)
	}
	if c.Output.JPEGQuality < 1 || c.Output.JPEGQuality > 100 {
		return fmt.Errorf("%w: output.jpeg_quality must be between 1 and 100", ErrInvalidConfig)
	}
	if c.Output.WebPQuality < 1 || c.Output.WebPQuality > 100 {
		return fmt.Errorf("%w: output.webp_quality must be between 1 and 100", ErrInvalidConfig)
	}
	switch strings.ToLower(c.LogLevel) {
	case "", "info", "debug":
	default:
		return fmt.Errorf("%w: log_level must be info or debug, got %q", ErrInvalidConfig, c.LogLevel)
	}
	return nil
}

// Debug reports whether debug logging is enabled.
func (c *Config) Debug() bool {
	return strings.EqualFold(c.LogLevel, "debug")
}

// SaveOptions converts the output section into encoder options.
func (c *Config) SaveOptions() imaging.SaveOptions {
	return imaging.SaveOptions{
		JPEGQuality:  c.Output.JPEGQuality,
		WebPQuality:  float32(c.Output.WebPQuality),
		WebPLossless: c.Output.WebPLossless,
	}
}
