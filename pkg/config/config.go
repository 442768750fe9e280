// Package config handles Insight Press configuration loading.
package config

import (
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/PlanningInsights2025/insightpress/pkg/errors"
	"github.com/PlanningInsights2025/insightpress/pkg/render"
)

// Config is the root configuration structure.
type Config struct {
	Page   PageConfig   `yaml:"page"`
	Fonts  FontConfig   `yaml:"fonts"`
	Output OutputConfig `yaml:"output"`
	Server ServerConfig `yaml:"server"`
}

// PageConfig holds page geometry settings, all in points.
type PageConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Margin float64 `yaml:"margin"`
}

// FontConfig holds typography settings.
type FontConfig struct {
	// BaseSize is the body text size in points.
	BaseSize float64 `yaml:"base_size"`
}

// OutputConfig holds PDF output settings.
type OutputConfig struct {
	// Dir is where generated PDFs are written by the CLI.
	Dir string `yaml:"dir"`

	// Compress enables zlib compression of content streams.
	Compress bool `yaml:"compress"`

	// PageNumbers adds a centered folio at the foot of each page.
	PageNumbers bool `yaml:"page_numbers"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// Default returns the default configuration.
func Default() *Config {
	r := render.DefaultConfig()
	return &Config{
		Page: PageConfig{
			Width:  r.PageWidth,
			Height: r.PageHeight,
			Margin: r.Margin,
		},
		Fonts: FontConfig{
			BaseSize: r.BaseFontSize,
		},
		Output: OutputConfig{
			Dir:         "./output",
			Compress:    true,
			PageNumbers: true,
		},
		Server: ServerConfig{
			Host: "localhost",
			Port: 8420,
		},
	}
}

// RenderConfig converts the file-level settings into the engine's config.
func (c *Config) RenderConfig() *render.Config {
	return &render.Config{
		PageWidth:    c.Page.Width,
		PageHeight:   c.Page.Height,
		Margin:       c.Page.Margin,
		BaseFontSize: c.Fonts.BaseSize,
		PageNumbers:  c.Output.PageNumbers,
		Compress:     c.Output.Compress,
	}
}

// Validate checks that configured values can produce a usable page.
func (c *Config) Validate() error {
	if c.Page.Width <= 0 || c.Page.Height <= 0 {
		return errors.Config(errors.ErrConfigInvalid, "page dimensions must be positive").
			WithContext("width", fmtFloat(c.Page.Width)).
			WithContext("height", fmtFloat(c.Page.Height))
	}
	if c.Page.Width <= 2*c.Page.Margin || c.Page.Height <= 2*c.Page.Margin {
		return errors.Config(errors.ErrConfigInvalid, "margins leave no usable page area").
			WithContext("margin", fmtFloat(c.Page.Margin))
	}
	if c.Fonts.BaseSize <= 0 {
		return errors.Config(errors.ErrConfigInvalid, "base font size must be positive").
			WithContext("base_size", fmtFloat(c.Fonts.BaseSize))
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return errors.Config(errors.ErrConfigInvalid, "server port out of range").
			WithContext("port", fmtInt(c.Server.Port))
	}
	return nil
}

// Load loads configuration from a file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ConfigNotFound(path)
		}
		return nil, errors.IOWrap(err, errors.ErrIOReadFailed, "failed to read config").
			WithContext("path", path)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.ConfigParseError(path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault loads config from path, or returns default if not found.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}

	return Load(path)
}

// Save saves configuration to a file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.ConfigWrap(err, errors.ErrConfigWriteFailed, "failed to create config directory").
			WithContext("path", dir)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.ConfigWrap(err, errors.ErrConfigWriteFailed, "failed to marshal config")
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.ConfigWrap(err, errors.ErrConfigWriteFailed, "failed to write config file").
			WithContext("path", path)
	}
	return nil
}

// DefaultConfigPath returns the default config file path.
// Config is application-level, stored with the application.
func DefaultConfigPath() string {
	// First check for config in current working directory
	if _, err := os.Stat("config.yaml"); err == nil {
		return "config.yaml"
	}
	// Then check for config/ subdirectory
	if _, err := os.Stat("config/config.yaml"); err == nil {
		return "config/config.yaml"
	}
	// Default to config.yaml in current directory
	return "config.yaml"
}

// InitConfig creates a default config file if it doesn't exist.
func InitConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil // Already exists
	}

	cfg := Default()
	return cfg.Save(path)
}

func fmtFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func fmtInt(v int) string {
	return strconv.Itoa(v)
}
