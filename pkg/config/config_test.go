// Package config tests for configuration loading and structured error handling.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PlanningInsights2025/insightpress/pkg/errors"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Page.Width != 612 || cfg.Page.Height != 792 {
		t.Errorf("unexpected default page size: %.0fx%.0f", cfg.Page.Width, cfg.Page.Height)
	}
	if cfg.Page.Margin != 72 {
		t.Errorf("expected margin 72, got %f", cfg.Page.Margin)
	}
	if cfg.Fonts.BaseSize != 11 {
		t.Errorf("expected base size 11, got %f", cfg.Fonts.BaseSize)
	}
	if !cfg.Output.Compress {
		t.Error("compression should default to on")
	}
	if cfg.Server.Port != 8420 {
		t.Errorf("unexpected default port: %d", cfg.Server.Port)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestRenderConfig(t *testing.T) {
	cfg := Default()
	cfg.Page.Margin = 54
	cfg.Fonts.BaseSize = 10
	cfg.Output.PageNumbers = false

	r := cfg.RenderConfig()
	if r.Margin != 54 {
		t.Errorf("expected margin 54, got %f", r.Margin)
	}
	if r.BaseFontSize != 10 {
		t.Errorf("expected base size 10, got %f", r.BaseFontSize)
	}
	if r.PageNumbers {
		t.Error("page numbers should be off")
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	cfg := Default()
	cfg.Page.Margin = 64
	cfg.Server.Port = 9000

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Page.Margin != 64 {
		t.Errorf("expected margin 64, got %f", loaded.Page.Margin)
	}
	if loaded.Server.Port != 9000 {
		t.Errorf("expected port 9000, got %d", loaded.Server.Port)
	}
}

func TestLoadPartialConfigKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	partial := "page:\n  margin: 90\n"
	if err := os.WriteFile(path, []byte(partial), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Page.Margin != 90 {
		t.Errorf("expected overridden margin 90, got %f", cfg.Page.Margin)
	}
	if cfg.Page.Width != 612 {
		t.Errorf("unset fields should keep defaults, got width %f", cfg.Page.Width)
	}
	if cfg.Fonts.BaseSize != 11 {
		t.Errorf("unset fields should keep defaults, got base size %f", cfg.Fonts.BaseSize)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !errors.IsCode(err, errors.ErrConfigNotFound) {
		t.Errorf("expected CONFIG_NOT_FOUND, got %v", err)
	}
}

func TestLoadUnreadablePath(t *testing.T) {
	// A directory exists but cannot be read as a file; this is an IO
	// failure, not a missing config.
	_, err := Load(t.TempDir())
	if err == nil {
		t.Fatal("expected error when path is a directory")
	}
	if errors.IsCode(err, errors.ErrConfigNotFound) {
		t.Errorf("read failure misclassified as missing config: %v", err)
	}
	if !errors.IsCode(err, errors.ErrIOReadFailed) {
		t.Errorf("expected IO_READ_FAILED, got %v", err)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("page: [not: valid"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	if err == nil {
		t.Fatal("expected parse error")
	}
	if !errors.IsCode(err, errors.ErrConfigParseFailed) {
		t.Errorf("expected CONFIG_PARSE_FAILED, got %v", err)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	bad := "page:\n  width: 100\n  height: 100\n  margin: 60\n"
	if err := os.WriteFile(path, []byte(bad), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !errors.IsCode(err, errors.ErrConfigInvalid) {
		t.Errorf("expected CONFIG_INVALID, got %v", err)
	}
	if !strings.Contains(err.Error(), "margins") {
		t.Errorf("error should mention margins: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		valid  bool
	}{
		{"defaults", func(c *Config) {}, true},
		{"zero width", func(c *Config) { c.Page.Width = 0 }, false},
		{"negative base size", func(c *Config) { c.Fonts.BaseSize = -1 }, false},
		{"port too large", func(c *Config) { c.Server.Port = 70000 }, false},
		{"tight but usable margins", func(c *Config) { c.Page.Margin = 300 }, true},
	}
	for _, tt := range tests {
		cfg := Default()
		tt.mutate(cfg)
		err := cfg.Validate()
		if tt.valid && err != nil {
			t.Errorf("%s: unexpected error %v", tt.name, err)
		}
		if !tt.valid && err == nil {
			t.Errorf("%s: expected validation error", tt.name)
		}
	}
}

func TestLoadOrDefault(t *testing.T) {
	cfg, err := LoadOrDefault("")
	if err != nil {
		t.Fatalf("empty path should yield defaults: %v", err)
	}
	if cfg.Page.Width != 612 {
		t.Errorf("unexpected width: %f", cfg.Page.Width)
	}

	cfg, err = LoadOrDefault(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing path should yield defaults: %v", err)
	}
	if cfg.Fonts.BaseSize != 11 {
		t.Errorf("unexpected base size: %f", cfg.Fonts.BaseSize)
	}
}

func TestInitConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	if err := InitConfig(path); err != nil {
		t.Fatalf("InitConfig failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not created: %v", err)
	}

	// Second init must not overwrite.
	custom := "page:\n  margin: 48\n"
	if err := os.WriteFile(path, []byte(custom), 0644); err != nil {
		t.Fatal(err)
	}
	if err := InitConfig(path); err != nil {
		t.Fatalf("second InitConfig failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != custom {
		t.Error("InitConfig overwrote an existing file")
	}
}
