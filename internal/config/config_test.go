package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ironsheep/draw-click/internal/annotate"
	"github.com/ironsheep/draw-click/internal/imaging"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should be valid: %v", err)
	}
	if diff := cmp.Diff(annotate.DefaultStyle(), cfg.Style); diff != "" {
		t.Errorf("default style mismatch (-want +got):\n%s", diff)
	}
	if cfg.Debug() {
		t.Error("default config should not enable debug logging")
	}
}

func TestLoadFromFile_PartialOverride(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "style.yaml", `
style:
  spotlight_radius: 150
  outer_ring:
    radius: 60
    thickness: 4
    color: "#00FF00"
output:
  jpeg_quality: 80
log_level: debug
`)

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}

	want := Default()
	want.Style.SpotlightRadius = 150
	want.Style.OuterRing = annotate.Ring{Radius: 60, Thickness: 4, Color: "#00FF00"}
	want.Output.JPEGQuality = 80
	want.LogLevel = "debug"

	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
	if !cfg.Debug() {
		t.Error("log_level debug should enable Debug()")
	}
}

func TestLoadFromFile_Errors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadFromFile(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("LoadFromFile should fail for a missing file")
	}

	bad := writeFile(t, dir, "bad.yaml", "style: [unclosed\n")
	if _, err := LoadFromFile(bad); err == nil {
		t.Error("LoadFromFile should fail for malformed YAML")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"negative spotlight", func(c *Config) { c.Style.SpotlightRadius = -1 }},
		{"opacity above one", func(c *Config) { c.Style.DimOpacity = 1.5 }},
		{"zero crosshair thickness", func(c *Config) { c.Style.CrosshairThickness = 0 }},
		{"zero ring radius", func(c *Config) { c.Style.InnerRing.Radius = 0 }},
		{"bad color", func(c *Config) { c.Style.LabelBackground = "#GG0000" }},
		{"empty color", func(c *Config) { c.Style.CoordColor = "" }},
		{"unknown font", func(c *Config) { c.Style.Font = "comic" }},
		{"zero label scale", func(c *Config) { c.Style.LabelScale = 0 }},
		{"jpeg quality zero", func(c *Config) { c.Output.JPEGQuality = 0 }},
		{"jpeg quality too high", func(c *Config) { c.Output.JPEGQuality = 101 }},
		{"webp quality zero", func(c *Config) { c.Output.WebPQuality = 0 }},
		{"unknown log level", func(c *Config) { c.LogLevel = "trace" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate should fail")
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("error should wrap ErrInvalidConfig: %v", err)
			}
		})
	}
}

func TestLoad_NoFile(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv(EnvConfigPath, "")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv(EnvConfigPath, "")
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvFont, "basic")
	t.Setenv(EnvJPEGQuality, "70")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !cfg.Debug() {
		t.Error("DRAW_CLICK_LOG_LEVEL=debug should enable debug")
	}
	if cfg.Style.Font != imaging.FontBasic {
		t.Errorf("Font: got %q, want basic", cfg.Style.Font)
	}
	if cfg.Output.JPEGQuality != 70 {
		t.Errorf("JPEGQuality: got %d, want 70", cfg.Output.JPEGQuality)
	}
}

func TestLoad_BadEnvQuality(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv(EnvConfigPath, "")
	t.Setenv(EnvJPEGQuality, "high")

	if _, err := Load(""); err == nil {
		t.Error("Load should fail for a non-numeric quality")
	}
}

func TestLoad_ConfigPathFromEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := writeFile(t, dir, "cfg.yaml", "style:\n  dim_opacity: 0.5\n")
	t.Setenv(EnvConfigPath, path)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Style.DimOpacity != 0.5 {
		t.Errorf("DimOpacity: got %g, want 0.5", cfg.Style.DimOpacity)
	}
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv(EnvConfigPath, "")
	writeFile(t, dir, ".env", EnvJPEGQuality+"=55\n")
	// godotenv sets the variable process-wide; restore it after the test.
	t.Setenv(EnvJPEGQuality, "")
	os.Unsetenv(EnvJPEGQuality)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Output.JPEGQuality != 55 {
		t.Errorf("JPEGQuality: got %d, want 55 from .env", cfg.Output.JPEGQuality)
	}
}

func TestSaveOptions(t *testing.T) {
	cfg := Default()
	cfg.Output = OutputConfig{JPEGQuality: 77, WebPQuality: 66, WebPLossless: true}

	want := imaging.SaveOptions{JPEGQuality: 77, WebPQuality: 66, WebPLossless: true}
	if diff := cmp.Diff(want, cfg.SaveOptions()); diff != "" {
		t.Errorf("SaveOptions mismatch (-want +got):\n%s", diff)
	}
}
