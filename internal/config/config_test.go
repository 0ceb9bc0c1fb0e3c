package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Test graphics defaults
	if cfg.Graphics.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 720 {
		t.Errorf("expected height 720, got %d", cfg.Graphics.Height)
	}
	if cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}
	if !cfg.Graphics.VSync {
		t.Error("expected vsync to be true by default")
	}

	// Test renderer defaults
	if cfg.Renderer.ClearColor != [4]float32{0.1, 0.1, 0.15, 1.0} {
		t.Errorf("unexpected clear color %v", cfg.Renderer.ClearColor)
	}
	if cfg.Renderer.Ambient != [3]float32{0.2, 0.2, 0.22} {
		t.Errorf("unexpected ambient %v", cfg.Renderer.Ambient)
	}
	if !cfg.Renderer.Emission {
		t.Error("expected emission to be enabled by default")
	}
	if cfg.Renderer.LightCutoff != 1.0/256.0 {
		t.Errorf("expected light cutoff 1/256, got %f", cfg.Renderer.LightCutoff)
	}
	if cfg.Renderer.MaxQuads != 4096 {
		t.Errorf("expected max quads 4096, got %d", cfg.Renderer.MaxQuads)
	}

	// Test debug defaults
	if cfg.Debug.Channel != "" {
		t.Errorf("expected empty channel, got %q", cfg.Debug.Channel)
	}
	if cfg.Debug.ShowFPS {
		t.Error("expected show_fps to be false by default")
	}
	if cfg.Debug.CaptureDir != "screenshots" {
		t.Errorf("expected capture dir 'screenshots', got %s", cfg.Debug.CaptureDir)
	}

	// Test logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFile(t *testing.T) {
	// Create temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1920
  height: 1080
  fullscreen: true
  vsync: false
  fps_limit: 144

renderer:
  clear_color: [0.0, 0.0, 0.0, 1.0]
  ambient: [0.1, 0.1, 0.2]
  emission: false
  light_cutoff: 0.01
  max_quads: 512

debug:
  channel: "normal"
  show_fps: true
  show_stats: true
  capture_dir: "captures"

logging:
  level: "debug"
  log_file: "engine.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Load config
	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Verify values were loaded
	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 1080 {
		t.Errorf("expected height 1080, got %d", cfg.Graphics.Height)
	}
	if !cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Graphics.VSync {
		t.Error("expected vsync to be false")
	}
	if cfg.Graphics.FPSLimit != 144 {
		t.Errorf("expected fps limit 144, got %d", cfg.Graphics.FPSLimit)
	}

	if cfg.Renderer.ClearColor != [4]float32{0, 0, 0, 1} {
		t.Errorf("unexpected clear color %v", cfg.Renderer.ClearColor)
	}
	if cfg.Renderer.Ambient != [3]float32{0.1, 0.1, 0.2} {
		t.Errorf("unexpected ambient %v", cfg.Renderer.Ambient)
	}
	if cfg.Renderer.Emission {
		t.Error("expected emission to be disabled")
	}
	if cfg.Renderer.MaxQuads != 512 {
		t.Errorf("expected max quads 512, got %d", cfg.Renderer.MaxQuads)
	}

	if cfg.Debug.Channel != "normal" {
		t.Errorf("expected channel 'normal', got %q", cfg.Debug.Channel)
	}
	if !cfg.Debug.ShowFPS {
		t.Error("expected show_fps to be true")
	}
	if cfg.Debug.CaptureDir != "captures" {
		t.Errorf("expected capture dir 'captures', got %s", cfg.Debug.CaptureDir)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "engine.log" {
		t.Errorf("expected log file 'engine.log', got %s", cfg.Logging.LogFile)
	}
}

// A partial file must override only the keys it names and keep the
// defaults for everything else.
func TestLoadFromFilePartial(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
renderer:
  ambient: [0.4, 0.4, 0.4]
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Renderer.Ambient != [3]float32{0.4, 0.4, 0.4} {
		t.Errorf("unexpected ambient %v", cfg.Renderer.Ambient)
	}
	if cfg.Graphics.Width != 1280 {
		t.Errorf("expected default width 1280, got %d", cfg.Graphics.Width)
	}
	if cfg.Renderer.MaxQuads != 4096 {
		t.Errorf("expected default max quads 4096, got %d", cfg.Renderer.MaxQuads)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	// Create temporary config file with invalid YAML
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
graphics:
  width: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Try to load - should error
	cfg := Default()
	err := loadFromFile(cfg, configPath)
	if err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	err := loadFromFile(cfg, "/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	// Just verify it returns a non-empty path
	// Actual path depends on OS
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}

	// Verify path is absolute
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestSaveTo(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "nested", "config.yaml")

	cfg := Default()
	cfg.Renderer.MaxQuads = 999
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("failed to reload config: %v", err)
	}
	if loaded.Renderer.MaxQuads != 999 {
		t.Errorf("expected max quads 999 after round trip, got %d", loaded.Renderer.MaxQuads)
	}
}
