package config

import (
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Target.BaseURL != "http://localhost:3000" {
		t.Errorf("expected BaseURL=http://localhost:3000, got %s", cfg.Target.BaseURL)
	}
	if !cfg.Browser.Headless {
		t.Error("expected Headless=true by default")
	}
	if cfg.Browser.GetViewportWidth() != 1920 || cfg.Browser.GetViewportHeight() != 1080 {
		t.Errorf("expected 1920x1080 viewport, got %dx%d",
			cfg.Browser.GetViewportWidth(), cfg.Browser.GetViewportHeight())
	}
	if cfg.Artifacts.Dir != "screenshots" {
		t.Errorf("expected Artifacts.Dir=screenshots, got %s", cfg.Artifacts.Dir)
	}
}

func TestConfig_URLHelpers(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Target.BaseURL = "http://localhost:3000/"

	if got := cfg.Target.LoginURL(); got != "http://localhost:3000/login" {
		t.Errorf("LoginURL=%q", got)
	}
	if got := cfg.Target.RegisterURL(); got != "http://localhost:3000/register" {
		t.Errorf("RegisterURL=%q", got)
	}
	if got := cfg.Target.URL("/"); got != "http://localhost:3000/" {
		t.Errorf("URL(/)=%q", got)
	}
}

func TestConfig_SaveLoad(t *testing.T) {
	t.Setenv("STOREPROBE_BASE_URL", "")
	t.Setenv("STOREPROBE_HEADLESS", "")
	t.Setenv("STOREPROBE_SHOTS_DIR", "")

	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.yaml")

	cfg := DefaultConfig()
	cfg.Target.BaseURL = "http://staging.example.com"
	cfg.Browser.SlowMoMs = 500

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.Target.BaseURL != "http://staging.example.com" {
		t.Errorf("expected BaseURL=http://staging.example.com, got %s", loaded.Target.BaseURL)
	}
	if loaded.Browser.SlowMoMs != 500 {
		t.Errorf("expected SlowMoMs=500, got %d", loaded.Browser.SlowMoMs)
	}
}

func TestConfig_LoadMissingFileReturnsDefaults(t *testing.T) {
	t.Setenv("STOREPROBE_BASE_URL", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Target.BaseURL != "http://localhost:3000" {
		t.Errorf("expected defaults for missing file, got BaseURL=%s", cfg.Target.BaseURL)
	}
}

func TestConfig_EnvOverrides(t *testing.T) {
	t.Setenv("STOREPROBE_BASE_URL", "http://shop:4000")
	t.Setenv("STOREPROBE_HEADLESS", "false")
	t.Setenv("STOREPROBE_SHOTS_DIR", "/tmp/shots")

	cfg := DefaultConfig()
	cfg.applyEnvOverrides()

	if cfg.Target.BaseURL != "http://shop:4000" {
		t.Errorf("expected BaseURL=http://shop:4000, got %s", cfg.Target.BaseURL)
	}
	if cfg.Browser.Headless {
		t.Error("expected Headless=false from env")
	}
	if cfg.Artifacts.Dir != "/tmp/shots" {
		t.Errorf("expected Artifacts.Dir=/tmp/shots, got %s", cfg.Artifacts.Dir)
	}
}

func TestConfig_Durations(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Browser.NavigationTimeout() == 0 {
		t.Error("NavigationTimeout should return non-zero duration")
	}
	if cfg.Browser.ElementTimeout() == 0 {
		t.Error("ElementTimeout should return non-zero duration")
	}
	if cfg.Report.Debounce() == 0 {
		t.Error("Debounce should return non-zero duration")
	}
}
