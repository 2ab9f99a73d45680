// Package config holds the storeprobe configuration: target storefront
// addresses, browser settings, artifact and report paths, logging.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"storeprobe/internal/browser"

	"gopkg.in/yaml.v3"
)

// Config holds all storeprobe configuration.
type Config struct {
	Target    TargetConfig    `yaml:"target"`
	Browser   browser.Config  `yaml:"browser"`
	Artifacts ArtifactsConfig `yaml:"artifacts"`
	Report    ReportConfig    `yaml:"report"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// TargetConfig addresses the storefront under test. The application is
// reached purely by fixed URLs; there is no API contract beyond "renders the
// expected DOM shapes".
type TargetConfig struct {
	BaseURL      string `yaml:"base_url"`
	RegisterPath string `yaml:"register_path"`
	LoginPath    string `yaml:"login_path"`
	AccountPath  string `yaml:"account_path"`
	CartPath     string `yaml:"cart_path"`
}

// URL joins a path onto the base URL.
func (t TargetConfig) URL(path string) string {
	return strings.TrimRight(t.BaseURL, "/") + path
}

// RegisterURL returns the registration page URL.
func (t TargetConfig) RegisterURL() string { return t.URL(t.RegisterPath) }

// LoginURL returns the login page URL.
func (t TargetConfig) LoginURL() string { return t.URL(t.LoginPath) }

// AccountURL returns the account page URL.
func (t TargetConfig) AccountURL() string { return t.URL(t.AccountPath) }

// CartURL returns the cart page URL.
func (t TargetConfig) CartURL() string { return t.URL(t.CartPath) }

// ArtifactsConfig configures screenshot capture.
type ArtifactsConfig struct {
	Dir string `yaml:"dir"`
}

// ReportConfig configures the HTML report generator.
type ReportConfig struct {
	OutputPath string `yaml:"output_path"`
	DebounceMs int    `yaml:"debounce_ms"` // watch-mode regeneration debounce
}

// Debounce returns the watch-mode debounce interval.
func (r ReportConfig) Debounce() time.Duration {
	if r.DebounceMs == 0 {
		return 500 * time.Millisecond
	}
	return time.Duration(r.DebounceMs) * time.Millisecond
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, text
	File   string `yaml:"file"`   // empty = stderr
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Target: TargetConfig{
			BaseURL:      "http://localhost:3000",
			RegisterPath: "/register",
			LoginPath:    "/login",
			AccountPath:  "/account",
			CartPath:     "/cart",
		},
		Browser: browser.DefaultConfig(),
		Artifacts: ArtifactsConfig{
			Dir: "screenshots",
		},
		Report: ReportConfig{
			OutputPath: "test_report.html",
			DebounceMs: 500,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load loads configuration from a YAML file. A missing file is not an error;
// defaults are returned. Environment variables override file values.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if url := os.Getenv("STOREPROBE_BASE_URL"); url != "" {
		c.Target.BaseURL = url
	}
	if v := os.Getenv("STOREPROBE_HEADLESS"); v != "" {
		c.Browser.Headless = v != "0" && !strings.EqualFold(v, "false")
	}
	if dir := os.Getenv("STOREPROBE_SHOTS_DIR"); dir != "" {
		c.Artifacts.Dir = dir
	}
	if path := os.Getenv("STOREPROBE_REPORT"); path != "" {
		c.Report.OutputPath = path
	}
}
