// Package browser drives a single Chrome instance for scripted storefront
// probes. It wraps go-rod with the small surface the scenarios need: navigate,
// locate, interact, wait, screenshot. One Manager owns the browser process;
// pages are acquired per scenario and released in reverse order on every exit
// path.
package browser

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// Config holds browser configuration.
type Config struct {
	Bin                 string `yaml:"bin" json:"bin"` // optional Chrome binary path
	Headless            bool   `yaml:"headless" json:"headless"`
	ViewportWidth       int    `yaml:"viewport_width" json:"viewport_width"`
	ViewportHeight      int    `yaml:"viewport_height" json:"viewport_height"`
	NavigationTimeoutMs int    `yaml:"navigation_timeout_ms" json:"navigation_timeout_ms"`
	ElementTimeoutMs    int    `yaml:"element_timeout_ms" json:"element_timeout_ms"`
	SlowMoMs            int    `yaml:"slow_mo_ms" json:"slow_mo_ms"` // pause after each interaction
	TypeDelayMs         int    `yaml:"type_delay_ms" json:"type_delay_ms"`
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Headless:            true,
		ViewportWidth:       1920,
		ViewportHeight:      1080,
		NavigationTimeoutMs: 10000,
		ElementTimeoutMs:    5000,
		TypeDelayMs:         100,
	}
}

// GetViewportWidth returns viewport width.
func (c Config) GetViewportWidth() int {
	if c.ViewportWidth == 0 {
		return 1920
	}
	return c.ViewportWidth
}

// GetViewportHeight returns viewport height.
func (c Config) GetViewportHeight() int {
	if c.ViewportHeight == 0 {
		return 1080
	}
	return c.ViewportHeight
}

// NavigationTimeout returns the navigation timeout.
func (c Config) NavigationTimeout() time.Duration {
	if c.NavigationTimeoutMs == 0 {
		return 10 * time.Second
	}
	return time.Duration(c.NavigationTimeoutMs) * time.Millisecond
}

// ElementTimeout returns the default element wait timeout.
func (c Config) ElementTimeout() time.Duration {
	if c.ElementTimeoutMs == 0 {
		return 5 * time.Second
	}
	return time.Duration(c.ElementTimeoutMs) * time.Millisecond
}

// SlowMo returns the pause inserted after each interaction.
func (c Config) SlowMo() time.Duration {
	return time.Duration(c.SlowMoMs) * time.Millisecond
}

// TypeDelay returns the per-keystroke delay for slow typing.
func (c Config) TypeDelay() time.Duration {
	if c.TypeDelayMs == 0 {
		return 100 * time.Millisecond
	}
	return time.Duration(c.TypeDelayMs) * time.Millisecond
}

// Manager owns the Chrome process and hands out pages.
type Manager struct {
	cfg Config

	mu       sync.Mutex
	launcher *launcher.Launcher
	browser  *rod.Browser
}

// NewManager creates a manager; Start must be called before NewPage.
func NewManager(cfg Config) *Manager {
	return &Manager{cfg: cfg}
}

// Start launches Chrome and connects to it.
func (m *Manager) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.browser != nil {
		if _, err := m.browser.Version(); err == nil {
			return nil
		}
		_ = m.browser.Close()
		m.browser = nil
	}

	l := launcher.New().Headless(m.cfg.Headless)
	if m.cfg.Bin != "" {
		l = l.Bin(m.cfg.Bin)
	}
	controlURL, err := l.Launch()
	if err != nil {
		return fmt.Errorf("launch chrome: %w", err)
	}

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		l.Cleanup()
		return fmt.Errorf("connect to chrome: %w", err)
	}

	m.launcher = l
	m.browser = browser
	return nil
}

// NewPage opens a fresh page with the configured viewport applied.
func (m *Manager) NewPage(ctx context.Context) (*Page, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.browser == nil {
		return nil, errors.New("browser not started")
	}

	page, err := m.browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		return nil, fmt.Errorf("create page: %w", err)
	}

	if err := (proto.EmulationSetDeviceMetricsOverride{
		Width:             m.cfg.GetViewportWidth(),
		Height:            m.cfg.GetViewportHeight(),
		DeviceScaleFactor: 1.0,
		Mobile:            false,
	}).Call(page); err != nil {
		_ = page.Close()
		return nil, fmt.Errorf("set viewport: %w", err)
	}

	return &Page{cfg: m.cfg, pg: page.Context(ctx)}, nil
}

// Shutdown closes the browser connection and kills the Chrome process.
// Safe to call multiple times; release order is the reverse of acquisition.
func (m *Manager) Shutdown(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var err error
	if m.browser != nil {
		err = m.browser.Close()
		m.browser = nil
	}
	if m.launcher != nil {
		m.launcher.Cleanup()
		m.launcher = nil
	}
	return err
}
