// Package scenario holds the scripted storefront probes. Each scenario is a
// fixed linear sequence of navigation and interaction steps against one
// target page, narrated through a probe.Recorder and documented with
// screenshots. Scenarios tolerate missing elements: most checks downgrade to
// warnings, only navigation failures abort a run.
package scenario

import (
	"context"

	"go.uber.org/zap"

	"storeprobe/internal/artifact"
	"storeprobe/internal/browser"
	"storeprobe/internal/config"
	"storeprobe/internal/probe"
)

// Env bundles everything a scenario step needs.
type Env struct {
	Cfg   *config.Config
	Page  *browser.Page
	Rec   *probe.Recorder
	Shots *artifact.Store
	Log   *zap.Logger
}

// Capture screenshots the page under the step-indexed name and narrates the
// path. Capture failures are warnings; a lost screenshot never aborts a run.
func (e *Env) Capture(ctx context.Context, step int, label string) {
	path, err := e.Shots.Capture(ctx, e.Page, step, label)
	if err != nil {
		e.Rec.Warn("capture %s: %v", label, err)
		return
	}
	e.Rec.Shot(path)
}

// Scenario is one self-contained probe against the storefront.
type Scenario struct {
	Name        string
	Description string
	Run         func(ctx context.Context, env *Env) error
}

var registry = []Scenario{
	{
		Name:        "homepage",
		Description: "Load the homepage and check header, main content and title",
		Run:         runHomepage,
	},
	{
		Name:        "search",
		Description: "Exercise search with autocomplete, typo tolerance and no-results handling",
		Run:         runSearch,
	},
	{
		Name:        "auth",
		Description: "Register a fresh user, log in and verify the session",
		Run:         runAuth,
	},
	{
		Name:        "journey",
		Description: "Browse the storefront like a shopper: search, product, cart, login",
		Run:         runJourney,
	},
	{
		Name:        "debug-input",
		Description: "Probe the search input with every typing method and dump its state",
		Run:         runDebugInput,
	},
}

// Registry returns all scenarios in their canonical order.
func Registry() []Scenario {
	out := make([]Scenario, len(registry))
	copy(out, registry)
	return out
}

// Lookup finds a scenario by name.
func Lookup(name string) (Scenario, bool) {
	for _, s := range registry {
		if s.Name == name {
			return s, true
		}
	}
	return Scenario{}, false
}
