//go:build integration
package scenario_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"storeprobe/internal/artifact"
	"storeprobe/internal/config"
	"storeprobe/internal/scenario"
)

// stubStorefront serves the minimal DOM shapes the scenarios probe for:
// a header search input, product links, register and login forms.
func stubStorefront() *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><head><title>Mientior</title></head><body>
<header><input type="search" name="search" placeholder="Search products"></header>
<main>
  <a href="/products/1">Laptop Pro</a>
  <a href="/products/2">Sony Headphones</a>
</main>
</body></html>`)
	})
	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `<html><body><header><input type="search" name="search"></header>
<main><p>No results for %q</p></main></body></html>`, r.URL.Query().Get("q"))
	})
	mux.HandleFunc("/products/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><main><h1>Product</h1></main></body></html>`)
	})
	mux.HandleFunc("/cart", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><main><h1>Panier</h1></main></body></html>`)
	})
	form := func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><main><form action="/account">
<input type="text" name="name">
<input type="email" name="email">
<input type="password" name="password">
<button type="submit">Valider</button>
</form></main></body></html>`)
	}
	mux.HandleFunc("/register", form)
	mux.HandleFunc("/login", form)
	mux.HandleFunc("/account", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><main><h1>Mon compte</h1></main></body></html>`)
	})
	return httptest.NewServer(mux)
}

func testConfig(t *testing.T, baseURL string) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Target.BaseURL = baseURL
	cfg.Browser.Headless = true
	cfg.Browser.TypeDelayMs = 1
	cfg.Artifacts.Dir = filepath.Join(t.TempDir(), "shots")
	return cfg
}

func TestRunner_Homepage_Integration(t *testing.T) {
	ts := stubStorefront()
	defer ts.Close()

	cfg := testConfig(t, ts.URL)
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	runner := scenario.NewRunner(cfg, nil)
	err := runner.Run(ctx, "homepage")
	require.NoError(t, err, "homepage scenario failed")

	shots, err := artifact.List(cfg.Artifacts.Dir)
	require.NoError(t, err)
	require.NotEmpty(t, shots, "homepage scenario captured no screenshots")
	require.Equal(t, "homepage_loaded", shots[0].Label)
}

func TestRunner_Journey_Integration(t *testing.T) {
	ts := stubStorefront()
	defer ts.Close()

	cfg := testConfig(t, ts.URL)
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	runner := scenario.NewRunner(cfg, nil)
	err := runner.Run(ctx, "journey")
	require.NoError(t, err, "journey scenario failed")

	shots, err := artifact.List(cfg.Artifacts.Dir)
	require.NoError(t, err)
	// Homepage, search, product, cart, login and final shots at minimum.
	require.GreaterOrEqual(t, len(shots), 5)
}

func TestRunner_UnknownScenario(t *testing.T) {
	cfg := testConfig(t, "http://localhost:0")
	runner := scenario.NewRunner(cfg, nil)
	err := runner.Run(context.Background(), "nope")
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown scenario")
}
