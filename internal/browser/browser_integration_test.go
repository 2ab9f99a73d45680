//go:build integration
package browser_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"storeprobe/internal/browser"
)

func TestManager_PageLifecycle_Integration(t *testing.T) {
	// 1. Setup local server
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, `<html><head><title>Probe Target</title></head><body>
<header><input type="search" name="search" placeholder="Search"></header>
<main><h1>Hello World</h1></main>
</body></html>`)
	}))
	defer ts.Close()

	// 2. Setup Manager
	cfg := browser.DefaultConfig()
	cfg.Headless = true
	cfg.TypeDelayMs = 1

	mgr := browser.NewManager(cfg)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Ensure shutdown to clean up browser process
	defer func() {
		if err := mgr.Shutdown(context.Background()); err != nil {
			t.Logf("Shutdown error: %v", err)
		}
	}()

	err := mgr.Start(ctx)
	require.NoError(t, err, "Failed to start browser")

	// 3. Navigate and inspect
	page, err := mgr.NewPage(ctx)
	require.NoError(t, err, "Failed to create page")
	defer page.Close()

	err = page.Navigate(ctx, ts.URL, browser.WaitDOMContentLoaded)
	require.NoError(t, err, "Failed to navigate")

	title, err := page.Title(ctx)
	require.NoError(t, err)
	require.Equal(t, "Probe Target", title)

	n, err := page.Count(ctx, "header")
	require.NoError(t, err)
	require.Equal(t, 1, n)

	// 4. Fallback resolution picks the search input
	el, err := page.First(ctx, browser.FallbackList{
		`input[type="search"]`,
		`input[placeholder*="Search"]`,
	})
	require.NoError(t, err)

	err = el.Type(ctx, "Sony")
	require.NoError(t, err)
	value, err := el.InputValue(ctx)
	require.NoError(t, err)
	require.Equal(t, "Sony", value)

	err = el.Clear(ctx)
	require.NoError(t, err)

	// 5. Screenshot produces PNG bytes
	data, err := page.ScreenshotPNG(ctx, true)
	require.NoError(t, err)
	require.NotEmpty(t, data)
	require.Equal(t, byte(0x89), data[0], "not a PNG")
}
