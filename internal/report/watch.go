package report

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watch regenerates the report whenever the screenshots directory changes.
// Events are debounced so a burst of captures produces one render. Blocks
// until ctx is cancelled.
func (g *Generator) Watch(ctx context.Context, debounce time.Duration) error {
	if err := os.MkdirAll(g.shotsDir, 0o755); err != nil {
		return fmt.Errorf("create screenshots dir: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(g.shotsDir); err != nil {
		return fmt.Errorf("watch %s: %w", g.shotsDir, err)
	}

	if _, err := g.Generate(); err != nil {
		g.log.Error("initial render failed", zap.Error(err))
	}

	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}

	g.log.Info("watching for screenshots", zap.String("dir", g.shotsDir))
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			timer.Reset(debounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			g.log.Warn("watch error", zap.Error(err))
		case <-timer.C:
			if _, err := g.Generate(); err != nil {
				g.log.Error("render failed", zap.Error(err))
			}
		}
	}
}
