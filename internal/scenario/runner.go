package scenario

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"storeprobe/internal/artifact"
	"storeprobe/internal/browser"
	"storeprobe/internal/config"
	"storeprobe/internal/probe"
)

// Runner executes scenarios against one browser instance. Scenarios run
// sequentially, each on a fresh page.
type Runner struct {
	cfg *config.Config
	log *zap.Logger
}

// NewRunner builds a runner for the given configuration.
func NewRunner(cfg *config.Config, log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{cfg: cfg, log: log}
}

// Run executes the named scenarios in order. A failing scenario does not
// stop the ones after it; all failures are joined into the returned error.
func (r *Runner) Run(ctx context.Context, names ...string) error {
	scenarios := make([]Scenario, 0, len(names))
	for _, name := range names {
		s, ok := Lookup(name)
		if !ok {
			return fmt.Errorf("unknown scenario %q", name)
		}
		scenarios = append(scenarios, s)
	}

	shots, err := artifact.NewStore(r.cfg.Artifacts.Dir, r.log)
	if err != nil {
		return err
	}

	mgr := browser.NewManager(r.cfg.Browser)
	if err := mgr.Start(ctx); err != nil {
		return err
	}
	defer mgr.Shutdown(context.Background())

	var errs []error
	for _, s := range scenarios {
		if err := r.runOne(ctx, mgr, shots, s); err != nil {
			errs = append(errs, fmt.Errorf("scenario %s: %w", s.Name, err))
		}
	}
	return errors.Join(errs...)
}

// runOne drives a single scenario on its own page. On failure a diagnostic
// screenshot is taken before the error propagates, matching the
// catch-screenshot-reraise shape of the scripts.
func (r *Runner) runOne(ctx context.Context, mgr *browser.Manager, shots *artifact.Store, s Scenario) (err error) {
	page, err := mgr.NewPage(ctx)
	if err != nil {
		return err
	}
	defer page.Close()

	rec := probe.NewRecorder(s.Name, r.log)
	env := &Env{Cfg: r.cfg, Page: page, Rec: rec, Shots: shots, Log: r.log}

	defer rec.Summary()
	defer func() {
		if err != nil {
			rec.Fail("Erreur durant le test: %v", err)
			env.Capture(ctx, rec.CurrentStep()+1, "error")
		}
	}()

	return s.Run(ctx, env)
}
