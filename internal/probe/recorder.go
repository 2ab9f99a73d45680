// Package probe records pass/fail/warning outcomes for scenario steps and
// narrates them on stdout. Outcomes are ephemeral: they are printed and
// logged, never persisted.
package probe

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"storeprobe/internal/browser"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Outcome classifies a single check.
type Outcome int

const (
	OutcomePass Outcome = iota
	OutcomeWarn
	OutcomeFail
)

// String returns the outcome label.
func (o Outcome) String() string {
	switch o {
	case OutcomePass:
		return "pass"
	case OutcomeWarn:
		return "warn"
	default:
		return "fail"
	}
}

// Semantic colors, same palette in light and dark terminals.
var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8BC34A"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFC107"))
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#e53935"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#2196F3"))
	stepStyle    = lipgloss.NewStyle().Bold(true)
	bannerStyle  = lipgloss.NewStyle().Bold(true)
)

// Recorder narrates one scenario run and counts its outcomes.
type Recorder struct {
	runID    string
	scenario string
	out      io.Writer
	log      *zap.Logger

	step     int
	passed   int
	failed   int
	warnings int
}

// NewRecorder creates a recorder for one scenario run.
func NewRecorder(scenario string, log *zap.Logger) *Recorder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Recorder{
		runID:    uuid.NewString(),
		scenario: scenario,
		out:      os.Stdout,
		log:      log.With(zap.String("scenario", scenario)),
	}
}

// WithOutput redirects narration, used by tests.
func (r *Recorder) WithOutput(w io.Writer) *Recorder {
	r.out = w
	return r
}

// RunID returns the unique ID of this run.
func (r *Recorder) RunID() string { return r.runID }

// Banner prints a framed title, the way the scripts announce themselves.
func (r *Recorder) Banner(lines ...string) {
	rule := strings.Repeat("=", 70)
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, bannerStyle.Render(rule))
	for _, l := range lines {
		fmt.Fprintln(r.out, bannerStyle.Render(l))
	}
	fmt.Fprintln(r.out, bannerStyle.Render(rule))
	r.log.Info("scenario started", zap.String("run_id", r.runID))
}

// Step advances the step counter and narrates the step title. Returns the
// new step number, which callers pass to artifact capture.
func (r *Recorder) Step(format string, args ...interface{}) int {
	r.step++
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(r.out, "\n%s\n", stepStyle.Render(fmt.Sprintf("📍 Étape %d: %s", r.step, msg)))
	r.log.Info("step", zap.Int("step", r.step), zap.String("title", msg))
	return r.step
}

// CurrentStep returns the current step number.
func (r *Recorder) CurrentStep() int { return r.step }

// Pass records a successful check.
func (r *Recorder) Pass(format string, args ...interface{}) {
	r.passed++
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(r.out, "   %s\n", successStyle.Render("✅ "+msg))
	r.log.Info("pass", zap.Int("step", r.step), zap.String("check", msg))
}

// Warn records a soft failure. Warnings never abort a scenario.
func (r *Recorder) Warn(format string, args ...interface{}) {
	r.warnings++
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(r.out, "   %s\n", warningStyle.Render("⚠️  "+msg))
	r.log.Warn("warn", zap.Int("step", r.step), zap.String("check", msg))
}

// Fail records a hard failure.
func (r *Recorder) Fail(format string, args ...interface{}) {
	r.failed++
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(r.out, "   %s\n", failStyle.Render("❌ "+msg))
	r.log.Error("fail", zap.Int("step", r.step), zap.String("check", msg))
}

// Info narrates without affecting any counter.
func (r *Recorder) Info(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(r.out, "   %s\n", infoStyle.Render("ℹ️  "+msg))
	r.log.Info("info", zap.Int("step", r.step), zap.String("note", msg))
}

// Shot narrates a captured screenshot path.
func (r *Recorder) Shot(path string) {
	fmt.Fprintf(r.out, "   📸 Screenshot saved: %s\n", path)
	r.log.Info("screenshot", zap.Int("step", r.step), zap.String("path", path))
}

// Summary prints the run totals.
func (r *Recorder) Summary() {
	rule := strings.Repeat("=", 70)
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, bannerStyle.Render(rule))
	fmt.Fprintln(r.out, bannerStyle.Render("📊 RÉSUMÉ"))
	fmt.Fprintln(r.out, bannerStyle.Render(rule))
	fmt.Fprintf(r.out, "✅ Réussites: %d\n", r.passed)
	fmt.Fprintf(r.out, "⚠️  Avertissements: %d\n", r.warnings)
	fmt.Fprintf(r.out, "❌ Échecs: %d\n", r.failed)
	r.log.Info("scenario finished",
		zap.String("run_id", r.runID),
		zap.Int("passed", r.passed),
		zap.Int("warnings", r.warnings),
		zap.Int("failed", r.failed))
}

// Passed returns the pass count.
func (r *Recorder) Passed() int { return r.passed }

// Warnings returns the warning count.
func (r *Recorder) Warnings() int { return r.warnings }

// Failed returns the fail count.
func (r *Recorder) Failed() int { return r.failed }

// VisibleWithin checks that an element matching the fallback list becomes
// visible within timeout. Absence is downgraded to a warning; only the
// caller decides when absence must abort.
func (r *Recorder) VisibleWithin(ctx context.Context, pg *browser.Page, list browser.FallbackList, timeout time.Duration, what string) Outcome {
	el, err := pg.WaitVisible(ctx, list, timeout)
	if err != nil || el == nil {
		r.Warn("%s non visible (%v)", what, err)
		return OutcomeWarn
	}
	r.Pass("%s visible", what)
	return OutcomePass
}
