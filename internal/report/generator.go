// Package report renders a static HTML gallery of scenario screenshots.
// Screenshots are grouped by their step prefix and shown chronologically,
// with a lightbox for full-size viewing. The page is self-contained except
// for the image files it references relatively.
package report

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"storeprobe/internal/artifact"
)

//go:embed template.html
var templateHTML string

var reportTmpl = template.Must(template.New("report").Parse(templateHTML))

// Result summarizes one rendered report.
type Result struct {
	Path  string
	Steps int
	Shots int
}

// Generator turns a screenshots directory into a single HTML file.
type Generator struct {
	shotsDir string
	outPath  string
	log      *zap.Logger
	now      func() time.Time
}

// NewGenerator builds a generator reading from shotsDir and writing outPath.
func NewGenerator(shotsDir, outPath string, log *zap.Logger) *Generator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Generator{shotsDir: shotsDir, outPath: outPath, log: log, now: time.Now}
}

// WithClock substitutes the timestamp source, used by tests.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

type stepView struct {
	Number int
	Title  string
	Shots  []shotView
}

type shotView struct {
	Src  string
	Name string
}

type pageView struct {
	GeneratedAt string
	Year        int
	StepCount   int
	ShotCount   int
	Steps       []stepView
}

// Generate scans the screenshots directory and writes the report. When the
// directory holds no well-formed screenshots it writes nothing and returns
// a nil Result.
func (g *Generator) Generate() (*Result, error) {
	shots, err := artifact.List(g.shotsDir)
	if err != nil {
		return nil, err
	}
	if len(shots) == 0 {
		g.log.Warn("no screenshots found", zap.String("dir", g.shotsDir))
		return nil, nil
	}

	view, err := g.buildView(shots)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := reportTmpl.Execute(&buf, view); err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}

	if dir := filepath.Dir(g.outPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create report dir: %w", err)
		}
	}
	if err := os.WriteFile(g.outPath, buf.Bytes(), 0o644); err != nil {
		return nil, fmt.Errorf("write report: %w", err)
	}

	g.log.Info("report generated",
		zap.String("path", g.outPath),
		zap.Int("steps", len(view.Steps)),
		zap.Int("shots", len(shots)))
	return &Result{Path: g.outPath, Steps: len(view.Steps), Shots: len(shots)}, nil
}

// buildView groups shots by step number. artifact.List already sorts by file
// name, so within a step the capture order is preserved and steps come out
// ascending.
func (g *Generator) buildView(shots []artifact.Shot) (*pageView, error) {
	reportDir, err := filepath.Abs(filepath.Dir(g.outPath))
	if err != nil {
		return nil, err
	}

	view := &pageView{
		GeneratedAt: g.now().Format("02/01/2006 à 15:04:05"),
		Year:        g.now().Year(),
		ShotCount:   len(shots),
	}

	var cur *stepView
	for _, shot := range shots {
		if cur == nil || cur.Number != shot.Step {
			view.Steps = append(view.Steps, stepView{
				Number: shot.Step,
				Title:  StepLabel(shot.Step),
			})
			cur = &view.Steps[len(view.Steps)-1]
		}

		src := shot.Name
		if abs, err := filepath.Abs(shot.Path); err == nil {
			if rel, err := filepath.Rel(reportDir, abs); err == nil {
				src = filepath.ToSlash(rel)
			}
		}
		cur.Shots = append(cur.Shots, shotView{Src: src, Name: shot.Name})
	}
	view.StepCount = len(view.Steps)
	return view, nil
}
