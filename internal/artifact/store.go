// Package artifact persists screenshot files for scenario steps. Files are
// named {step:02d}_{label}_{timestamp}.png, written once by the scenario that
// captured them and never cleaned up automatically.
package artifact

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// TimestampLayout is the wall-clock portion of an artifact name.
const TimestampLayout = "20060102_150405"

// Shot describes one captured screenshot file.
type Shot struct {
	Path  string
	Name  string
	Step  int
	Label string
	Taken time.Time
}

// Screenshotter is the minimal capture surface the store needs.
// *browser.Page implements it.
type Screenshotter interface {
	ScreenshotPNG(ctx context.Context, fullPage bool) ([]byte, error)
}

// Store writes screenshot artifacts into one directory.
type Store struct {
	dir   string
	log   *zap.Logger
	clock func() time.Time
}

// NewStore creates the directory if needed and returns a store over it.
func NewStore(dir string, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create screenshots dir: %w", err)
	}
	return &Store{dir: dir, log: log, clock: time.Now}, nil
}

// WithClock substitutes the timestamp source, used by tests.
func (s *Store) WithClock(clock func() time.Time) *Store {
	s.clock = clock
	return s
}

// Dir returns the artifact directory.
func (s *Store) Dir() string { return s.dir }

// Capture takes a full-page screenshot and writes it under the step-indexed
// name. Returns the written path.
func (s *Store) Capture(ctx context.Context, src Screenshotter, step int, label string) (string, error) {
	data, err := src.ScreenshotPNG(ctx, true)
	if err != nil {
		return "", fmt.Errorf("screenshot: %w", err)
	}

	path := filepath.Join(s.dir, FileName(step, label, s.clock()))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write screenshot: %w", err)
	}
	s.log.Debug("screenshot captured",
		zap.Int("step", step), zap.String("label", label), zap.String("path", path))
	return path, nil
}

// FileName builds the canonical artifact name for a step.
func FileName(step int, label string, t time.Time) string {
	return fmt.Sprintf("%02d_%s_%s.png", step, sanitizeLabel(label), t.Format(TimestampLayout))
}

var labelCleaner = regexp.MustCompile(`[^a-z0-9_-]+`)

func sanitizeLabel(label string) string {
	label = strings.ToLower(strings.TrimSpace(label))
	label = strings.ReplaceAll(label, " ", "_")
	return labelCleaner.ReplaceAllString(label, "")
}

// ParseName splits an artifact file name back into its parts. The label may
// itself contain underscores; the trailing two underscore-separated fields
// are always the timestamp.
func ParseName(name string) (Shot, bool) {
	base := strings.TrimSuffix(name, ".png")
	if base == name {
		return Shot{}, false
	}

	parts := strings.Split(base, "_")
	if len(parts) < 4 {
		return Shot{}, false
	}

	step, err := strconv.Atoi(parts[0])
	if err != nil || step < 0 {
		return Shot{}, false
	}

	stamp := parts[len(parts)-2] + "_" + parts[len(parts)-1]
	taken, err := time.Parse(TimestampLayout, stamp)
	if err != nil {
		return Shot{}, false
	}

	return Shot{
		Name:  name,
		Step:  step,
		Label: strings.Join(parts[1:len(parts)-2], "_"),
		Taken: taken,
	}, true
}

// List returns all well-formed artifacts in dir, sorted by file name so
// step order and capture order are preserved. Files that do not follow the
// naming scheme are skipped.
func List(dir string) ([]Shot, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read screenshots dir: %w", err)
	}

	var shots []Shot
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		shot, ok := ParseName(entry.Name())
		if !ok {
			continue
		}
		shot.Path = filepath.Join(dir, entry.Name())
		shots = append(shots, shot)
	}

	sort.Slice(shots, func(i, j int) bool { return shots[i].Name < shots[j].Name })
	return shots, nil
}
