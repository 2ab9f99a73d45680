package browser

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

// fakeFinder maps selectors to match counts; unknown selectors error.
type fakeFinder struct {
	counts map[string]int
	tried  []string
}

func (f *fakeFinder) Count(ctx context.Context, selector string) (int, error) {
	f.tried = append(f.tried, selector)
	n, ok := f.counts[selector]
	if !ok {
		return 0, fmt.Errorf("bad selector %q", selector)
	}
	return n, nil
}

func TestFallbackList_FirstMatchWins(t *testing.T) {
	f := &fakeFinder{counts: map[string]int{
		`input[type="search"]`:           0,
		`input[placeholder*="Search"]`:   2,
		`input[placeholder*="Recherch"]`: 1,
	}}
	list := FallbackList{`input[type="search"]`, `input[placeholder*="Search"]`, `input[placeholder*="Recherch"]`}

	sel, err := list.Resolve(context.Background(), f)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if sel != `input[placeholder*="Search"]` {
		t.Errorf("Resolve=%q, want the second candidate", sel)
	}
	// The winning candidate must stop the scan.
	if len(f.tried) != 2 {
		t.Errorf("tried %d selectors, want 2 (early exit)", len(f.tried))
	}
}

func TestFallbackList_OrderMatters(t *testing.T) {
	f := &fakeFinder{counts: map[string]int{"a": 1, "b": 1}}

	sel, err := FallbackList{"a", "b"}.Resolve(context.Background(), f)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if sel != "a" {
		t.Errorf("Resolve=%q, want first candidate when both match", sel)
	}
}

func TestFallbackList_ErroringCandidateSkipped(t *testing.T) {
	f := &fakeFinder{counts: map[string]int{"ok": 3}}

	sel, err := FallbackList{"broken(", "ok"}.Resolve(context.Background(), f)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if sel != "ok" {
		t.Errorf("Resolve=%q, want %q", sel, "ok")
	}
}

func TestFallbackList_NoMatch(t *testing.T) {
	f := &fakeFinder{counts: map[string]int{"a": 0, "b": 0}}

	_, err := FallbackList{"a", "b"}.Resolve(context.Background(), f)
	if !errors.Is(err, ErrNoMatch) {
		t.Fatalf("Resolve error=%v, want ErrNoMatch", err)
	}
}
