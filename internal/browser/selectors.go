package browser

import (
	"context"
	"errors"
	"fmt"
)

// ErrNoMatch is returned when no candidate selector matches any element.
var ErrNoMatch = errors.New("no candidate selector matched")

// Finder reports how many elements currently match a selector. *Page
// implements it; tests substitute a fake.
type Finder interface {
	Count(ctx context.Context, selector string) (int, error)
}

// FallbackList is an ordered list of candidate selectors. Candidates are
// tried in order and the first one matching at least one element wins; list
// order is the only tie-break.
type FallbackList []string

// Resolve returns the first candidate matching at least one element. A
// candidate that errors (e.g. invalid selector) is skipped, not fatal.
func (l FallbackList) Resolve(ctx context.Context, f Finder) (string, error) {
	for _, sel := range l {
		n, err := f.Count(ctx, sel)
		if err != nil {
			continue
		}
		if n > 0 {
			return sel, nil
		}
	}
	return "", fmt.Errorf("%w: tried %d candidates %v", ErrNoMatch, len(l), []string(l))
}
