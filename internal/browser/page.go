package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/input"
	"github.com/go-rod/rod/lib/proto"
	"github.com/ysmood/gson"
)

// WaitUntil selects the load signal Navigate waits for.
type WaitUntil string

const (
	// WaitDOMContentLoaded waits for the page load event.
	WaitDOMContentLoaded WaitUntil = "domcontentloaded"
	// WaitNetworkIdle additionally waits for the page to go idle.
	WaitNetworkIdle WaitUntil = "networkidle"
)

// Page is a handle on a single browser tab. All operations are sequential;
// Page is not safe for concurrent use.
type Page struct {
	cfg Config
	pg  *rod.Page
}

// Close releases the underlying tab.
func (p *Page) Close() error {
	return p.pg.Close()
}

// pause applies the configured slow-mo delay after an interaction.
func (p *Page) pause() {
	if d := p.cfg.SlowMo(); d > 0 {
		time.Sleep(d)
	}
}

// Navigate loads url and waits for the requested load signal.
func (p *Page) Navigate(ctx context.Context, url string, wait WaitUntil) error {
	pg := p.pg.Context(ctx).Timeout(p.cfg.NavigationTimeout())
	if err := pg.Navigate(url); err != nil {
		return fmt.Errorf("navigate %s: %w", url, err)
	}
	if err := pg.WaitLoad(); err != nil {
		return fmt.Errorf("wait load %s: %w", url, err)
	}
	if wait == WaitNetworkIdle {
		if err := pg.WaitIdle(p.cfg.NavigationTimeout()); err != nil {
			return fmt.Errorf("wait idle %s: %w", url, err)
		}
	}
	p.pause()
	return nil
}

// Sleep blocks for the given duration, honoring context cancellation.
func (p *Page) Sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Count reports how many elements currently match selector, without waiting.
func (p *Page) Count(ctx context.Context, selector string) (int, error) {
	els, err := p.pg.Context(ctx).Elements(selector)
	if err != nil {
		return 0, err
	}
	return len(els), nil
}

// Locate returns all elements currently matching selector. Zero matches is
// not an error; callers decide whether absence is a warning or a failure.
func (p *Page) Locate(ctx context.Context, selector string) ([]*Element, error) {
	els, err := p.pg.Context(ctx).Elements(selector)
	if err != nil {
		return nil, fmt.Errorf("locate %q: %w", selector, err)
	}
	out := make([]*Element, 0, len(els))
	for _, el := range els {
		out = append(out, &Element{cfg: p.cfg, el: el, kb: p.pg.Keyboard})
	}
	return out, nil
}

// First returns the first element matching any selector in the fallback
// list, trying candidates in order.
func (p *Page) First(ctx context.Context, list FallbackList) (*Element, error) {
	sel, err := list.Resolve(ctx, p)
	if err != nil {
		return nil, err
	}
	els, err := p.Locate(ctx, sel)
	if err != nil {
		return nil, err
	}
	if len(els) == 0 {
		return nil, fmt.Errorf("selector %q matched no elements", sel)
	}
	return els[0], nil
}

// WaitVisible waits until an element matching any selector in the list is
// visible, up to timeout. Returns the matched element.
func (p *Page) WaitVisible(ctx context.Context, list FallbackList, timeout time.Duration) (*Element, error) {
	deadline := time.Now().Add(timeout)
	for {
		el, err := p.First(ctx, list)
		if err == nil {
			visible, verr := el.Visible()
			if verr == nil && visible {
				return el, nil
			}
		}
		if time.Now().After(deadline) {
			if err == nil {
				err = fmt.Errorf("element matched but not visible within %s", timeout)
			}
			return nil, err
		}
		if serr := p.Sleep(ctx, 100*time.Millisecond); serr != nil {
			return nil, serr
		}
	}
}

// HasText waits up to timeout for any element whose text matches the given
// JS regex (e.g. "/no results/i").
func (p *Page) HasText(ctx context.Context, jsRegex string, timeout time.Duration) bool {
	pg := p.pg.Context(ctx).Timeout(timeout)
	el, err := pg.ElementR("*", jsRegex)
	if err != nil || el == nil {
		return false
	}
	visible, err := el.Visible()
	return err == nil && visible
}

// PressEnter sends the Enter key to the focused element.
func (p *Page) PressEnter(ctx context.Context) error {
	if err := p.pg.Context(ctx).Keyboard.Type(input.Enter); err != nil {
		return fmt.Errorf("press enter: %w", err)
	}
	p.pause()
	return nil
}

// TypeKeys sends text one key at a time through the page keyboard, with the
// configured per-keystroke delay.
func (p *Page) TypeKeys(ctx context.Context, text string) error {
	kb := p.pg.Context(ctx).Keyboard
	for _, r := range text {
		if err := kb.Type(input.Key(r)); err != nil {
			return fmt.Errorf("type key %q: %w", r, err)
		}
		if err := p.Sleep(ctx, p.cfg.TypeDelay()); err != nil {
			return err
		}
	}
	return nil
}

// Eval evaluates a JS function on the page and returns its value.
func (p *Page) Eval(ctx context.Context, js string, args ...interface{}) (gson.JSON, error) {
	res, err := p.pg.Context(ctx).Evaluate(&rod.EvalOptions{
		JS:           js,
		JSArgs:       args,
		ByValue:      true,
		AwaitPromise: true,
	})
	if err != nil {
		return gson.JSON{}, err
	}
	if res == nil {
		return gson.JSON{}, fmt.Errorf("eval returned no result")
	}
	return res.Value, nil
}

// ScreenshotPNG captures the page as PNG bytes.
func (p *Page) ScreenshotPNG(ctx context.Context, fullPage bool) ([]byte, error) {
	return p.pg.Context(ctx).Screenshot(fullPage, nil)
}

// Title returns the current page title.
func (p *Page) Title(ctx context.Context) (string, error) {
	info, err := p.pg.Context(ctx).Info()
	if err != nil {
		return "", err
	}
	return info.Title, nil
}

// URL returns the current page URL.
func (p *Page) URL(ctx context.Context) (string, error) {
	info, err := p.pg.Context(ctx).Info()
	if err != nil {
		return "", err
	}
	return info.URL, nil
}

// OnConsole streams console messages to fn. Used by the debug scenario.
func (p *Page) OnConsole(ctx context.Context, fn func(text string)) {
	go p.pg.Context(ctx).EachEvent(func(ev *proto.RuntimeConsoleAPICalled) {
		parts := ""
		for _, a := range ev.Args {
			if a == nil {
				continue
			}
			if !a.Value.Nil() {
				if parts != "" {
					parts += " "
				}
				parts += a.Value.String()
			}
		}
		fn(parts)
	})()
}

// Element is a handle on a located DOM element.
type Element struct {
	cfg Config
	el  *rod.Element
	kb  *rod.Keyboard
}

// Click left-clicks the element.
func (e *Element) Click(ctx context.Context) error {
	if err := e.el.Context(ctx).Click(proto.InputMouseButtonLeft, 1); err != nil {
		return fmt.Errorf("click: %w", err)
	}
	e.pause()
	return nil
}

// Fill replaces the element's content with text in one shot.
func (e *Element) Fill(ctx context.Context, text string) error {
	el := e.el.Context(ctx)
	if err := el.SelectAllText(); err != nil {
		return fmt.Errorf("select text: %w", err)
	}
	if err := el.Input(text); err != nil {
		return fmt.Errorf("fill: %w", err)
	}
	e.pause()
	return nil
}

// Type focuses the element and types text key by key with the configured
// delay, the way a user would.
func (e *Element) Type(ctx context.Context, text string) error {
	el := e.el.Context(ctx)
	if err := el.Focus(); err != nil {
		return fmt.Errorf("focus: %w", err)
	}
	for _, r := range text {
		if err := e.kb.Type(input.Key(r)); err != nil {
			return fmt.Errorf("type key %q: %w", r, err)
		}
		time.Sleep(e.cfg.TypeDelay())
	}
	e.pause()
	return nil
}

// Clear empties the element's value.
func (e *Element) Clear(ctx context.Context) error {
	el := e.el.Context(ctx)
	if err := el.SelectAllText(); err != nil {
		return fmt.Errorf("select text: %w", err)
	}
	if err := el.Type(input.Backspace); err != nil {
		return fmt.Errorf("clear: %w", err)
	}
	return nil
}

// PressEnter submits via the Enter key with the element focused.
func (e *Element) PressEnter(ctx context.Context) error {
	el := e.el.Context(ctx)
	if err := el.Focus(); err != nil {
		return fmt.Errorf("focus: %w", err)
	}
	if err := e.kb.Type(input.Enter); err != nil {
		return fmt.Errorf("press enter: %w", err)
	}
	e.pause()
	return nil
}

// Visible reports whether the element is currently visible.
func (e *Element) Visible() (bool, error) {
	return e.el.Visible()
}

// WaitVisible waits until the element is visible, up to timeout.
func (e *Element) WaitVisible(timeout time.Duration) error {
	return e.el.Timeout(timeout).WaitVisible()
}

// Attribute returns an attribute value, or "" when absent.
func (e *Element) Attribute(ctx context.Context, name string) (string, error) {
	val, err := e.el.Context(ctx).Attribute(name)
	if err != nil {
		return "", err
	}
	if val == nil {
		return "", nil
	}
	return *val, nil
}

// InputValue returns the element's current value property.
func (e *Element) InputValue(ctx context.Context) (string, error) {
	val, err := e.el.Context(ctx).Property("value")
	if err != nil {
		return "", err
	}
	return val.Str(), nil
}

// Text returns the element's visible text.
func (e *Element) Text(ctx context.Context) (string, error) {
	return e.el.Context(ctx).Text()
}

// Eval evaluates a JS function with `this` bound to the element.
func (e *Element) Eval(ctx context.Context, js string, args ...interface{}) error {
	_, err := e.el.Context(ctx).Eval(js, args...)
	return err
}

// Highlight flashes a red border around the element so it stands out on the
// next screenshot. Restore removes it again.
func (e *Element) Highlight(ctx context.Context) error {
	return e.Eval(ctx, `() => { this.style.border = '3px solid red'; }`)
}

// Restore removes the highlight border.
func (e *Element) Restore(ctx context.Context) error {
	return e.Eval(ctx, `() => { this.style.border = ''; }`)
}

func (e *Element) pause() {
	if d := e.cfg.SlowMo(); d > 0 {
		time.Sleep(d)
	}
}
