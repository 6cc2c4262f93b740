// Package render drives a headless browser so scroll-triggered lazy loading
// materializes every photo before the DOM is captured.
package render

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
)

// ImageElement is one rendered <img> in the settled DOM.
type ImageElement struct {
	Src   string `json:"src"`
	Title string `json:"title"`
}

// Snapshot is the rendered album page after lazy loading has settled.
type Snapshot struct {
	HTML   string
	Images []ImageElement
}

// Renderer captures a DOM snapshot of a page. The scroll loop is bounded:
// it stops once the page height is unchanged for StableChecks consecutive
// passes, or after MaxScrolls passes regardless.
type Renderer struct {
	// ScrollDelay is the wait between scroll passes.
	ScrollDelay time.Duration
	// StableChecks is how many consecutive unchanged heights end the loop.
	StableChecks int
	// MaxScrolls caps the loop regardless of page behavior.
	MaxScrolls int
}

const (
	defaultScrollDelay  = 1200 * time.Millisecond
	defaultStableChecks = 3
	defaultMaxScrolls   = 40
)

// Capture renders url and returns the settled DOM snapshot. The caller's
// context bounds the whole render, browser startup included.
func (r *Renderer) Capture(ctx context.Context, url string) (Snapshot, error) {
	delay := r.ScrollDelay
	if delay <= 0 {
		delay = defaultScrollDelay
	}
	stableChecks := r.StableChecks
	if stableChecks <= 0 {
		stableChecks = defaultStableChecks
	}
	maxScrolls := r.MaxScrolls
	if maxScrolls <= 0 {
		maxScrolls = defaultMaxScrolls
	}

	browserCtx, cancel := chromedp.NewContext(ctx)
	defer cancel()

	var snap Snapshot
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tracker := newStability(stableChecks)
			for i := 0; i < maxScrolls; i++ {
				if err := chromedp.Evaluate(`window.scrollTo(0, document.body.scrollHeight)`, nil).Do(ctx); err != nil {
					return err
				}
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-time.After(delay):
				}
				var height int
				if err := chromedp.Evaluate(`document.body.scrollHeight`, &height).Do(ctx); err != nil {
					return err
				}
				if tracker.observe(height) {
					return nil
				}
			}
			return nil
		}),
		chromedp.Evaluate(`Array.from(document.images).map(i => ({src: i.src, title: i.title}))`, &snap.Images),
		chromedp.OuterHTML("html", &snap.HTML, chromedp.ByQuery),
	)
	if err != nil {
		return Snapshot{}, fmt.Errorf("render %s: %w", url, err)
	}
	return snap, nil
}

// stability counts consecutive identical page-height samples.
type stability struct {
	need int
	last int
	runs int
}

func newStability(need int) *stability {
	return &stability{need: need, last: -1}
}

// observe records one height sample and reports whether the page has held
// that height for the required number of consecutive checks.
func (s *stability) observe(height int) bool {
	if height == s.last {
		s.runs++
	} else {
		s.last = height
		s.runs = 1
	}
	return s.runs >= s.need
}
