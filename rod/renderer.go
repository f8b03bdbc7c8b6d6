// Package rod implements page rendering using Chrome browser automation via
// github.com/go-rod/rod. Performance pages are heavy on JavaScript, so the
// rendered DOM, not the served HTML, is the extraction input.
package rod

import (
	"context"
	"fmt"

	"github.com/fwojciec/stagenote"
	"github.com/go-rod/rod/lib/proto"
)

// Ensure Renderer implements stagenote.Renderer at compile time.
var _ stagenote.Renderer = (*Renderer)(nil)

// Renderer loads URLs in a headless Chrome browser and reports the rendered
// markup, the full text content, and the natural dimensions of every image.
// Renderer is safe for concurrent use by multiple goroutines.
type Renderer struct {
	manager *BrowserManager
	owned   bool
}

// NewRenderer creates a Renderer backed by its own managed browser.
// Close must be called when the Renderer is no longer needed.
func NewRenderer(opts ...ManagerOption) (*Renderer, error) {
	manager, err := NewBrowserManager(opts...)
	if err != nil {
		return nil, err
	}
	return &Renderer{manager: manager, owned: true}, nil
}

// NewRendererWithManager creates a Renderer on a shared BrowserManager. The
// caller retains ownership of the manager; Close on the Renderer is a no-op.
func NewRendererWithManager(manager *BrowserManager) *Renderer {
	return &Renderer{manager: manager}
}

// Render navigates to the URL, waits for the page to load, and captures the
// rendered document.
func (r *Renderer) Render(ctx context.Context, url string) (*stagenote.RenderedPage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	page, err := r.manager.Browser().Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("creating page: %w", err)
	}
	defer page.Close()

	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return nil, fmt.Errorf("navigating to %s: %w", url, err)
	}
	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("waiting for load: %w", err)
	}

	html, err := page.HTML()
	if err != nil {
		return nil, fmt.Errorf("reading html: %w", err)
	}

	// innerText misses content in collapsed tabs, so walk textContent of
	// the whole body instead.
	textObj, err := page.Eval(`() => document.body ? document.body.textContent : ""`)
	if err != nil {
		return nil, fmt.Errorf("reading page text: %w", err)
	}

	imagesObj, err := page.Eval(`() => Array.from(document.images).map(img => ({
		src: img.currentSrc || img.src,
		width: img.naturalWidth,
		height: img.naturalHeight,
	}))`)
	if err != nil {
		return nil, fmt.Errorf("reading images: %w", err)
	}

	var images []stagenote.RenderedImage
	for _, img := range imagesObj.Value.Arr() {
		src := img.Get("src").Str()
		if src == "" {
			continue
		}
		images = append(images, stagenote.RenderedImage{
			URL:    src,
			Width:  img.Get("width").Int(),
			Height: img.Get("height").Int(),
		})
	}

	r.manager.IncrementPageCount()

	return &stagenote.RenderedPage{
		HTML:   html,
		Text:   textObj.Value.Str(),
		Images: images,
	}, nil
}

// Close releases browser resources when the Renderer owns its manager.
func (r *Renderer) Close() error {
	if !r.owned {
		return nil
	}
	return r.manager.Close()
}
