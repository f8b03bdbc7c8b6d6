package stagenote

import "context"

// RenderedPage holds the output of rendering a page in a real browser.
type RenderedPage struct {
	// HTML is the rendered document markup after JavaScript execution.
	HTML string

	// Text is the concatenation of all text nodes in the rendered page,
	// including nodes hidden by styling. Performance sites frequently keep
	// cast and program details in collapsed tabs.
	Text string

	// Images lists rendered <img> elements with their natural pixel
	// dimensions and resolved source URLs.
	Images []RenderedImage
}

// RenderedImage is one rendered <img> element.
type RenderedImage struct {
	URL    string
	Width  int
	Height int
}

// Renderer loads a URL in a browser and reports the rendered result.
// Implementations own navigation timeouts; cancellation comes from ctx.
type Renderer interface {
	Render(ctx context.Context, url string) (*RenderedPage, error)

	// Close releases browser resources.
	Close() error
}
