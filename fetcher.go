package stagenote

import "context"

// Fetcher retrieves HTML from URLs. The plain HTTP implementation serves
// static pages; a Renderer is preferred when JavaScript rendering matters.
type Fetcher interface {
	// Fetch retrieves the HTML content of the URL.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases any resources held by the fetcher.
	Close() error
}
