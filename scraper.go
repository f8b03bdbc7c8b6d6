package stagenote

import "context"

// Scraper runs the full pipeline for one URL: render the page, shortlist
// poster images, optionally OCR the first poster, extract a record, and
// persist it. Extraction misses are not errors; only the inability to
// obtain the input sources (render/fetch failure) is reported, with code
// EUNAVAILABLE.
type Scraper interface {
	Scrape(ctx context.Context, url string) (*PerformanceRecord, error)
}
