// Package mock provides function-field mock implementations of the domain
// interfaces for testing.
package mock

import (
	"context"

	"github.com/fwojciec/stagenote"
)

var _ stagenote.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of stagenote.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}

var _ stagenote.Renderer = (*Renderer)(nil)

// Renderer is a mock implementation of stagenote.Renderer.
type Renderer struct {
	RenderFn func(ctx context.Context, url string) (*stagenote.RenderedPage, error)
	CloseFn  func() error
}

func (r *Renderer) Render(ctx context.Context, url string) (*stagenote.RenderedPage, error) {
	return r.RenderFn(ctx, url)
}

func (r *Renderer) Close() error {
	if r.CloseFn == nil {
		return nil
	}
	return r.CloseFn()
}

var _ stagenote.OCR = (*OCR)(nil)

// OCR is a mock implementation of stagenote.OCR.
type OCR struct {
	RecognizeFn func(ctx context.Context, imageURL string) (string, error)
}

func (o *OCR) Recognize(ctx context.Context, imageURL string) (string, error) {
	return o.RecognizeFn(ctx, imageURL)
}

var _ stagenote.Scraper = (*Scraper)(nil)

// Scraper is a mock implementation of stagenote.Scraper.
type Scraper struct {
	ScrapeFn func(ctx context.Context, url string) (*stagenote.PerformanceRecord, error)
}

func (s *Scraper) Scrape(ctx context.Context, url string) (*stagenote.PerformanceRecord, error) {
	return s.ScrapeFn(ctx, url)
}

var _ stagenote.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of stagenote.SitemapService.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, baseURL string, filter *stagenote.URLFilter) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *stagenote.URLFilter) ([]string, error) {
	return s.DiscoverURLsFn(ctx, baseURL, filter)
}
