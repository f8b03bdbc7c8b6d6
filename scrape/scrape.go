// Package scrape provides scraping orchestration: it coordinates page
// rendering, document parsing, poster OCR, metadata extraction, and storage
// for single pages and for batches of discovered URLs.
package scrape

import (
	"context"
	"log/slog"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/fwojciec/stagenote"
	"github.com/fwojciec/stagenote/bloom"
	"github.com/fwojciec/stagenote/extract"
	"golang.org/x/sync/errgroup"
)

// Batch dedupe configuration.
const (
	// batchExpectedURLs sizes the Bloom filter used to skip URLs already
	// scraped within one batch.
	batchExpectedURLs = 10000
	// batchFalsePositiveRate is the acceptable rate of skipping a URL that
	// was never actually scraped.
	batchFalsePositiveRate = 0.01
)

// Ensure Scraper implements stagenote.Scraper at compile time.
var _ stagenote.Scraper = (*Scraper)(nil)

// Scraper runs the scraping pipeline. Renderer is the preferred page
// source; Fetcher is the plain-HTTP fallback when rendering fails or no
// Renderer is configured. OCR and Performances are optional; without them
// the pipeline extracts without poster text and returns records without
// persisting.
type Scraper struct {
	Renderer     stagenote.Renderer
	Fetcher      stagenote.Fetcher
	Parser       stagenote.DocumentParser
	OCR          stagenote.OCR
	Extractor    *extract.Extractor
	Performances stagenote.PerformanceService
	RateLimiter  *DomainLimiter
	Logger       *slog.Logger
	Concurrency  int
	RetryDelays  []time.Duration
}

// Scrape runs the full pipeline for one URL. Extraction misses leave record
// fields empty; only the inability to load the page at all is an error,
// reported with code EUNAVAILABLE.
func (s *Scraper) Scrape(ctx context.Context, rawURL string) (*stagenote.PerformanceRecord, error) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, stagenote.Errorf(stagenote.EINVALID, "invalid URL %q", rawURL)
	}

	if s.RateLimiter != nil {
		if err := s.RateLimiter.Wait(ctx, u.Host); err != nil {
			return nil, err
		}
	}

	html, pageText, images, err := s.loadPage(ctx, rawURL)
	if err != nil {
		return nil, stagenote.Errorf(stagenote.EUNAVAILABLE, "failed to load %s: %v", rawURL, err)
	}

	// A parse failure degrades to text-only extraction; it is not fatal.
	var doc stagenote.Document
	if s.Parser != nil {
		if d, err := s.Parser.Parse(html); err == nil {
			doc = d
		} else {
			s.logger().Warn("parse failed", "url", rawURL, "err", err)
		}
	}

	if pageText == "" && doc != nil {
		pageText = doc.Text("body")
	}

	posters := s.Extractor.PosterCandidates(doc, rawURL, images)

	var ocrText string
	if s.OCR != nil && len(posters) > 0 {
		// OCR failure costs a recovery channel, not the scrape.
		ocrText, err = s.OCR.Recognize(ctx, posters[0])
		if err != nil {
			s.logger().Warn("ocr failed", "url", rawURL, "poster", posters[0], "err", err)
			ocrText = ""
		}
	}

	var posterImage string
	if len(posters) > 0 {
		posterImage = posters[0]
	}

	rec := s.Extractor.Extract(extract.Source{
		Doc:         doc,
		PageText:    pageText,
		OCRText:     ocrText,
		URL:         rawURL,
		PosterImage: posterImage,
	})

	if s.Performances != nil {
		if err := s.Performances.CreatePerformance(ctx, rec); err != nil {
			return nil, err
		}
	}

	s.logger().Info("scraped",
		"url", rawURL,
		"title", rec.Title,
		"performers", len(rec.Performers),
		"program", len(rec.Program),
		"ocr", rec.OCRExtracted,
	)

	return rec, nil
}

// loadPage obtains the page markup plus, when rendering succeeds, the full
// rendered text and image inventory.
func (s *Scraper) loadPage(ctx context.Context, rawURL string) (html, pageText string, images []stagenote.RenderedImage, err error) {
	delays := s.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}

	if s.Renderer != nil {
		page, renderErr := renderWithRetry(ctx, rawURL, s.Renderer.Render, delays)
		if renderErr == nil {
			return page.HTML, page.Text, page.Images, nil
		}
		err = renderErr
		if s.Fetcher == nil {
			return "", "", nil, err
		}
		s.logger().Warn("render failed, falling back to http", "url", rawURL, "err", renderErr)
	}

	if s.Fetcher == nil {
		return "", "", nil, stagenote.Errorf(stagenote.EINTERNAL, "no renderer or fetcher configured")
	}

	html, err = fetchWithRetry(ctx, rawURL, s.Fetcher.Fetch, delays)
	if err != nil {
		return "", "", nil, err
	}
	return html, "", nil, nil
}

// Result holds the outcome of a batch scrape.
type Result struct {
	Scraped int
	Failed  int
	Skipped int
}

// ProgressEvent reports progress during a batch scrape.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting batch progress.
type ProgressFunc func(event ProgressEvent)

// ScrapeAll scrapes every URL concurrently, skipping duplicates within the
// batch. Individual failures are counted, not propagated; the batch only
// fails on context cancellation.
func (s *Scraper) ScrapeAll(ctx context.Context, urls []string, progress ProgressFunc) (*Result, error) {
	seen := bloom.NewFilter(batchExpectedURLs, batchFalsePositiveRate)

	var unique []string
	var result Result
	for _, u := range urls {
		if seen.Test(u) {
			result.Skipped++
			continue
		}
		seen.Add(u)
		unique = append(unique, u)
	}

	concurrency := s.Concurrency
	if concurrency <= 0 {
		concurrency = 3
	}

	total := len(unique)
	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	var scraped, failed atomic.Int64
	var completed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for _, u := range unique {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			_, err := s.Scrape(gctx, u)
			done := int(completed.Add(1))
			if err != nil {
				failed.Add(1)
				if progress != nil {
					progress(ProgressEvent{Type: ProgressFailed, Completed: done, Total: total, URL: u, Error: err})
				}
				return nil
			}

			scraped.Add(1)
			if progress != nil {
				progress(ProgressEvent{Type: ProgressCompleted, Completed: done, Total: total, URL: u})
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	}

	result.Scraped = int(scraped.Load())
	result.Failed = int(failed.Load())
	return &result, nil
}

func (s *Scraper) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}
