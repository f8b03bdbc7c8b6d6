package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/stagenote"
)

// Ensure LoggingScraper implements stagenote.Scraper.
var _ stagenote.Scraper = (*LoggingScraper)(nil)

// LoggingScraper wraps a Scraper with debug logging.
type LoggingScraper struct {
	next   stagenote.Scraper
	logger *slog.Logger
}

// NewLoggingScraper creates a new LoggingScraper.
func NewLoggingScraper(next stagenote.Scraper, logger *slog.Logger) *LoggingScraper {
	return &LoggingScraper{next: next, logger: logger}
}

// Scrape delegates to the wrapped scraper and logs the operation.
func (s *LoggingScraper) Scrape(ctx context.Context, url string) (rec *stagenote.PerformanceRecord, err error) {
	defer func(begin time.Time) {
		var id string
		if rec != nil {
			id = rec.ID
		}
		s.logger.Info("scrape",
			"url", url,
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Scrape(ctx, url)
}
