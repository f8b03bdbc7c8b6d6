package main

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/stagenote"
	"github.com/fwojciec/stagenote/scrape"
)

// Run executes the scrape command.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	if c.Concurrency > 0 {
		deps.Scraper.Concurrency = c.Concurrency
	}

	// A single URL prints the full record; a batch prints progress and a
	// summary.
	if len(c.URLs) == 1 {
		rec, err := deps.Scraper.Scrape(deps.Ctx, c.URLs[0])
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", stagenote.ErrorMessage(err))
			return err
		}

		out, err := json.MarshalIndent(rec, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(deps.Stdout, string(out))
		return nil
	}

	progress := func(event scrape.ProgressEvent) {
		switch event.Type {
		case scrape.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "Scraping %d URLs\n", event.Total)
		case scrape.ProgressCompleted:
			fmt.Fprintf(deps.Stdout, "  [%d/%d] %s\n", event.Completed, event.Total, event.URL)
		case scrape.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", event.URL, event.Error)
		}
	}

	result, err := deps.Scraper.ScrapeAll(deps.Ctx, c.URLs, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", stagenote.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Saved %d performances (%d failed, %d duplicates skipped)\n",
		result.Scraped, result.Failed, result.Skipped)
	return nil
}
