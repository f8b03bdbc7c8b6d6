package main

import (
	"fmt"

	"github.com/fwojciec/stagenote"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	filter := stagenote.PerformanceFilter{Limit: c.Limit}
	if c.SourceURL != "" {
		filter.SourceURL = &c.SourceURL
	}

	recs, err := deps.Performances.FindPerformances(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", stagenote.ErrorMessage(err))
		return err
	}

	if len(recs) == 0 {
		fmt.Fprintln(deps.Stdout, "No performances found. Use 'stagenote scrape' to add one.")
		return nil
	}

	for _, rec := range recs {
		title := rec.Title
		if title == "" {
			title = "(untitled)"
		}
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  %s\n",
			rec.ID, rec.ScrapedAt.Format("2006-01-02 15:04"), title, rec.SourceURL)
	}

	return nil
}
