package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/stagenote"
	"github.com/fwojciec/stagenote/config"
	"github.com/fwojciec/stagenote/scrape"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx          context.Context
	Stdout       io.Writer
	Stderr       io.Writer
	Config       *config.Config
	Logger       *slog.Logger
	Performances stagenote.PerformanceService
	Sitemaps     stagenote.SitemapService
	Scraper      *scrape.Scraper
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Serve    ServeCmd    `cmd:"" help:"Run the HTTP API server"`
	Scrape   ScrapeCmd   `cmd:"" help:"Scrape one or more performance pages"`
	Discover DiscoverCmd `cmd:"" help:"Discover performance URLs from a site's sitemaps"`
	List     ListCmd     `cmd:"" help:"List stored performance records"`
	Show     ShowCmd     `cmd:"" help:"Show a stored performance record"`
	Delete   DeleteCmd   `cmd:"" help:"Delete a stored performance record"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr string `help:"Listen address (overrides config)"`
}

// ScrapeCmd is the "scrape" subcommand.
type ScrapeCmd struct {
	URLs        []string `arg:"" help:"Performance page URLs"`
	Concurrency int      `short:"c" default:"3" help:"Concurrent scrape limit"`
}

// DiscoverCmd is the "discover" subcommand.
type DiscoverCmd struct {
	URL    string   `arg:"" help:"Site base URL"`
	Filter []string `short:"F" name:"filter" help:"Filter URLs by regex (repeatable)"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	SourceURL string `help:"Only records scraped from this URL"`
	Limit     int    `help:"Maximum records to print"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	ID string `arg:"" help:"Record ID"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	ID    string `arg:"" help:"Record ID"`
	Force bool   `help:"Confirm deletion"`
}
