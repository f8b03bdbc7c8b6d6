package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/stagenote"
	"github.com/fwojciec/stagenote/config"
	"github.com/fwojciec/stagenote/extract"
	"github.com/fwojciec/stagenote/fs"
	"github.com/fwojciec/stagenote/goquery"
	stagehttp "github.com/fwojciec/stagenote/http"
	"github.com/fwojciec/stagenote/rod"
	"github.com/fwojciec/stagenote/scrape"
	stageslog "github.com/fwojciec/stagenote/slog"
	"github.com/fwojciec/stagenote/sqlite"
	"github.com/fwojciec/stagenote/tesseract"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Config overrides the loaded configuration when set before Run().
	Config *config.Config

	// SQLite database, open only when the sqlite store is selected.
	DB *sqlite.DB

	// Browser renderer, open only for commands that scrape.
	Renderer *rod.Renderer

	// Persistence service for end-to-end testing.
	Performances stagenote.PerformanceService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.Renderer != nil {
		if err := m.Renderer.Close(); err != nil {
			return err
		}
	}
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("stagenote"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'stagenote --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	cfg := m.Config
	if cfg == nil {
		cfg, err = config.Load()
		if err != nil {
			fmt.Fprintf(stderr, "Hint: set STAGENOTE_CONFIG to point at a config file, or unset bad STAGENOTE_* variables\n")
			return fmt.Errorf("failed to load configuration: %w", err)
		}
	}
	deps.Config = cfg

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: logLevel(cfg.LogLevel)}))
	deps.Logger = logger

	// Open the persistence backend
	if m.Performances == nil {
		switch cfg.Store {
		case "sqlite":
			m.DB = sqlite.NewDB(cfg.DBPath)
			if err := m.DB.Open(); err != nil {
				fmt.Fprintf(stderr, "Hint: set STAGENOTE_DB_PATH to use a different database path\n")
				return fmt.Errorf("failed to open database at %q: %w", cfg.DBPath, err)
			}
			m.Performances = sqlite.NewPerformanceService(m.DB)
		default:
			store, err := fs.NewStore(cfg.DataDir)
			if err != nil {
				return fmt.Errorf("failed to open data directory %q: %w", cfg.DataDir, err)
			}
			m.Performances = store
		}
	}
	defer m.Close()

	deps.Performances = m.Performances
	deps.Sitemaps = stageslog.NewLoggingSitemapService(stagehttp.NewSitemapService(nil), logger)

	// The scrape pipeline needs a browser; wire it only for commands that
	// scrape so list/show/delete work without Chrome installed.
	if cmd == "serve" || cmd == "scrape" {
		renderer, err := rod.NewRenderer(rod.WithHeadless(cfg.Headless))
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
			return fmt.Errorf("failed to start browser: %w", err)
		}
		m.Renderer = renderer

		var ocr stagenote.OCR
		if cfg.OCREnabled {
			ocr = tesseract.New(tesseract.WithLanguages(cfg.OCRLanguages))
		}

		deps.Scraper = &scrape.Scraper{
			Renderer:     renderer,
			Fetcher:      stagehttp.NewFetcher(),
			Parser:       goquery.NewParser(),
			OCR:          ocr,
			Extractor:    extract.New(),
			Performances: m.Performances,
			RateLimiter:  scrape.NewDomainLimiter(cfg.RateLimit),
			Logger:       logger,
			Concurrency:  cfg.Concurrency,
		}
	}

	return kongCtx.Run(deps)
}

func logLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
