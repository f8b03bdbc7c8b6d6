package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/fwojciec/stagenote"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server exposes the scraping pipeline and stored records over a REST API.
// The response shapes are a wire contract shared with existing clients and
// must not change.
type Server struct {
	echo    *echo.Echo
	addr    string
	logger  *slog.Logger
	metrics *Metrics

	scraper      stagenote.Scraper
	performances stagenote.PerformanceService
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithLogger sets the request logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) ServerOption {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMetrics sets the metrics registry the server records into and serves
// at /metrics.
func WithMetrics(m *Metrics) ServerOption {
	return func(s *Server) {
		s.metrics = m
	}
}

// NewServer creates the API server listening on addr.
func NewServer(addr string, scraper stagenote.Scraper, performances stagenote.PerformanceService, opts ...ServerOption) *Server {
	s := &Server{
		addr:         addr,
		logger:       slog.Default(),
		scraper:      scraper,
		performances: performances,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.metrics == nil {
		s.metrics = NewMetrics()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			s.logger.Info("http request",
				"method", c.Request().Method,
				"uri", c.Request().RequestURI,
				"status", c.Response().Status,
				"duration", time.Since(start),
			)
			return err
		}
	})

	s.echo = e
	s.registerRoutes()

	return s
}

func (s *Server) registerRoutes() {
	s.echo.GET("/health", s.handleHealth)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(s.metrics.Registry(), promhttp.HandlerOpts{})))

	api := s.echo.Group("/api")
	api.POST("/scrape", s.handleScrape)
	api.GET("/performances", s.handleListPerformances)
	api.GET("/performances/:id", s.handleGetPerformance)
	api.DELETE("/performances/:id", s.handleDeletePerformance)
}

// ScrapeRequest is the request body for POST /api/scrape.
type ScrapeRequest struct {
	URL string `json:"url"`
}

// ScrapeResponse is the response body for a successful POST /api/scrape.
type ScrapeResponse struct {
	Success bool                         `json:"success"`
	Data    *stagenote.PerformanceRecord `json:"data"`
	SavedAs string                       `json:"savedAs"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleScrape(c echo.Context) error {
	var req ScrapeRequest
	if err := c.Bind(&req); err != nil || req.URL == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "URL is required"})
	}

	start := time.Now()
	rec, err := s.scraper.Scrape(c.Request().Context(), req.URL)
	s.metrics.ObserveScrape(time.Since(start), err)
	if err != nil {
		s.logger.Error("scrape failed", "url", req.URL, "err", err)
		return c.JSON(statusFromError(err), errorResponse{
			Error:   "Failed to scrape the webpage",
			Details: stagenote.ErrorMessage(err),
		})
	}

	return c.JSON(http.StatusOK, ScrapeResponse{
		Success: true,
		Data:    rec,
		SavedAs: rec.ID + ".json",
	})
}

func (s *Server) handleListPerformances(c echo.Context) error {
	recs, err := s.performances.FindPerformances(c.Request().Context(), stagenote.PerformanceFilter{})
	if err != nil {
		s.logger.Error("list performances failed", "err", err)
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "Failed to load performances"})
	}
	if recs == nil {
		recs = []*stagenote.PerformanceRecord{}
	}
	return c.JSON(http.StatusOK, recs)
}

func (s *Server) handleGetPerformance(c echo.Context) error {
	rec, err := s.performances.FindPerformanceByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if stagenote.ErrorCode(err) == stagenote.ENOTFOUND {
			return c.JSON(http.StatusNotFound, errorResponse{Error: "Performance not found"})
		}
		s.logger.Error("get performance failed", "id", c.Param("id"), "err", err)
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "Failed to load performance"})
	}
	return c.JSON(http.StatusOK, rec)
}

func (s *Server) handleDeletePerformance(c echo.Context) error {
	if err := s.performances.DeletePerformance(c.Request().Context(), c.Param("id")); err != nil {
		if stagenote.ErrorCode(err) == stagenote.ENOTFOUND {
			return c.JSON(http.StatusNotFound, errorResponse{Error: "Performance not found"})
		}
		s.logger.Error("delete performance failed", "id", c.Param("id"), "err", err)
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "Failed to delete performance"})
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

func statusFromError(err error) int {
	switch stagenote.ErrorCode(err) {
	case stagenote.EINVALID:
		return http.StatusBadRequest
	case stagenote.ENOTFOUND:
		return http.StatusNotFound
	case stagenote.EUNAVAILABLE:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Handler exposes the underlying handler for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	s.logger.Info("starting http server", "addr", s.addr)
	return s.echo.Start(s.addr)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.echo.Shutdown(ctx)
}
