package server

import (
	"fmt"
	"net/http"

	lru "github.com/hashicorp/golang-lru"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"webcarbon/internal/config"
	"webcarbon/internal/logger"
	"webcarbon/internal/reports"
	"webcarbon/internal/storage"
)

// Server serves the rendered chart, its images and the tooltip API
type Server struct {
	Config    *config.Config
	Generator *reports.Generator
	Store     storage.StorageClient
	Variant   reports.Variant

	cache    *lru.Cache
	limiter  *rate.Limiter
	registry *prometheus.Registry
	metrics  *Metrics
	log      *logger.Logger
}

// NewServer creates a new server instance. Published reports are read back through store.
func NewServer(cfg *config.Config, generator *reports.Generator, store storage.StorageClient) (*Server, error) {
	variant, err := reports.ParseVariant(cfg.ChartVariant)
	if err != nil {
		return nil, err
	}

	cache, err := lru.New(cfg.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create render cache: %w", err)
	}

	registry := prometheus.NewRegistry()
	metrics, err := NewMetrics(registry)
	if err != nil {
		return nil, fmt.Errorf("failed to register metrics: %w", err)
	}

	return &Server{
		Config:    cfg,
		Generator: generator,
		Store:     store,
		Variant:   variant,
		cache:     cache,
		limiter:   rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst),
		registry:  registry,
		metrics:   metrics,
		log:       logger.GetGlobalLogger().WithComponent("server"),
	}, nil
}

// SetupRoutes configures HTTP routes for the server
func (s *Server) SetupRoutes() http.Handler {
	mux := http.NewServeMux()

	s.handle(mux, "/health", s.HandleHealth)
	s.handle(mux, "/chart.png", s.HandleChartImage)
	s.handle(mux, "/chart.svg", s.HandleChartImage)
	s.handle(mux, "/chart.html", s.HandleInteractiveChart)
	s.handle(mux, "/api/dataset", s.HandleDataset)
	s.handle(mux, "/api/tooltip", s.HandleTooltip)
	s.handle(mux, "/reports", s.HandleListReports)
	s.handle(mux, "/reports/", s.HandleReportFile)
	mux.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	// Root last (catch-all)
	s.handle(mux, "/", s.HandleRoot)

	return s.withRequestID(s.withLogging(mux))
}

// handle registers a route with rate limiting and metrics
func (s *Server) handle(mux *http.ServeMux, route string, h http.HandlerFunc) {
	mux.Handle(route, s.metrics.Instrument(route, s.withRateLimit(h)))
}

// Close releases server resources
func (s *Server) Close() error {
	s.cache.Purge()
	return nil
}
