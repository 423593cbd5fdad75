// Package server exposes the dashboard, drill-down, export and maintenance HTTP API.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sentiscope/sentiscope/pkg/aggregate"
	"github.com/sentiscope/sentiscope/pkg/domain"
	"github.com/sentiscope/sentiscope/pkg/scheduler"
)

//go:generate moq -out mocks/config.go -pkg mocks -skip-ensure -fmt goimports . ConfigProvider
//go:generate moq -out mocks/store.go -pkg mocks -skip-ensure -fmt goimports . Store
//go:generate moq -out mocks/ingestor.go -pkg mocks -skip-ensure -fmt goimports . Ingestor

// Server represents HTTP server instance
type Server struct {
	config   ConfigProvider
	store    Store
	agg      Aggregator
	ingestor Ingestor
	jobs     *scheduler.Jobs
	version  string
	debug    bool
	now      func() time.Time

	cache *expirable.LRU[string, rangePayload]

	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle
}

// Store is the data access the server needs on top of the aggregator
type Store interface {
	GetScoredItems(ctx context.Context, subreddit, date string) ([]domain.ScoredItem, error)
	GetTopItems(ctx context.Context, subreddit, date string, itemType domain.ItemType, limit int) ([]domain.ScoredItem, error)
	InsertItems(ctx context.Context, items []domain.ScoredItem) (int, error)
	ItemExists(ctx context.Context, id string) (bool, error)
	CountItems(ctx context.Context) (int, error)
	GetSetting(ctx context.Context, key string) (string, error)
	SetSetting(ctx context.Context, key, value string) error
	Reset(ctx context.Context) error
}

// Aggregator reads, summarizes and recomputes daily aggregates
type Aggregator interface {
	Subreddits() []string
	IsTracked(name string) bool
	GetRange(ctx context.Context, subreddit, start, end string) ([]domain.DailyAggregate, error)
	Summarize(series []domain.DailyAggregate) domain.DashboardSummary
	RecomputeRange(ctx context.Context, start, end string, subreddits []string, onProgress aggregate.ProgressFunc) (aggregate.RecomputeResult, error)
}

// Ingestor runs on-demand polls and backfills
type Ingestor interface {
	Poll(ctx context.Context) (scheduler.RunResult, error)
	Backfill(ctx context.Context, daysBack int, onProgress aggregate.ProgressFunc) (scheduler.RunResult, error)
}

// ConfigProvider provides server configuration
type ConfigProvider interface {
	GetServerConfig() (listen string, timeout time.Duration)
	GetCacheConfig() (ttl time.Duration, size int)
	GetAdminToken() string
}

// New initializes a new server instance. Ingestor may be nil, ingestion endpoints answer 503 then.
func New(cfg ConfigProvider, store Store, agg Aggregator, ingestor Ingestor, jobs *scheduler.Jobs, version string, debug bool) *Server {
	ttl, size := cfg.GetCacheConfig()
	if size <= 0 {
		size = 256
	}
	s := &Server{
		config:   cfg,
		store:    store,
		agg:      agg,
		ingestor: ingestor,
		jobs:     jobs,
		version:  version,
		debug:    debug,
		now:      time.Now,
		cache:    expirable.NewLRU[string, rangePayload](size, nil, ttl),
		router:   routegroup.New(http.NewServeMux()),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Run starts the HTTP server and handles graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	listen, timeout := s.config.GetServerConfig()
	log.Printf("[INFO] starting server on %s", listen)

	s.lock.Lock()
	s.httpServer = &http.Server{
		Addr:         listen,
		Handler:      s.router,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
	}
	s.lock.Unlock()

	go func() {
		<-ctx.Done()
		log.Printf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("[WARN] server shutdown error: %v", err)
		}
	}()

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	return nil
}

// ServeHTTP makes the server usable as a handler in tests
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// InvalidateCache drops all cached range responses, called after stored data changed
func (s *Server) InvalidateCache() {
	s.cache.Purge()
}

// setupMiddleware configures standard middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(rest.AppInfo("sentiscope", "sentiscope", s.version))
	s.router.Use(rest.Ping)

	if s.debug {
		s.router.Use(logger.New(logger.Log(lgr.Default()), logger.Prefix("[DEBUG]")).Handler)
	}

	s.router.Use(rest.Recoverer(lgr.Default()))
	s.router.Use(rest.Throttle(100))
	s.router.Use(rest.SizeLimit(1024 * 1024)) // 1MB
}

// setupRoutes configures application routes
func (s *Server) setupRoutes() {
	s.router.Handle("GET /metrics", promhttp.Handler())

	s.router.Mount("/api/v1").Route(func(r *routegroup.Bundle) {
		r.HandleFunc("GET /status", s.statusHandler)
		r.HandleFunc("GET /sentiment/aggregate", s.aggregateHandler)
		r.HandleFunc("GET /dashboard/data", s.aggregateHandler)
		r.HandleFunc("GET /drill-down", s.drillDownHandler)
		r.HandleFunc("GET /sentiment/samples", s.samplesHandler)
		r.HandleFunc("GET /export/csv", s.exportCSVHandler)

		r.Group().Route(func(admin *routegroup.Bundle) {
			admin.Use(s.adminAuth)
			admin.HandleFunc("POST /ingest/poll", s.pollHandler)
			admin.HandleFunc("POST /ingest/backfill", s.backfillHandler)
			admin.HandleFunc("POST /aggregates/recompute", s.recomputeHandler)
			admin.HandleFunc("GET /jobs/{id}", s.jobHandler)
			admin.HandleFunc("POST /data/clear", s.clearHandler)
			admin.HandleFunc("POST /data/sample", s.sampleDataHandler)
		})
	})
}

// renderJSON sends JSON response
func renderJSON(w http.ResponseWriter, _ *http.Request, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("[ERROR] can't encode response to JSON: %v", err)
		}
	}
}

// renderError sends error response as JSON
func renderError(w http.ResponseWriter, r *http.Request, err error, code int) {
	errMsg := "unknown error"
	if err != nil {
		errMsg = err.Error()
	}
	renderJSON(w, r, code, errorResponse{Success: false, Error: errMsg})
}
