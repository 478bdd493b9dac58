// Package api serves the catalogue over HTTP.
//
// Routes:
//
//	POST /api/get-filtered-classes   filtered, paginated classes and structs
//	GET  /api/get-filtered-classes   the same query as ?filter=...&page=&limitPerPage=
//	GET  /api/get-class?classname=   one class with its ancestors and children
//	GET  /api/get-struct?structname= one struct
//	GET  /api/get-enum?enumname=     one enum
//	GET  /healthz                    snapshot status
//	GET  /metrics                    Prometheus exposition
//	GET  /debug/pprof/*              pprof and runtime stats, when Config.Profiling is set
//
// Every request reads exactly one snapshot from the store, so a rebuild
// never changes the catalogue underneath a request.
package api

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/conduit-lang/classview/internal/metrics"
	"github.com/conduit-lang/classview/internal/snapshot"
	"github.com/conduit-lang/classview/internal/web/cache"
	"github.com/conduit-lang/classview/internal/web/middleware"
	"github.com/conduit-lang/classview/internal/web/profiling"
	"github.com/conduit-lang/classview/internal/web/ratelimit"
	"github.com/conduit-lang/classview/internal/web/request"
	"github.com/conduit-lang/classview/internal/web/response"
	"github.com/conduit-lang/classview/internal/web/router"
)

// Defaults applied by New to zero Config fields.
const (
	DefaultPageSize    = 50
	DefaultMaxPageSize = 500
	DefaultCacheTTL    = 5 * time.Minute
)

// Snapshots is the part of *snapshot.Store the handlers need.
type Snapshots interface {
	Get(ctx context.Context) (*snapshot.Snapshot, error)
	Status() snapshot.Status
}

// Config tunes the handlers.
type Config struct {
	DefaultPageSize int
	MaxPageSize     int

	// CacheTTL is how long an encoded query page stays cached.
	CacheTTL time.Duration

	// RequestTimeout bounds each request; zero disables the timeout.
	RequestTimeout time.Duration

	// MaxBodySize bounds POST bodies in bytes.
	MaxBodySize int64

	// Profiling mounts the pprof endpoints under /debug/pprof.
	Profiling bool

	// TrustProxy keys rate limits by X-Forwarded-For instead of the peer
	// address.
	TrustProxy bool
}

// API holds the handler dependencies.
type API struct {
	cfg     Config
	store   Snapshots
	cache   cache.Cache
	metrics *metrics.Metrics
	limiter ratelimit.Limiter
	log     *zap.Logger
	parser  *request.Parser
}

// Option configures optional API dependencies.
type Option func(*API)

// WithCache caches encoded query pages in c. Without it every query is
// evaluated.
func WithCache(c cache.Cache) Option {
	return func(a *API) {
		a.cache = c
	}
}

// WithMetrics records HTTP, query and cache metrics in m and serves
// /metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(a *API) {
		a.metrics = m
	}
}

// WithRateLimit limits each client with l. Health checks and metric scrapes
// are exempt.
func WithRateLimit(l ratelimit.Limiter) Option {
	return func(a *API) {
		a.limiter = l
	}
}

// WithLogger sets the logger used for access logs and handler errors.
func WithLogger(l *zap.Logger) Option {
	return func(a *API) {
		if l != nil {
			a.log = l
		}
	}
}

// New creates the API over store.
func New(store Snapshots, cfg Config, opts ...Option) *API {
	if cfg.DefaultPageSize <= 0 {
		cfg.DefaultPageSize = DefaultPageSize
	}
	if cfg.MaxPageSize <= 0 {
		cfg.MaxPageSize = DefaultMaxPageSize
	}
	if cfg.DefaultPageSize > cfg.MaxPageSize {
		cfg.DefaultPageSize = cfg.MaxPageSize
	}
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = DefaultCacheTTL
	}

	parser := request.NewParserWithMaxSize(cfg.MaxBodySize)
	// Unknown body fields are rejected.
	parser.Strict = true

	a := &API{
		cfg:    cfg,
		store:  store,
		log:    zap.NewNop(),
		parser: parser,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Router builds the router with the middleware stack and every route.
func (a *API) Router() *router.Router {
	r := router.NewRouter()

	stack := []middleware.Middleware{
		middleware.RequestID(a.log),
		middleware.Recovery(a.log),
		middleware.Logging(a.log),
	}
	if a.metrics != nil {
		stack = append(stack, middleware.Metrics(a.metrics))
	}
	if a.limiter != nil {
		keyFunc := middleware.IPKeyFunc
		if a.cfg.TrustProxy {
			keyFunc = middleware.ForwardedIPKeyFunc
		}
		stack = append(stack, middleware.RateLimitWithConfig(middleware.RateLimitConfig{
			Limiter:   a.limiter,
			KeyFunc:   keyFunc,
			SkipPaths: []string{"/healthz", "/metrics"},
			Logger:    a.log,
		}))
	}
	stack = append(stack,
		middleware.Compression(),
		middleware.Timeout(a.cfg.RequestTimeout),
	)
	r.Use(stack...)

	r.Post("/api/get-filtered-classes", a.postFilteredClasses).
		Named("filtered-classes").
		Describe("Filtered, paginated classes and structs").
		Body("filters", "[]string", false).
		Body("page", "int", false).
		Body("limitPerPage", "int", false)
	r.Get("/api/get-filtered-classes", a.getFilteredClasses).
		Named("filtered-classes-get").
		Describe("Filtered, paginated classes and structs from query parameters").
		Query("filter", "[]string", false).
		Query("page", "int", false).
		Query("limitPerPage", "int", false)
	r.Get("/api/get-class", a.getClass).
		Named("class").
		Describe("Class by full name, case-insensitive").
		Query("classname", "string", true)
	r.Get("/api/get-struct", a.getStruct).
		Named("struct").
		Describe("Struct by full name, case-insensitive").
		Query("structname", "string", true)
	r.Get("/api/get-enum", a.getEnum).
		Named("enum").
		Describe("Enum by full name, case-insensitive").
		Query("enumname", "string", true)
	r.Get("/healthz", a.healthz).
		Named("health").
		Describe("Snapshot status")
	if a.metrics != nil {
		r.Handle("/metrics", a.metrics.Handler()).
			Named("metrics").
			Describe("Prometheus metrics")
	}
	if a.cfg.Profiling {
		r.Handle(profiling.DefaultPath+"/*", profiling.Handler(profiling.DefaultConfig())).
			Named("pprof").
			Describe("Runtime profiles")
	}

	return r
}

// Handler returns Router as an http.Handler.
func (a *API) Handler() http.Handler {
	return a.Router()
}

// loadSnapshot returns the snapshot for this request, answering 503 itself when
// none can be built.
func (a *API) loadSnapshot(w http.ResponseWriter, r *http.Request) (*snapshot.Snapshot, bool) {
	snap, err := a.store.Get(r.Context())
	if err != nil {
		middleware.Logger(r.Context()).Error("no snapshot available", zap.Error(err))
		response.RenderServiceUnavailable(w, "catalogue is not available")
		return nil, false
	}
	return snap, true
}

func (a *API) healthz(w http.ResponseWriter, r *http.Request) {
	status := a.store.Status()
	code := http.StatusOK
	if !status.Ready {
		code = http.StatusServiceUnavailable
	}
	response.RenderJSON(w, code, status)
}
