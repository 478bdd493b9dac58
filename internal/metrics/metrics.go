// Package metrics exposes classview's Prometheus collectors on a private
// registry.
//
// All recording methods are safe to call on a nil *Metrics, so components
// can take an optional metrics sink without nil checks.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/conduit-lang/classview/runtime/catalog"
)

const namespace = "classview"

// Query outcomes used as the result label.
const (
	ResultOK      = "ok"
	ResultInvalid = "invalid"
	ResultError   = "error"
)

// Cache outcomes used as the result label.
const (
	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheError = "error"
)

// Metrics holds every collector classview records.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	snapshotBuilds        *prometheus.CounterVec
	snapshotBuildDuration prometheus.Histogram
	snapshotLastBuild     prometheus.Gauge
	catalogueEntities     *prometheus.GaugeVec
	catalogueIssues       *prometheus.GaugeVec

	queries       *prometheus.CounterVec
	queryDuration prometheus.Histogram
	queryMatched  prometheus.Histogram

	cacheRequests *prometheus.CounterVec
}

// New creates the collectors and registers them, together with the Go
// runtime and process collectors, on a fresh registry.
func New() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.initializeHTTPMetrics()
	m.initializeSnapshotMetrics()
	m.initializeQueryMetrics()

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

func (m *Metrics) initializeHTTPMetrics() {
	m.httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, route pattern and status code",
		},
		[]string{"method", "route", "status"},
	)
	m.httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by method and route pattern",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "route"},
	)
	m.registry.MustRegister(m.httpRequests, m.httpDuration)
}

func (m *Metrics) initializeSnapshotMetrics() {
	m.snapshotBuilds = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "snapshot",
			Name:      "builds_total",
			Help:      "Snapshot build attempts by result",
		},
		[]string{"result"},
	)
	m.snapshotBuildDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "snapshot",
			Name:      "build_duration_seconds",
			Help:      "Time to load and index the catalogue",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
	)
	m.snapshotLastBuild = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "snapshot",
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last successful build",
		},
	)
	m.catalogueEntities = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "catalogue",
			Name:      "entities",
			Help:      "Entities in the served snapshot by kind",
		},
		[]string{"kind"},
	)
	m.catalogueIssues = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "catalogue",
			Name:      "issues",
			Help:      "Integrity issues in the served snapshot by type",
		},
		[]string{"issue"},
	)
	m.registry.MustRegister(
		m.snapshotBuilds,
		m.snapshotBuildDuration,
		m.snapshotLastBuild,
		m.catalogueEntities,
		m.catalogueIssues,
	)
}

func (m *Metrics) initializeQueryMetrics() {
	m.queries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "query",
			Name:      "total",
			Help:      "Filtered queries by result",
		},
		[]string{"result"},
	)
	m.queryDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "query",
			Name:      "duration_seconds",
			Help:      "Time to evaluate a filtered query, excluding cache hits",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
	)
	m.queryMatched = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "query",
			Name:      "matched_entities",
			Help:      "Entities matched per evaluated query before pagination",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 9),
		},
	)
	m.cacheRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "requests_total",
			Help:      "Response cache lookups by result",
		},
		[]string{"result"},
	)
	m.registry.MustRegister(m.queries, m.queryDuration, m.queryMatched, m.cacheRequests)
}

// Registry returns the underlying Prometheus registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}

// ObserveRequest records a finished HTTP request.
func (m *Metrics) ObserveRequest(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// ObserveBuild records a snapshot build attempt.
func (m *Metrics) ObserveBuild(took time.Duration, err error) {
	if m == nil {
		return
	}
	m.snapshotBuildDuration.Observe(took.Seconds())
	if err != nil {
		m.snapshotBuilds.WithLabelValues(ResultError).Inc()
		return
	}
	m.snapshotBuilds.WithLabelValues(ResultOK).Inc()
	m.snapshotLastBuild.SetToCurrentTime()
}

// SetCatalogue publishes the size and integrity counts of the served
// snapshot.
func (m *Metrics) SetCatalogue(stats catalog.Stats) {
	if m == nil {
		return
	}
	m.catalogueEntities.WithLabelValues("class").Set(float64(stats.Classes))
	m.catalogueEntities.WithLabelValues("struct").Set(float64(stats.Structs))
	m.catalogueEntities.WithLabelValues("enum").Set(float64(stats.Enums))
	m.catalogueEntities.WithLabelValues("property").Set(float64(stats.Properties))
	m.catalogueEntities.WithLabelValues("function").Set(float64(stats.Functions))

	m.catalogueIssues.WithLabelValues("duplicate").Set(float64(stats.Duplicates))
	m.catalogueIssues.WithLabelValues("dangling_parent").Set(float64(stats.DanglingParents))
	m.catalogueIssues.WithLabelValues("unresolved_enum").Set(float64(stats.UnresolvedEnums))
}

// ObserveQuery records an evaluated query. matched is ignored unless result
// is ResultOK.
func (m *Metrics) ObserveQuery(result string, took time.Duration, matched int) {
	if m == nil {
		return
	}
	m.queries.WithLabelValues(result).Inc()
	if result != ResultOK {
		return
	}
	m.queryDuration.Observe(took.Seconds())
	m.queryMatched.Observe(float64(matched))
}

// ObserveCache records a response cache lookup.
func (m *Metrics) ObserveCache(result string) {
	if m == nil {
		return
	}
	m.cacheRequests.WithLabelValues(result).Inc()
}
