package monitoring

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const namespace = "cookbook"

// MetricsCollector handles Prometheus metrics collection
type MetricsCollector struct {
	logger   *zap.Logger
	registry *prometheus.Registry

	// HTTP metrics
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpResponseSize    *prometheus.HistogramVec

	// Catalog metrics
	searchesTotal       *prometheus.CounterVec
	searchResults       prometheus.Histogram
	classifierRuleHits  *prometheus.CounterVec
	randomPicksTotal    *prometheus.CounterVec
	recipesAddedTotal   prometheus.Counter
	recipesUpdatedTotal prometheus.Counter
	commentsAddedTotal  prometheus.Counter
	favoriteToggles     *prometheus.CounterVec
	favoritesSize       prometheus.Gauge
	eventsPublished     *prometheus.CounterVec

	// Rate limiting
	rateLimitedTotal prometheus.Counter
}

// NewMetricsCollector creates a collector backed by its own registry
func NewMetricsCollector(logger *zap.Logger) *MetricsCollector {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(registry)

	return &MetricsCollector{
		logger:   logger.Named("metrics"),
		registry: registry,

		httpRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status_code"},
		),
		httpRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route", "status_code"},
		),
		httpResponseSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_response_size_bytes",
				Help:      "HTTP response size in bytes",
				Buckets:   prometheus.ExponentialBuckets(100, 10, 6),
			},
			[]string{"method", "route"},
		),

		searchesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "searches_total",
				Help:      "Total number of catalog searches by outcome",
			},
			[]string{"outcome"},
		),
		searchResults: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "search_results",
				Help:      "Number of recipes returned per search",
				Buckets:   []float64{0, 1, 2, 5, 10, 20, 50, 100},
			},
		),
		classifierRuleHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "classifier_rule_hits_total",
				Help:      "Total number of classified queries by matching rule",
			},
			[]string{"rule"},
		),
		randomPicksTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "random_picks_total",
				Help:      "Total number of random recipe picks by outcome",
			},
			[]string{"outcome"},
		),
		recipesAddedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "recipes_added_total",
				Help:      "Total number of recipes added",
			},
		),
		recipesUpdatedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "recipes_updated_total",
				Help:      "Total number of recipes updated",
			},
		),
		commentsAddedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "comments_added_total",
				Help:      "Total number of comments added",
			},
		),
		favoriteToggles: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "favorite_toggles_total",
				Help:      "Total number of favorite toggles by resulting state",
			},
			[]string{"state"},
		),
		favoritesSize: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "favorites",
				Help:      "Number of recipes currently marked as favorite",
			},
		),
		eventsPublished: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "events_published_total",
				Help:      "Total number of domain events published",
			},
			[]string{"event"},
		),
		rateLimitedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rate_limited_requests_total",
				Help:      "Total number of requests rejected by the rate limiter",
			},
		),
	}
}

// Registry returns the registry holding every collector
func (m *MetricsCollector) Registry() *prometheus.Registry {
	return m.registry
}

// HTTPRequest records one served request
func (m *MetricsCollector) HTTPRequest(method, route string, status, size int, duration time.Duration) {
	statusCode := strconv.Itoa(status)
	m.httpRequestsTotal.WithLabelValues(method, route, statusCode).Inc()
	m.httpRequestDuration.WithLabelValues(method, route, statusCode).Observe(duration.Seconds())
	m.httpResponseSize.WithLabelValues(method, route).Observe(float64(size))
}

// Search records a catalog search and its result count
func (m *MetricsCollector) Search(results int) {
	outcome := "hit"
	if results == 0 {
		outcome = "empty"
	}
	m.searchesTotal.WithLabelValues(outcome).Inc()
	m.searchResults.Observe(float64(results))
}

// ClassifierRule records which rule classified a query. Unmatched queries
// are recorded under "none".
func (m *MetricsCollector) ClassifierRule(rule string) {
	if rule == "" {
		rule = "none"
	}
	m.classifierRuleHits.WithLabelValues(rule).Inc()
}

// RandomPick records a random recipe pick
func (m *MetricsCollector) RandomPick(found bool) {
	outcome := "found"
	if !found {
		outcome = "empty"
	}
	m.randomPicksTotal.WithLabelValues(outcome).Inc()
}

// RecipeAdded records an added recipe
func (m *MetricsCollector) RecipeAdded() {
	m.recipesAddedTotal.Inc()
}

// RecipeUpdated records an updated recipe
func (m *MetricsCollector) RecipeUpdated() {
	m.recipesUpdatedTotal.Inc()
}

// CommentAdded records an added comment
func (m *MetricsCollector) CommentAdded() {
	m.commentsAddedTotal.Inc()
}

// FavoriteToggled records a toggle and the new size of the favorites set
func (m *MetricsCollector) FavoriteToggled(favorite bool, size int) {
	state := "added"
	if !favorite {
		state = "removed"
	}
	m.favoriteToggles.WithLabelValues(state).Inc()
	m.favoritesSize.Set(float64(size))
}

// EventPublished records a published domain event
func (m *MetricsCollector) EventPublished(name string) {
	m.eventsPublished.WithLabelValues(name).Inc()
}

// RateLimited records a request rejected by the rate limiter
func (m *MetricsCollector) RateLimited() {
	m.rateLimitedTotal.Inc()
}

// Handler returns the Prometheus metrics HTTP handler
func (m *MetricsCollector) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		ErrorLog: zap.NewStdLog(m.logger),
	})
}
