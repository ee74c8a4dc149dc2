// Package observability provides the Prometheus collectors and OpenTelemetry tracer.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "devconnect_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// CacheLookups counts cache-aside lookups by key prefix and result (hit, miss).
	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "devconnect_cache_lookups_total",
		Help: "Cache-aside lookups by key prefix and result",
	}, []string{"prefix", "result"})

	// DatabaseQueryLatency records repository latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "devconnect_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// BlogSearches counts blog listing requests by whether a search term or tag was given.
	BlogSearches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "devconnect_blog_searches_total",
		Help: "Blog listing requests by filter kind",
	}, []string{"filter"})

	// PostViews counts blog post reads.
	PostViews = promauto.NewCounter(prometheus.CounterOpts{
		Name: "devconnect_post_views_total",
		Help: "Total number of blog post reads",
	})

	// PortfolioViews counts public portfolio page reads.
	PortfolioViews = promauto.NewCounter(prometheus.CounterOpts{
		Name: "devconnect_portfolio_views_total",
		Help: "Total number of portfolio page reads",
	})

	// AuthAttempts counts login and registration outcomes.
	AuthAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "devconnect_auth_attempts_total",
		Help: "Authentication attempts by action and outcome",
	}, []string{"action", "outcome"})

	// WebSocketConnectionsTotal is the gauge of live feed connections.
	WebSocketConnectionsTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "devconnect_websocket_connections_total",
		Help: "Total number of active WebSocket connections",
	})

	// WebSocketBackpressureDrops counts messages dropped because a client send buffer was full.
	WebSocketBackpressureDrops = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "devconnect_websocket_backpressure_drops_total",
		Help: "Total number of WebSocket messages dropped due to backpressure",
	}, []string{"hub", "reason"})
)

// TrackQuery returns a function that records query latency when called (e.g. defer).
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
	}
}

// RecordAuth records the outcome of a login or registration attempt.
func RecordAuth(action string, ok bool) {
	outcome := "success"
	if !ok {
		outcome = "failure"
	}
	AuthAttempts.WithLabelValues(action, outcome).Inc()
}

// RecordBlogSearch classifies a blog listing request by the filters it used.
func RecordBlogSearch(search, tag string) {
	filter := "none"
	switch {
	case search != "" && tag != "":
		filter = "search_and_tag"
	case search != "":
		filter = "search"
	case tag != "":
		filter = "tag"
	}
	BlogSearches.WithLabelValues(filter).Inc()
}
