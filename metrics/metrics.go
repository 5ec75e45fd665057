package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	registry = prometheus.NewRegistry()

	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "path"},
	)

	layoutMutations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_layout_mutations_total",
			Help: "Dashboard layout mutations by operation and whether they changed the layout",
		},
		[]string{"op", "changed"},
	)

	layoutPersistFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "dashboard_layout_persist_failures_total",
			Help: "Layout writes that failed to reach storage",
		},
	)

	layoutFallbacks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_layout_fallbacks_total",
			Help: "Layout loads that fell back to the default layout",
		},
		[]string{"reason"},
	)

	backendRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portfolio_backend_requests_total",
			Help: "GraphQL calls to the portfolio backend",
		},
		[]string{"operation", "status"},
	)

	backendCacheHits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portfolio_backend_cache_total",
			Help: "Read-through cache lookups for backend data",
		},
		[]string{"result"},
	)
)

func init() {
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		httpRequestsTotal,
		httpRequestDuration,
		layoutMutations,
		layoutPersistFailures,
		layoutFallbacks,
		backendRequests,
		backendCacheHits,
	)
}

// Handler serves the registry in the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}

func RecordHTTPRequest(method, path string, status int, elapsed time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(method, path).Observe(elapsed.Seconds())
}

func RecordLayoutMutation(op string, changed bool) {
	layoutMutations.WithLabelValues(op, strconv.FormatBool(changed)).Inc()
}

func RecordLayoutPersistFailure() {
	layoutPersistFailures.Inc()
}

func RecordLayoutFallback(reason string) {
	layoutFallbacks.WithLabelValues(reason).Inc()
}

func RecordBackendRequest(operation string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	backendRequests.WithLabelValues(operation, status).Inc()
}

func RecordCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	backendCacheHits.WithLabelValues(result).Inc()
}
