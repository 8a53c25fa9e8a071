// Package metrics constructs the metrics the application will track.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cms_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	latency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "cms_http_request_duration_seconds",
		Help:    "Duration of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	failures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cms_http_errors_total",
		Help: "Total number of requests that returned an error",
	})

	panics = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cms_http_panics_total",
		Help: "Total number of recovered panics",
	})

	guardDenials = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cms_guard_denials_total",
		Help: "Requests rejected by the authentication, tenant or role guard",
	}, []string{"guard"})
)

// Guard names used as the label of AddGuardDenial.
const (
	GuardAuthenticate = "authenticate"
	GuardTenant       = "tenant"
	GuardAuthorize    = "authorize"
)

// ObserveRequest records a completed request. The path is the route pattern,
// not the raw URL, to keep label cardinality bounded.
func ObserveRequest(method string, path string, status string, d time.Duration) {
	requests.WithLabelValues(method, path, status).Inc()
	latency.WithLabelValues(method, path).Observe(d.Seconds())
}

// AddErrors increments the errors metric by 1.
func AddErrors() {
	failures.Inc()
}

// AddPanics increments the panics metric by 1.
func AddPanics() {
	panics.Inc()
}

// AddGuardDenial increments the denial counter of the named guard.
func AddGuardDenial(guard string) {
	guardDenials.WithLabelValues(guard).Inc()
}
