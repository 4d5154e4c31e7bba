// Package metrics exposes Prometheus collectors for the HTTP server and the
// team service.
package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "accresults",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "The total number of HTTP requests",
	}, []string{"method", "route", "status"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "accresults",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	captainConflicts = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "accresults",
		Subsystem: "teams",
		Name:      "captain_conflicts_total",
		Help:      "The total number of captain assignments rejected because the user already captains a team",
	})

	rosterOrphans = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "accresults",
		Subsystem: "teams",
		Name:      "orphaned_profiles",
		Help:      "Profiles pointing at a team that no longer exists, as of the last roster audit",
	})
)

// UnmatchedRoute labels requests that no registered route handled.
const UnmatchedRoute = "unmatched"

// ObserveRequest records one completed HTTP request. pattern is the ServeMux
// pattern that served it, or "" when nothing matched.
func ObserveRequest(method, pattern string, status int, elapsed time.Duration) {
	method, route := methodLabel(method), RouteLabel(pattern)
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func CaptainConflict() {
	captainConflicts.Inc()
}

func SetOrphanedProfiles(n int64) {
	rosterOrphans.Set(float64(n))
}

// RouteLabel turns a ServeMux pattern such as "GET /teams/{id}" into the
// route label "/teams/{id}". The method lives in its own label.
func RouteLabel(pattern string) string {
	if pattern == "" {
		return UnmatchedRoute
	}
	if _, path, ok := strings.Cut(pattern, " "); ok {
		return path
	}
	return pattern
}

func methodLabel(method string) string {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut,
		http.MethodPatch, http.MethodDelete, http.MethodOptions:
		return method
	default:
		return "OTHER"
	}
}

// Handler serves the default registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}
