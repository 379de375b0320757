// Package metrics registers the Prometheus collectors for route queries.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for RouteRequests.
const (
	OutcomeFound       = "found"
	OutcomeUnreachable = "unreachable"
	OutcomeNotFound    = "not_found"
	OutcomeInvalid     = "invalid"
)

var (
	RouteRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "citynav_route_requests_total",
		Help: "Route queries by algorithm and outcome",
	}, []string{"algorithm", "outcome"})

	SearchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "citynav_search_duration_seconds",
		Help:    "Time spent inside a single search",
		Buckets: []float64{0.000001, 0.00001, 0.0001, 0.001, 0.01, 0.1},
	}, []string{"algorithm"})

	SearchSteps = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "citynav_search_steps",
		Help:    "Nodes finalized per search",
		Buckets: []float64{1, 2, 5, 10, 20, 50, 100, 500},
	}, []string{"algorithm"})

	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "citynav_cache_lookups_total",
		Help: "Route cache lookups by result (hit, miss, error)",
	}, []string{"result"})

	GraphNodes = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "citynav_graph_nodes",
		Help: "Nodes in the loaded graph",
	})
)

// ObserveSearch records one completed search.
func ObserveSearch(algorithm string, elapsed time.Duration, steps int) {
	SearchDuration.WithLabelValues(algorithm).Observe(elapsed.Seconds())
	SearchSteps.WithLabelValues(algorithm).Observe(float64(steps))
}

// CountRoute increments the request counter.
func CountRoute(algorithm, outcome string) {
	RouteRequests.WithLabelValues(algorithm, outcome).Inc()
}

// CountCache increments the cache lookup counter.
func CountCache(result string) {
	CacheLookups.WithLabelValues(result).Inc()
}
