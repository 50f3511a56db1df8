// Package metrics exposes Prometheus instrumentation for the route engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RouteRequests counts route computations by kind
	// (route, route_to_room, interior, destinations) and outcome
	// (ok, not_found, error).
	RouteRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "campus_route_requests_total",
		Help: "Route computations by kind and outcome.",
	}, []string{"kind", "status"})

	// RouteDuration observes end-to-end route computation latency.
	RouteDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "campus_route_duration_seconds",
		Help:    "Route computation latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"kind"})

	// GraphInvalidations counts cache invalidations by scope
	// (campus or building).
	GraphInvalidations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "campus_graph_invalidations_total",
		Help: "Graph cache invalidations by scope.",
	}, []string{"scope"})
)
