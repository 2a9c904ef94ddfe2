// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	// Registry is the dedicated registry served by the API.
	Registry = prometheus.NewRegistry()

	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests."},
		[]string{"method", "path", "status"},
	)
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "http_request_duration_seconds", Help: "HTTP request duration in seconds.", Buckets: prometheus.DefBuckets},
		[]string{"method", "path", "status"},
	)
	RateLimited = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "http_rate_limited_total", Help: "Requests rejected by the rate limiter."},
	)

	// Optimizations counts route optimizations by algorithm and outcome (ok, error).
	Optimizations = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "route_optimizations_total", Help: "Route optimizations by algorithm and outcome."},
		[]string{"algorithm", "outcome"},
	)
	OptimizationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "route_optimization_duration_seconds", Help: "Route optimization duration in seconds.", Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10}},
		[]string{"algorithm"},
	)
	RouteDistance = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "route_distance_km", Help: "Total distance of planned routes in km.", Buckets: []float64{1, 5, 10, 25, 50, 100, 250}},
		[]string{"algorithm"},
	)
	GeneticGenerations = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "genetic_generations", Help: "Generations run per genetic optimization.", Buckets: []float64{1, 10, 25, 50, 100, 200, 500}},
		[]string{"stop_reason"},
	)

	Forecasts = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "inventory_forecasts_total", Help: "Demand forecasts by reorder recommendation."},
		[]string{"reorder"},
	)
	StockAdjustments = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "inventory_stock_adjustments_total", Help: "Stock changes by direction and outcome."},
		[]string{"direction", "outcome"},
	)
)

var regOnce sync.Once

// RegisterDefault registers every collector on Registry. Safe to call more than once.
func RegisterDefault() {
	regOnce.Do(func() {
		Registry.MustRegister(
			HTTPRequests,
			HTTPDuration,
			RateLimited,
			Optimizations,
			OptimizationDuration,
			RouteDistance,
			GeneticGenerations,
			Forecasts,
			StockAdjustments,
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	})
}
