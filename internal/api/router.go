package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"logistics-route-service/internal/api/handlers"
	"logistics-route-service/internal/platform/metrics"
	"logistics-route-service/internal/ports"
	"logistics-route-service/internal/services"
)

// Deps are the collaborators the HTTP layer needs.
type Deps struct {
	Locations ports.LocationRepository
	Vehicles  ports.VehicleRepository
	Planner   *services.RoutePlanner
	Inventory *services.InventoryService
	Analytics *services.AnalyticsService
	Broker    ports.EventBroker

	// RateRPS and RateBurst configure the per-client limiter. RateRPS <= 0 disables it.
	RateRPS   float64
	RateBurst int
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(d Deps) http.Handler {
	metrics.RegisterDefault()
	mux := http.NewServeMux()

	catalog := &handlers.CatalogHandler{Locations: d.Locations, Vehicles: d.Vehicles}
	routes := &handlers.RouteHandler{Planner: d.Planner}
	inventory := &handlers.InventoryHandler{Service: d.Inventory}
	analytics := &handlers.AnalyticsHandler{Service: d.Analytics}
	events := &handlers.EventsHandler{Broker: d.Broker}

	mux.HandleFunc("GET /health", handlers.Health)
	mux.HandleFunc("GET /debug", handlers.Debug)
	mux.Handle("GET /metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	mux.HandleFunc("GET /v1/locations", catalog.ListLocations)
	mux.HandleFunc("GET /v1/vehicles", catalog.ListVehicles)

	mux.HandleFunc("POST /v1/routes/optimize", routes.Optimize)
	mux.HandleFunc("POST /v1/routes/fleet", routes.Fleet)
	mux.HandleFunc("GET /v1/routes", routes.List)
	mux.HandleFunc("GET /v1/routes/stats", routes.Stats)

	mux.HandleFunc("GET /v1/inventory", inventory.List)
	mux.HandleFunc("GET /v1/inventory/alerts", inventory.Alerts)
	mux.HandleFunc("GET /v1/inventory/{id}", inventory.Get)
	mux.HandleFunc("GET /v1/inventory/{id}/forecast", inventory.Forecast)
	mux.HandleFunc("GET /v1/inventory/{id}/turnover", inventory.Turnover)
	mux.HandleFunc("POST /v1/inventory/{id}/stock", inventory.AdjustStock)

	mux.HandleFunc("GET /v1/warehouses", inventory.ListWarehouses)
	mux.HandleFunc("GET /v1/warehouses/{id}", inventory.GetWarehouse)

	mux.HandleFunc("GET /v1/analytics", analytics.Get)

	mux.HandleFunc("GET /v1/events/ws", events.Stream)

	var h http.Handler = mux
	h = rateLimitMiddleware(d.RateRPS, d.RateBurst)(h)
	h = metricsMiddleware(h)
	h = loggingMiddleware(h)
	h = requestIDMiddleware(h)
	return h
}
