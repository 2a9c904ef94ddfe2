package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"logistics-route-service/internal/adapters/events"
	"logistics-route-service/internal/adapters/history"
	"logistics-route-service/internal/adapters/repositories"
	"logistics-route-service/internal/api/dto"
	"logistics-route-service/internal/forecast"
	"logistics-route-service/internal/genetic"
	"logistics-route-service/internal/services"
)

type testServer struct {
	handler http.Handler
	broker  *events.Broker
}

func newTestServer(t *testing.T, rps float64, burst int) testServer {
	t.Helper()

	catalog, err := repositories.LoadCatalogJSON("../../data/seeds/catalog.json")
	require.NoError(t, err)
	store := repositories.NewMemoryCatalog(catalog)
	broker := events.NewBroker()

	g := genetic.DefaultConfig()
	g.TimeBudget = 0
	g.Seed = 42

	planner := &services.RoutePlanner{
		Locations: store,
		Vehicles:  store,
		History:   history.NewMemoryHistory(100),
		Events:    broker,
		Assembler: services.NewRouteAssembler(services.AssemblerOptions{
			SpeedKmh:        40,
			StopServiceTime: 15 * time.Minute,
			HeuristicWeight: 0.5,
			Genetic:         g,
		}),
		Timeout: 10 * time.Second,
	}
	inventory := &services.InventoryService{Repo: store, Warehouses: store, Events: broker, Forecaster: forecast.New(30)}

	h := NewRouter(Deps{
		Locations: store,
		Vehicles:  store,
		Planner:   planner,
		Inventory: inventory,
		Analytics: &services.AnalyticsService{Planner: planner, Vehicles: store, Inventory: inventory},
		Broker:    broker,
		RateRPS:   rps,
		RateBurst: burst,
	})
	return testServer{handler: h, broker: broker}
}

func (s testServer) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rdr *bytes.Reader
	if body != "" {
		rdr = bytes.NewReader([]byte(body))
	} else {
		rdr = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, rdr)
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), "body: %s", rec.Body.String())
	return v
}

type errorBody struct {
	Error    string `json:"error"`
	Category string `json:"category"`
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, 0, 0)

	rec := s.do(t, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(requestIDHeader))
}

func TestMethodNotAllowed(t *testing.T) {
	s := newTestServer(t, 0, 0)

	rec := s.do(t, http.MethodGet, "/v1/routes/optimize", "")

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestOptimize_GeneticScenario(t *testing.T) {
	s := newTestServer(t, 0, 0)

	rec := s.do(t, http.MethodPost, "/v1/routes/optimize",
		`{"start":"Depot A","destinations":["Customer 1","Customer 2","Customer 3"],"algorithm":"genetic"}`)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	res := decode[dto.RouteResponse](t, rec)
	assert.Equal(t, []string{"Depot A", "Customer 2", "Customer 1", "Customer 3"}, res.Stops)
	assert.Equal(t, 13.36, res.TotalDistanceKm)
	assert.Equal(t, 1.08, res.EstimatedTimeHr)
	assert.Equal(t, "genetic", res.Algorithm)
	require.NotNil(t, res.Vehicle)
	assert.Equal(t, "V001", res.Vehicle.ID)
	assert.Len(t, res.Legs, 3)
	assert.NotEmpty(t, res.ID)
}

func TestOptimize_Errors(t *testing.T) {
	s := newTestServer(t, 0, 0)

	tests := []struct {
		name     string
		body     string
		status   int
		category string
	}{
		{"unsupported algorithm", `{"start":"Depot A","destinations":["Customer 1"],"algorithm":"bogus"}`, 400, "UNSUPPORTED_ALGORITHM"},
		{"empty destinations", `{"start":"Depot A","destinations":[],"algorithm":"astar"}`, 400, "INVALID_REQUEST"},
		{"start not a depot", `{"start":"Customer 1","destinations":["Customer 2"],"algorithm":"astar"}`, 400, "INVALID_REQUEST"},
		{"unknown vehicle", `{"start":"Depot A","destinations":["Customer 2"],"vehicle_id":"V999","algorithm":"astar"}`, 400, "INVALID_REQUEST"},
		{"unknown field", `{"start":"Depot A","destinations":["Customer 2"],"algorithm":"astar","speed":3}`, 400, "INVALID_REQUEST"},
		{"two objects", `{"start":"Depot A"}{"start":"Depot B"}`, 400, "INVALID_REQUEST"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(t, http.MethodPost, "/v1/routes/optimize", tt.body)
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.category, decode[errorBody](t, rec).Category)
		})
	}
}

func TestRoutesHistoryAndStats(t *testing.T) {
	s := newTestServer(t, 0, 0)

	for _, algo := range []string{"dijkstra", "astar"} {
		rec := s.do(t, http.MethodPost, "/v1/routes/optimize",
			`{"start":"Depot A","destinations":["Customer 1","Customer 2","Customer 3"],"algorithm":"`+algo+`"}`)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	}

	list := decode[dto.ListRoutesResponse](t, s.do(t, http.MethodGet, "/v1/routes?limit=1", ""))
	require.Len(t, list.Routes, 1)
	assert.Equal(t, "astar", list.Routes[0].Algorithm)

	stats := decode[dto.RouteStatsResponse](t, s.do(t, http.MethodGet, "/v1/routes/stats", ""))
	assert.Equal(t, 2, stats.Count)
	assert.Equal(t, 1, stats.ByAlgorithm["dijkstra"])
	assert.InDelta(t, 14.38, stats.AverageDistanceKm, 0.01)

	rec := s.do(t, http.MethodGet, "/v1/routes?limit=abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalytics(t *testing.T) {
	s := newTestServer(t, 0, 0)

	rec := s.do(t, http.MethodPost, "/v1/routes/optimize",
		`{"start":"Depot A","destinations":["Customer 1","Customer 2","Customer 3"],"algorithm":"genetic"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodGet, "/v1/analytics", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	res := decode[dto.AnalyticsResponse](t, rec)

	assert.Equal(t, dto.RouteKPIs{Total: 1, TotalDistanceKm: 13.36, AverageDistanceKm: 13.36, TotalEstimatedHours: 1.08}, res.Routes)
	assert.Equal(t, dto.VehicleKPIs{Total: 5, Available: 4, Maintenance: 1}, res.Vehicles)
	assert.Equal(t, dto.InventoryKPIs{TotalItems: 12, LowStock: 3, StockHealthPercentage: 75}, res.Inventory)

	require.Len(t, res.Warehouses, 2)
	assert.Equal(t, dto.WarehouseResponse{
		ID: "WH-001", Name: "Depot A", Location: "Depot A",
		Capacity: 10000, CurrentUtilization: 6500, UtilizationPercentage: 65,
		TotalItems: 7, LowStockItems: 1,
	}, res.Warehouses[0])
	assert.Equal(t, 5, res.Warehouses[1].TotalItems)
	assert.Equal(t, 2, res.Warehouses[1].LowStockItems)
}

func TestWarehouseEndpoints(t *testing.T) {
	s := newTestServer(t, 0, 0)

	list := decode[dto.ListWarehousesResponse](t, s.do(t, http.MethodGet, "/v1/warehouses", ""))
	require.Len(t, list.Warehouses, 2)
	assert.Equal(t, "WH-002", list.Warehouses[1].ID)

	rec := s.do(t, http.MethodGet, "/v1/warehouses/WH-002", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	wh := decode[dto.WarehouseResponse](t, rec)
	assert.Equal(t, "Depot B", wh.Name)
	assert.Equal(t, 65.0, wh.UtilizationPercentage)

	rec = s.do(t, http.MethodGet, "/v1/warehouses/WH-404", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", decode[errorBody](t, rec).Category)
}

func TestFleet(t *testing.T) {
	s := newTestServer(t, 0, 0)

	rec := s.do(t, http.MethodPost, "/v1/routes/fleet", `{
		"start": "Depot A",
		"destinations": ["Customer 1","Customer 2","Customer 3","Customer 4","Customer 5","Customer 6","Customer 7","Customer 8"],
		"algorithm": "astar"
	}`)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	res := decode[dto.ListRoutesResponse](t, rec)
	require.Len(t, res.Routes, 4)
	for _, r := range res.Routes {
		require.NotNil(t, r.Vehicle)
		assert.NotEqual(t, "V005", r.Vehicle.ID)
		assert.Len(t, r.Stops, 3)
	}
}

func TestCatalogEndpoints(t *testing.T) {
	s := newTestServer(t, 0, 0)

	locs := decode[dto.ListLocationsResponse](t, s.do(t, http.MethodGet, "/v1/locations?depot=true", ""))
	assert.Len(t, locs.Locations, 2)

	vehicles := decode[dto.ListVehiclesResponse](t, s.do(t, http.MethodGet, "/v1/vehicles?status=available", ""))
	assert.Len(t, vehicles.Vehicles, 4)

	rec := s.do(t, http.MethodGet, "/v1/vehicles?status=flying", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestInventoryEndpoints(t *testing.T) {
	s := newTestServer(t, 0, 0)

	list := decode[dto.ListInventoryResponse](t, s.do(t, http.MethodGet, "/v1/inventory?category=medical", ""))
	assert.Len(t, list.Items, 3)

	rec := s.do(t, http.MethodGet, "/v1/inventory/INV-404", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", decode[errorBody](t, rec).Category)

	rec = s.do(t, http.MethodGet, "/v1/inventory/INV-012/forecast?days=7", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	fc := decode[dto.ForecastResponse](t, rec)
	assert.Equal(t, "INV-012", fc.ItemID)
	assert.Equal(t, 7, fc.HorizonDays)
	assert.True(t, fc.ReorderRecommended)
	assert.GreaterOrEqual(t, fc.EstimatedStockAfter, 0.0)

	rec = s.do(t, http.MethodGet, "/v1/inventory/INV-012/forecast?days=0", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodGet, "/v1/inventory/INV-001/turnover", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, 30, decode[dto.TurnoverResponse](t, rec).PeriodDays)

	alerts := decode[dto.ListAlertsResponse](t, s.do(t, http.MethodGet, "/v1/inventory/alerts", ""))
	require.NotEmpty(t, alerts.Alerts)
	for _, a := range alerts.Alerts {
		assert.Equal(t, "warning", a.Severity, "seed has no out-of-stock items")
	}
}

func TestAdjustStock(t *testing.T) {
	s := newTestServer(t, 0, 0)

	rec := s.do(t, http.MethodPost, "/v1/inventory/INV-012/stock", `{"quantity_change": -9}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = s.do(t, http.MethodPost, "/v1/inventory/INV-012/stock", `{"quantity_change": 0}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPost, "/v1/inventory/INV-012/stock", `{"quantity_change": -8}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	item := decode[dto.InventoryItemResponse](t, rec)
	assert.Equal(t, 0.0, item.Quantity)
	assert.Equal(t, "out_of_stock", item.Status)

	alerts := decode[dto.ListAlertsResponse](t, s.do(t, http.MethodGet, "/v1/inventory/alerts", ""))
	assert.Equal(t, "critical", alerts.Alerts[0].Severity)
	assert.Equal(t, "INV-012", alerts.Alerts[0].ItemID)
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t, 0, 0)
	s.do(t, http.MethodGet, "/health", "")

	rec := s.do(t, http.MethodGet, "/metrics", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `http_requests_total{method="GET",path="GET /health",status="200"}`)
}

func TestRateLimit(t *testing.T) {
	s := newTestServer(t, 0.001, 1)

	first := s.do(t, http.MethodGet, "/health", "")
	second := s.do(t, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Equal(t, "RATE_LIMITED", decode[errorBody](t, second).Category)
}

func TestEventStream(t *testing.T) {
	s := newTestServer(t, 0, 0)
	srv := httptest.NewServer(s.handler)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/v1/events/ws?topic=routes"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	res, err := http.Post(srv.URL+"/v1/routes/optimize", "application/json",
		strings.NewReader(`{"start":"Depot B","destinations":["Customer 4"],"algorithm":"dijkstra"}`))
	require.NoError(t, err)
	res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var evt dto.EventResponse
	require.NoError(t, conn.ReadJSON(&evt))
	assert.Equal(t, "route.planned", evt.Type)
	assert.Equal(t, "routes", evt.Topic)
	assert.Equal(t, "Depot B", evt.Data["start"])
}

func TestEventStream_UnknownTopic(t *testing.T) {
	s := newTestServer(t, 0, 0)

	rec := s.do(t, http.MethodGet, "/v1/events/ws?topic=weather", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
