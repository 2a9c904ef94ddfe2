package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"logistics-route-service/internal/adapters/events"
	"logistics-route-service/internal/adapters/history"
	"logistics-route-service/internal/adapters/repositories"
	"logistics-route-service/internal/api"
	"logistics-route-service/internal/config"
	"logistics-route-service/internal/forecast"
	"logistics-route-service/internal/platform/db"
	"logistics-route-service/internal/ports"
	"logistics-route-service/internal/services"
)

const historyCap = 1000

type stores struct {
	locations ports.LocationRepository
	vehicles  ports.VehicleRepository
	inventory  ports.InventoryRepository
	warehouses ports.WarehouseRepository
	history    ports.RouteHistory
	broker     ports.EventBroker
}

// main is the application composition root.
// It wires concrete adapters (Postgres or memory, Redis or memory) behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, cleanup, err := openStores(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer cleanup()

	opt := cfg.Optimizer
	planner := &services.RoutePlanner{
		Locations: st.locations,
		Vehicles:  st.vehicles,
		History:   st.history,
		Events:    st.broker,
		Assembler: services.NewRouteAssembler(services.AssemblerOptions{
			SpeedKmh:        opt.SpeedKmh,
			StopServiceTime: opt.StopServiceTime(),
			HeuristicWeight: opt.AStar.HeuristicWeight,
			Genetic:         opt.Genetic,
		}),
		Timeout: cfg.OptimizeTimeout,
	}
	inventory := &services.InventoryService{
		Repo:       st.inventory,
		Warehouses: st.warehouses,
		Events:     st.broker,
		Forecaster: forecast.New(opt.Forecast.Window),
	}

	router := api.NewRouter(api.Deps{
		Locations: st.locations,
		Vehicles:  st.vehicles,
		Planner:   planner,
		Inventory: inventory,
		Analytics: &services.AnalyticsService{Planner: planner, Vehicles: st.vehicles, Inventory: inventory},
		Broker:    st.broker,
		RateRPS:   cfg.RateRPS,
		RateBurst: cfg.RateBurst,
	})

	// WriteTimeout covers the optimization ceiling plus encoding.
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.OptimizeTimeout + 10*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	log.Printf("Server listening addr=:%s", cfg.Port)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
	log.Println("Server stopped")
}

// openStores picks Postgres when DATABASE_URL is set and the JSON seed otherwise;
// Redis carries history and events when REDIS_URL is set.
func openStores(ctx context.Context, cfg config.Config) (stores, func(), error) {
	var (
		st      stores
		closers []func()
	)
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	var sqlDB *sql.DB
	if cfg.DatabaseURL != "" {
		conn, err := db.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return stores{}, cleanup, err
		}
		closers = append(closers, func() { _ = conn.Close() })
		if err := repositories.Migrate(ctx, conn); err != nil {
			cleanup()
			return stores{}, func() {}, err
		}
		sqlDB = conn

		catalog := repositories.NewPostgresCatalog(conn)
		st.locations, st.vehicles, st.inventory, st.warehouses = catalog, catalog, catalog, catalog
		st.history = history.NewSQLHistory(conn)
		log.Println("Catalog store=postgres")
	} else {
		c, err := repositories.LoadCatalogJSON(cfg.SeedPath)
		if err != nil {
			return stores{}, cleanup, fmt.Errorf("open stores: %w", err)
		}
		catalog := repositories.NewMemoryCatalog(c)
		st.locations, st.vehicles, st.inventory, st.warehouses = catalog, catalog, catalog, catalog
		st.history = history.NewMemoryHistory(historyCap)
		log.Printf("Catalog store=memory seed=%s locations=%d vehicles=%d items=%d warehouses=%d",
			cfg.SeedPath, len(c.Locations), len(c.Vehicles), len(c.Inventory), len(c.Warehouses))
	}

	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			cleanup()
			return stores{}, func() {}, fmt.Errorf("open stores: parse REDIS_URL: %w", err)
		}
		rdb := redis.NewClient(opt)
		closers = append(closers, func() { _ = rdb.Close() })

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			cleanup()
			return stores{}, func() {}, fmt.Errorf("open stores: ping redis: %w", err)
		}

		st.broker = events.NewRedisBroker(rdb)
		if sqlDB == nil {
			st.history = history.NewRedisHistory(rdb, history.DefaultRedisKey, historyCap)
		}
		log.Println("Events broker=redis")
	} else {
		st.broker = events.NewBroker()
	}

	return st, cleanup, nil
}
