package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"logistics-route-service/internal/domain"
	apperror "logistics-route-service/internal/errors"
	"logistics-route-service/internal/platform/metrics"
	"logistics-route-service/internal/platform/obs"
	"logistics-route-service/internal/ports"
)

// RoutePlanner is the collaborator around RouteAssembler: it resolves the
// catalog snapshot, applies the request ceiling, records history and
// publishes events.
type RoutePlanner struct {
	Locations ports.LocationRepository
	Vehicles  ports.VehicleRepository
	History   ports.RouteHistory
	Events    ports.EventPublisher
	Assembler *RouteAssembler
	// Timeout bounds a single optimization. Zero means no ceiling.
	Timeout time.Duration

	Now   func() time.Time
	NewID func() string
}

type OptimizeRequest struct {
	Start        string
	Destinations []string
	VehicleID    string
	Algorithm    string
	PayloadKg    float64
	Seed         int64
}

// Plan optimizes a single route and records it.
func (p *RoutePlanner) Plan(ctx context.Context, req OptimizeRequest) (_ domain.RouteRecord, err error) {
	defer obs.Time(ctx, "route.plan")(&err)

	locations, err := p.Locations.ListLocations(ctx)
	if err != nil {
		return domain.RouteRecord{}, fmt.Errorf("plan route: list locations: %w", err)
	}
	fleet, err := p.Vehicles.ListVehicles(ctx)
	if err != nil {
		return domain.RouteRecord{}, fmt.Errorf("plan route: list vehicles: %w", err)
	}

	var vehicle *domain.Vehicle
	if id := strings.TrimSpace(req.VehicleID); id != "" {
		v, ok := findVehicle(fleet, id)
		if !ok {
			return domain.RouteRecord{}, fmt.Errorf("plan route: %w", apperror.NewInvalidRequestError("unknown vehicle %q", id))
		}
		vehicle = &v
	}

	assembled, err := p.assemble(ctx, AssembleRequest{
		Start:        req.Start,
		Destinations: req.Destinations,
		Locations:    locations,
		Vehicle:      vehicle,
		Fleet:        fleet,
		PayloadKg:    req.PayloadKg,
		Algorithm:    req.Algorithm,
		Seed:         req.Seed,
	})
	if err != nil {
		return domain.RouteRecord{}, fmt.Errorf("plan route: %w", err)
	}

	return p.record(ctx, assembled.Route), nil
}

// assemble runs the assembler under the request ceiling and observes metrics.
func (p *RoutePlanner) assemble(ctx context.Context, req AssembleRequest) (Assembled, error) {
	if p.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.Timeout)
		defer cancel()
	}

	algo := "unsupported"
	if a, err := domain.ParseAlgorithm(req.Algorithm); err == nil {
		algo = string(a)
	}

	start := time.Now()
	assembled, err := p.Assembler.Assemble(ctx, req)
	if err != nil {
		metrics.Optimizations.WithLabelValues(algo, "error").Inc()
		return Assembled{}, err
	}

	metrics.Optimizations.WithLabelValues(algo, "ok").Inc()
	metrics.OptimizationDuration.WithLabelValues(algo).Observe(time.Since(start).Seconds())
	metrics.RouteDistance.WithLabelValues(algo).Observe(assembled.Route.TotalDistanceKm)
	if ev := assembled.Evolution; ev != nil {
		metrics.GeneticGenerations.WithLabelValues(string(ev.StopReason)).Observe(float64(ev.Generations))
		log.Printf(
			"req_id=%s op=route.evolve generations=%d improvements=%d stop=%s seed=%d distance_km=%.3f",
			obs.RequestID(ctx), ev.Generations, ev.Improvements, ev.StopReason, ev.Seed, ev.Distance,
		)
	}
	return assembled, nil
}

// record stores the route and announces it. Storage failures are logged,
// not returned: the route itself is valid either way.
func (p *RoutePlanner) record(ctx context.Context, route domain.Route) domain.RouteRecord {
	rec := domain.RouteRecord{
		ID:        p.newID(),
		CreatedAt: p.now(),
		Route:     route,
	}

	if p.History != nil {
		if err := p.History.Record(ctx, rec); err != nil {
			log.Printf("req_id=%s op=route.history.record route_id=%s err=%v", obs.RequestID(ctx), rec.ID, err)
		}
	}

	if p.Events != nil {
		data := map[string]any{
			"route_id":          rec.ID,
			"algorithm":         string(route.Algorithm),
			"start":             route.Start.Name,
			"stops":             route.StopNames(),
			"total_distance_km": route.TotalDistanceKm,
		}
		if route.Vehicle != nil {
			data["vehicle_id"] = route.Vehicle.ID
		}
		p.Events.Publish(ctx, ports.Event{Type: "route.planned", Topic: ports.TopicRoutes, Data: data, At: rec.CreatedAt})
	}

	return rec
}

// List returns recorded routes, newest first.
func (p *RoutePlanner) List(ctx context.Context, limit int) ([]domain.RouteRecord, error) {
	if p.History == nil {
		return []domain.RouteRecord{}, nil
	}
	recs, err := p.History.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list routes: %w", err)
	}
	return recs, nil
}

// Stats aggregates every recorded route.
func (p *RoutePlanner) Stats(ctx context.Context) (domain.RouteStats, error) {
	recs, err := p.List(ctx, 0)
	if err != nil {
		return domain.RouteStats{}, fmt.Errorf("route stats: %w", err)
	}

	stats := domain.RouteStats{ByAlgorithm: map[domain.Algorithm]int{}}
	for _, r := range recs {
		stats.Count++
		stats.TotalDistanceKm += r.Route.TotalDistanceKm
		stats.TotalEstimatedHr += r.Route.EstimatedTimeHr
		stats.ByAlgorithm[r.Route.Algorithm]++
	}
	if stats.Count > 0 {
		stats.AverageDistanceKm = stats.TotalDistanceKm / float64(stats.Count)
	}
	return stats, nil
}

func (p *RoutePlanner) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now().UTC()
}

func (p *RoutePlanner) newID() string {
	if p.NewID != nil {
		return p.NewID()
	}
	return uuid.NewString()
}

func findVehicle(fleet []domain.Vehicle, id string) (domain.Vehicle, bool) {
	for _, v := range fleet {
		if v.ID == id {
			return v, true
		}
	}
	return domain.Vehicle{}, false
}
