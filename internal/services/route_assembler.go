package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"logistics-route-service/internal/domain"
	apperror "logistics-route-service/internal/errors"
	"logistics-route-service/internal/genetic"
	"logistics-route-service/internal/graph"
	"logistics-route-service/internal/search"
)

type AssemblerOptions struct {
	SpeedKmh float64
	// StopServiceTime is added to the estimated time once per destination.
	StopServiceTime time.Duration
	HeuristicWeight float64
	Genetic         genetic.Config
}

// RouteAssembler turns a start, a destination set and an algorithm choice into a Route.
// It holds no mutable state and may be shared between goroutines.
type RouteAssembler struct {
	opts AssemblerOptions
}

func NewRouteAssembler(opts AssemblerOptions) *RouteAssembler {
	return &RouteAssembler{opts: opts}
}

type AssembleRequest struct {
	Start        string
	Destinations []string
	// Locations is the catalog snapshot names are resolved against.
	Locations []domain.Location
	// Vehicle is used as given when set; otherwise one is picked from Fleet.
	Vehicle   *domain.Vehicle
	Fleet     []domain.Vehicle
	PayloadKg float64
	Algorithm string
	// Seed overrides the configured genetic seed when non-zero.
	Seed int64
}

type Assembled struct {
	Route domain.Route
	// Evolution is set for genetic runs.
	Evolution *genetic.Result
}

// Assemble validates the request, orders the stops with the chosen algorithm
// and sums distance and time along that order.
func (a *RouteAssembler) Assemble(ctx context.Context, req AssembleRequest) (Assembled, error) {
	if err := ctx.Err(); err != nil {
		return Assembled{}, fmt.Errorf("assemble route: %w", err)
	}

	byName := indexByName(req.Locations)

	start, dests, err := resolveStops(byName, req.Start, req.Destinations)
	if err != nil {
		return Assembled{}, fmt.Errorf("assemble route: %w", err)
	}

	algo, err := domain.ParseAlgorithm(req.Algorithm)
	if err != nil {
		return Assembled{}, fmt.Errorf("assemble route: %w", err)
	}

	if req.PayloadKg < 0 {
		return Assembled{}, fmt.Errorf("assemble route: %w", apperror.NewInvalidRequestError("payload must not be negative, got %v", req.PayloadKg))
	}

	// Vertex 0 is the start; destinations follow in request order.
	vertices := append([]domain.Location{start}, dests...)
	g, err := graph.Build(vertices, a.opts.SpeedKmh)
	if err != nil {
		return Assembled{}, fmt.Errorf("assemble route: build graph: %w", err)
	}

	destIdx := make([]int, len(dests))
	for i := range dests {
		destIdx[i] = i + 1
	}

	var (
		order     []int
		evolution *genetic.Result
	)
	if mode, ok := search.ModeFor(algo); ok {
		order, err = search.Search(g, 0, destIdx, search.Options{Mode: mode, HeuristicWeight: a.opts.HeuristicWeight})
		if err != nil {
			return Assembled{}, fmt.Errorf("assemble route: %s search: %w", algo, err)
		}
	} else {
		cfg := a.opts.Genetic
		if req.Seed != 0 {
			cfg.Seed = req.Seed
		}
		res, err := genetic.Evolve(ctx, g, 0, destIdx, cfg)
		if err != nil {
			return Assembled{}, fmt.Errorf("assemble route: evolve: %w", err)
		}
		order = res.Order
		evolution = &res
	}

	route := a.build(g, order, algo)
	route.PayloadKg = req.PayloadKg
	route.Vehicle, route.CapacityFeasible = pickVehicle(req.Vehicle, req.Fleet, req.PayloadKg)

	return Assembled{Route: route, Evolution: evolution}, nil
}

// build sums legs along order. order must start at the start vertex.
func (a *RouteAssembler) build(g *graph.Graph, order []int, algo domain.Algorithm) domain.Route {
	route := domain.Route{
		Start:     g.Location(order[0]),
		Stops:     make([]domain.Location, 0, len(order)),
		Legs:      make([]domain.Leg, 0, len(order)-1),
		Algorithm: algo,
	}

	travelHr := 0.0
	for k, v := range order {
		route.Stops = append(route.Stops, g.Location(v))
		if k == 0 {
			continue
		}
		prev := order[k-1]
		leg := domain.Leg{
			From:       g.Location(prev).Name,
			To:         g.Location(v).Name,
			DistanceKm: g.Distance(prev, v),
			TimeHr:     g.Time(prev, v),
		}
		route.Legs = append(route.Legs, leg)
		route.TotalDistanceKm += leg.DistanceKm
		travelHr += leg.TimeHr
	}

	stops := float64(len(order) - 1)
	route.EstimatedTimeHr = travelHr + stops*a.opts.StopServiceTime.Hours()
	return route
}

// pickVehicle returns the vehicle for a route and whether it can carry the payload.
// Capacity is advisory: an explicit vehicle is kept even when it is too small.
func pickVehicle(explicit *domain.Vehicle, fleet []domain.Vehicle, payloadKg float64) (*domain.Vehicle, bool) {
	if explicit != nil {
		v := *explicit
		return &v, v.CanCarry(payloadKg)
	}
	v, ok := domain.SelectVehicle(fleet, payloadKg)
	if !ok {
		return nil, false
	}
	return &v, true
}

func indexByName(locations []domain.Location) map[string]domain.Location {
	out := make(map[string]domain.Location, len(locations))
	for _, l := range locations {
		out[strings.TrimSpace(l.Name)] = l
	}
	return out
}

// resolveStops looks up the start and destinations by name.
// The start must be a depot and the destinations non-empty, distinct and different from the start.
func resolveStops(byName map[string]domain.Location, startName string, destNames []string) (domain.Location, []domain.Location, error) {
	startName = strings.TrimSpace(startName)
	if startName == "" {
		return domain.Location{}, nil, apperror.NewInvalidRequestError("start location is required")
	}
	start, ok := byName[startName]
	if !ok {
		return domain.Location{}, nil, apperror.NewInvalidRequestError("unknown start location %q", startName)
	}
	if !start.IsDepot {
		return domain.Location{}, nil, apperror.NewInvalidRequestError("start location %q is not a depot", startName)
	}

	if len(destNames) == 0 {
		return domain.Location{}, nil, apperror.NewInvalidRequestError("at least one destination is required")
	}

	seen := make(map[string]struct{}, len(destNames))
	dests := make([]domain.Location, 0, len(destNames))
	for _, name := range destNames {
		name = strings.TrimSpace(name)
		loc, ok := byName[name]
		if !ok {
			return domain.Location{}, nil, apperror.NewInvalidRequestError("unknown destination %q", name)
		}
		if name == startName {
			return domain.Location{}, nil, apperror.NewInvalidRequestError("destination %q is the start location", name)
		}
		if _, dup := seen[name]; dup {
			return domain.Location{}, nil, apperror.NewInvalidRequestError("destination %q listed more than once", name)
		}
		seen[name] = struct{}{}
		dests = append(dests, loc)
	}

	return start, dests, nil
}
