package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"logistics-route-service/internal/domain"
	apperror "logistics-route-service/internal/errors"
	"logistics-route-service/internal/geo"
	"logistics-route-service/internal/platform/obs"
)

// maxParallelAssemblies bounds how many vehicle routes are optimized at once.
const maxParallelAssemblies = 4

type FleetRequest struct {
	Start        string
	Destinations []string
	Algorithm    string
	Seed         int64
}

type fleetResult struct {
	slot      int
	assembled Assembled
	err       error
}

// PlanFleet splits destinations across every available vehicle and plans one
// route per vehicle that received at least one stop.
func (p *RoutePlanner) PlanFleet(ctx context.Context, req FleetRequest) (_ []domain.RouteRecord, err error) {
	defer obs.Time(ctx, "route.plan_fleet")(&err)

	locations, err := p.Locations.ListLocations(ctx)
	if err != nil {
		return nil, fmt.Errorf("plan fleet: list locations: %w", err)
	}
	fleet, err := p.Vehicles.ListVehicles(ctx)
	if err != nil {
		return nil, fmt.Errorf("plan fleet: list vehicles: %w", err)
	}

	byName := indexByName(locations)
	start, dests, err := resolveStops(byName, req.Start, req.Destinations)
	if err != nil {
		return nil, fmt.Errorf("plan fleet: %w", err)
	}
	if _, err := domain.ParseAlgorithm(req.Algorithm); err != nil {
		return nil, fmt.Errorf("plan fleet: %w", err)
	}

	vehicles := domain.AvailableVehicles(fleet)
	if len(vehicles) == 0 {
		return nil, fmt.Errorf("plan fleet: %w", apperror.NewInvalidRequestError("no available vehicles"))
	}

	names := make([]string, 0, len(dests))
	depotDist := make(map[string]float64, len(dests))
	for _, d := range dests {
		name := strings.TrimSpace(d.Name)
		names = append(names, name)
		depotDist[name] = geo.HaversineKm(start.Coordinates(), d.Coordinates())
	}

	chunks, err := AssignDestinationsByDistance(vehicles, names, depotDist)
	if err != nil {
		return nil, fmt.Errorf("plan fleet: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sem := make(chan struct{}, maxParallelAssemblies)
	resultsCh := make(chan fleetResult, len(vehicles))
	var wg sync.WaitGroup

	for slot, chunk := range chunks {
		if len(chunk) == 0 {
			continue
		}

		wg.Add(1)
		go func(slot int, vehicle domain.Vehicle, chunk []string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			assembled, err := p.assemble(ctx, AssembleRequest{
				Start:        req.Start,
				Destinations: chunk,
				Locations:    locations,
				Vehicle:      &vehicle,
				Algorithm:    req.Algorithm,
				Seed:         req.Seed,
			})
			if err != nil {
				resultsCh <- fleetResult{slot: slot, err: fmt.Errorf("vehicle %s: %w", vehicle.ID, err)}
				cancel()
				return
			}
			resultsCh <- fleetResult{slot: slot, assembled: assembled}
		}(slot, vehicles[slot], chunk)
	}

	wg.Wait()
	close(resultsCh)

	bySlot := make([]*Assembled, len(vehicles))
	var firstErr error
	for res := range resultsCh {
		if res.err != nil {
			if firstErr == nil {
				firstErr = res.err
			}
			continue
		}
		a := res.assembled
		bySlot[res.slot] = &a
	}
	if firstErr != nil {
		return nil, fmt.Errorf("plan fleet: %w", firstErr)
	}

	// Record in vehicle order so history and responses are stable.
	records := make([]domain.RouteRecord, 0, len(vehicles))
	for _, a := range bySlot {
		if a == nil {
			continue
		}
		records = append(records, p.record(ctx, a.Route))
	}
	return records, nil
}
