package services

import (
	"cmp"
	"errors"
	"slices"

	"logistics-route-service/internal/domain"
)

// AssignDestinationsByDistance splits destinations across vehicles.
//
// Destinations are sorted by distance from the depot (name breaks ties) and
// chunked with ceiling division, so each vehicle receives a contiguous band.
// The result has one entry per vehicle; trailing entries may be empty.
func AssignDestinationsByDistance(
	vehicles []domain.Vehicle,
	destinations []string,
	depotDistanceKm map[string]float64,
) ([][]string, error) {
	if len(vehicles) == 0 {
		return nil, errors.New("assign destinations: vehicle list must not be empty")
	}

	sorted := slices.Clone(destinations)
	slices.SortFunc(sorted, func(a, b string) int {
		if c := cmp.Compare(depotDistanceKm[a], depotDistanceKm[b]); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})

	nVehicles := len(vehicles)
	nDests := len(sorted)
	chunkSize := (nDests + nVehicles - 1) / nVehicles

	out := make([][]string, nVehicles)
	for vi := 0; vi < nVehicles; vi++ {
		start := vi * chunkSize
		if start >= nDests {
			break
		}
		end := min(start+chunkSize, nDests)
		out[vi] = sorted[start:end]
	}

	return out, nil
}
