// Package search builds a visiting order with greedy constructive heuristics.
package search

import (
	"math"

	"logistics-route-service/internal/domain"
	apperror "logistics-route-service/internal/errors"
	"logistics-route-service/internal/geo"
	"logistics-route-service/internal/graph"
)

type Mode string

const (
	// ModeDijkstra extends the route with the nearest unvisited destination.
	ModeDijkstra Mode = "dijkstra"
	// ModeAStar scores candidates by g + w*h, where h is the straight-line
	// distance from the candidate to the centroid of the unvisited set.
	ModeAStar Mode = "astar"
)

// DefaultHeuristicWeight scales the A* lookahead term.
const DefaultHeuristicWeight = 0.5

type Options struct {
	Mode Mode
	// HeuristicWeight is only used by ModeAStar. Zero means DefaultHeuristicWeight.
	HeuristicWeight float64
}

// ModeFor maps a route algorithm onto a search mode.
func ModeFor(a domain.Algorithm) (Mode, bool) {
	switch a {
	case domain.AlgorithmDijkstra:
		return ModeDijkstra, true
	case domain.AlgorithmAStar:
		return ModeAStar, true
	default:
		return "", false
	}
}

// Search returns the visiting order as vertex indices, starting with start.
//
// Each step scans the unvisited destinations once, so a run is O(n²).
// Ties go to the destination that appears first in destinations.
// The result is deterministic but not guaranteed optimal.
func Search(g *graph.Graph, start int, destinations []int, opts Options) ([]int, error) {
	if opts.Mode != ModeDijkstra && opts.Mode != ModeAStar {
		return nil, apperror.NewUnsupportedAlgorithmError(string(opts.Mode))
	}
	if err := validate(g, start, destinations); err != nil {
		return nil, err
	}

	weight := opts.HeuristicWeight
	if weight <= 0 {
		weight = DefaultHeuristicWeight
	}

	order := make([]int, 0, len(destinations)+1)
	order = append(order, start)

	remaining := append([]int(nil), destinations...)
	current := start

	for len(remaining) > 0 {
		var centroid domain.Coordinates
		if opts.Mode == ModeAStar {
			centroid = g.Centroid(remaining)
		}

		best := -1
		bestScore := math.Inf(1)

		// Select next stop by lowest score (greedy step).
		for k, cand := range remaining {
			score := g.Distance(current, cand)
			if opts.Mode == ModeAStar {
				score += weight * geo.HaversineKm(g.Location(cand).Coordinates(), centroid)
			}
			// Strict comparison keeps the earliest candidate on ties.
			if score < bestScore {
				bestScore = score
				best = k
			}
		}

		current = remaining[best]
		order = append(order, current)
		remaining = append(remaining[:best], remaining[best+1:]...)
	}

	return order, nil
}

func validate(g *graph.Graph, start int, destinations []int) error {
	n := g.Len()
	if start < 0 || start >= n {
		return apperror.NewInvalidRequestError("start index %d out of range", start)
	}

	seen := make(map[int]struct{}, len(destinations))
	for _, d := range destinations {
		if d < 0 || d >= n {
			return apperror.NewInvalidRequestError("destination index %d out of range", d)
		}
		if d == start {
			return apperror.NewInvalidRequestError("destination %q is the start location", g.Location(d).Name)
		}
		if _, dup := seen[d]; dup {
			return apperror.NewInvalidRequestError("destination %q listed more than once", g.Location(d).Name)
		}
		seen[d] = struct{}{}
	}
	return nil
}
