package domain

import (
	"strings"
	"time"

	apperror "logistics-route-service/internal/errors"
)

type Algorithm string

const (
	AlgorithmDijkstra Algorithm = "dijkstra"
	AlgorithmAStar    Algorithm = "astar"
	AlgorithmGenetic  Algorithm = "genetic"
)

// ParseAlgorithm accepts the algorithm token case-insensitively.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch a := Algorithm(strings.ToLower(strings.TrimSpace(s))); a {
	case AlgorithmDijkstra, AlgorithmAStar, AlgorithmGenetic:
		return a, nil
	default:
		return "", apperror.NewUnsupportedAlgorithmError(s)
	}
}

// A single hop between two consecutive stops.
type Leg struct {
	From       string
	To         string
	DistanceKm float64
	TimeHr     float64
}

// Represents the planned route for a single vehicle.
// Stops starts with the depot and visits every destination exactly once.
// TotalDistanceKm is the sum of Legs. A Route is not modified after assembly.
type Route struct {
	Start            Location
	Stops            []Location
	Legs             []Leg
	Vehicle          *Vehicle
	PayloadKg        float64
	CapacityFeasible bool
	TotalDistanceKm  float64
	EstimatedTimeHr  float64
	Algorithm        Algorithm
}

func (r Route) StopNames() []string {
	names := make([]string, 0, len(r.Stops))
	for _, s := range r.Stops {
		names = append(names, s.Name)
	}
	return names
}

// A planned route as kept in route history.
type RouteRecord struct {
	ID        string
	CreatedAt time.Time
	Route     Route
}

// Aggregate figures over recorded routes.
type RouteStats struct {
	Count             int
	TotalDistanceKm   float64
	AverageDistanceKm float64
	TotalEstimatedHr  float64
	ByAlgorithm       map[Algorithm]int
}
