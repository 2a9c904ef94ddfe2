// Package graph builds the complete weighted graph routes are searched over.
package graph

import (
	"strings"

	"logistics-route-service/internal/domain"
	apperror "logistics-route-service/internal/errors"
	"logistics-route-service/internal/geo"
)

// Graph is a complete undirected graph over a location set.
// Vertices are indexed in the order the locations were supplied.
// A Graph is never mutated after Build and is safe for concurrent reads.
type Graph struct {
	locations []domain.Location
	index     map[string]int
	dist      [][]float64
	speedKmh  float64
}

// Build computes every pairwise haversine edge.
// speedKmh converts distances to travel time; non-positive means geo.DefaultSpeedKmh.
func Build(locations []domain.Location, speedKmh float64) (*Graph, error) {
	if len(locations) < 2 {
		return nil, apperror.NewInvalidGraphError("need at least 2 locations, got %d", len(locations))
	}
	if speedKmh <= 0 {
		speedKmh = geo.DefaultSpeedKmh
	}

	n := len(locations)
	g := &Graph{
		locations: make([]domain.Location, n),
		index:     make(map[string]int, n),
		dist:      make([][]float64, n),
		speedKmh:  speedKmh,
	}
	copy(g.locations, locations)

	byCoords := make(map[domain.Coordinates]string, n)
	for i, loc := range g.locations {
		name := strings.TrimSpace(loc.Name)
		if name == "" {
			return nil, apperror.NewInvalidGraphError("location at index %d has empty name", i)
		}
		if _, dup := g.index[name]; dup {
			return nil, apperror.NewInvalidGraphError("duplicate location name %q", name)
		}
		c := loc.Coordinates()
		if !c.Valid() {
			return nil, apperror.NewInvalidGraphError("location %q has invalid coordinates (%v, %v)", name, c.Lat, c.Lon)
		}
		if other, ok := byCoords[c]; ok {
			return nil, apperror.NewInvalidGraphError("locations %q and %q share coordinates (%v, %v)", other, name, c.Lat, c.Lon)
		}
		byCoords[c] = name
		g.index[name] = i
	}

	for i := range g.dist {
		g.dist[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := geo.HaversineKm(g.locations[i].Coordinates(), g.locations[j].Coordinates())
			g.dist[i][j] = d
			g.dist[j][i] = d
		}
	}

	return g, nil
}

// Len returns the number of vertices.
func (g *Graph) Len() int { return len(g.locations) }

// SpeedKmh returns the average speed edge times are derived from.
func (g *Graph) SpeedKmh() float64 { return g.speedKmh }

// Location returns the location at vertex i, in insertion order.
func (g *Graph) Location(i int) domain.Location { return g.locations[i] }

// Index returns the vertex index of the named location.
func (g *Graph) Index(name string) (int, bool) {
	i, ok := g.index[strings.TrimSpace(name)]
	return i, ok
}

// Distance returns the edge weight in kilometers.
func (g *Graph) Distance(i, j int) float64 { return g.dist[i][j] }

// Time returns the travel time of an edge in hours.
func (g *Graph) Time(i, j int) float64 { return geo.TravelTimeHr(g.dist[i][j], g.speedKmh) }

// PathDistance sums consecutive edge weights along order.
func (g *Graph) PathDistance(order []int) float64 {
	total := 0.0
	for k := 1; k < len(order); k++ {
		total += g.dist[order[k-1]][order[k]]
	}
	return total
}

// Centroid returns the arithmetic mean of the coordinates of the given vertices.
func (g *Graph) Centroid(vertices []int) domain.Coordinates {
	if len(vertices) == 0 {
		return domain.Coordinates{}
	}
	var lat, lon float64
	for _, v := range vertices {
		lat += g.locations[v].Latitude
		lon += g.locations[v].Longitude
	}
	n := float64(len(vertices))
	return domain.Coordinates{Lat: lat / n, Lon: lon / n}
}
