package graph

import (
	"math"
	"testing"

	"logistics-route-service/internal/domain"
	apperror "logistics-route-service/internal/errors"
)

func sampleLocations() []domain.Location {
	return []domain.Location{
		{ID: 1, Name: "Depot A", Latitude: 12.9716, Longitude: 77.5946, IsDepot: true},
		{ID: 3, Name: "Customer 1", Latitude: 12.9352, Longitude: 77.6245},
		{ID: 4, Name: "Customer 2", Latitude: 12.9698, Longitude: 77.6480},
		{ID: 5, Name: "Customer 3", Latitude: 12.9141, Longitude: 77.6411},
	}
}

func TestBuild(t *testing.T) {
	g, err := Build(sampleLocations(), 40)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if g.Len() != 4 {
		t.Fatalf("len = %d, want 4", g.Len())
	}

	i, ok := g.Index("Customer 2")
	if !ok || i != 2 {
		t.Fatalf("index(Customer 2) = %d, %v; want 2, true", i, ok)
	}

	for a := 0; a < g.Len(); a++ {
		if g.Distance(a, a) != 0 {
			t.Fatalf("distance(%d, %d) = %v, want 0", a, a, g.Distance(a, a))
		}
		for b := 0; b < g.Len(); b++ {
			if g.Distance(a, b) != g.Distance(b, a) {
				t.Fatalf("edge %d-%d not symmetric", a, b)
			}
		}
	}

	if d := g.Distance(0, 1); math.Abs(d-5.185) > 0.005 {
		t.Fatalf("distance(depot, c1) = %.4f, want 5.185", d)
	}
	if tm := g.Time(0, 1); math.Abs(tm-g.Distance(0, 1)/40) > 1e-12 {
		t.Fatalf("time(depot, c1) = %v, want distance/40", tm)
	}
}

func TestPathDistance(t *testing.T) {
	g, err := Build(sampleLocations(), 40)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Depot A -> Customer 2 -> Customer 1 -> Customer 3
	got := g.PathDistance([]int{0, 2, 1, 3})
	if math.Abs(got-13.3602) > 0.001 {
		t.Fatalf("path distance = %.4f, want 13.3602", got)
	}
	if g.PathDistance([]int{0}) != 0 {
		t.Fatal("single vertex path should have zero distance")
	}
}

func TestBuildRejectsDegenerateSets(t *testing.T) {
	tests := []struct {
		name string
		locs []domain.Location
	}{
		{name: "empty", locs: nil},
		{name: "single location", locs: sampleLocations()[:1]},
		{
			name: "shared coordinates",
			locs: []domain.Location{
				{Name: "Depot A", Latitude: 12.9716, Longitude: 77.5946},
				{Name: "Depot Shadow", Latitude: 12.9716, Longitude: 77.5946},
			},
		},
		{
			name: "duplicate names",
			locs: []domain.Location{
				{Name: "Depot A", Latitude: 12.9716, Longitude: 77.5946},
				{Name: "Depot A", Latitude: 13.0358, Longitude: 77.5970},
			},
		},
		{
			name: "out of range latitude",
			locs: []domain.Location{
				{Name: "Depot A", Latitude: 12.9716, Longitude: 77.5946},
				{Name: "Nowhere", Latitude: 120, Longitude: 77.5970},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(tt.locs, 40)
			if !apperror.Is(err, "INVALID_GRAPH") {
				t.Fatalf("err = %v, want InvalidGraphError", err)
			}
		})
	}
}

func TestBuildCopiesInput(t *testing.T) {
	locs := sampleLocations()
	g, err := Build(locs, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	locs[0].Name = "mutated"
	if g.Location(0).Name != "Depot A" {
		t.Fatalf("graph shares caller slice: %q", g.Location(0).Name)
	}
	if g.SpeedKmh() != 40 {
		t.Fatalf("speed = %v, want default 40", g.SpeedKmh())
	}
}

func TestCentroid(t *testing.T) {
	g, err := Build(sampleLocations(), 40)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	c := g.Centroid([]int{1, 2})
	if math.Abs(c.Lat-12.9525) > 1e-9 || math.Abs(c.Lon-77.63625) > 1e-9 {
		t.Fatalf("centroid = %+v, want (12.9525, 77.63625)", c)
	}
}
