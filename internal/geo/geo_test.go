package geo

import (
	"math"
	"testing"

	"logistics-route-service/internal/domain"
)

var (
	depotA    = domain.Coordinates{Lat: 12.9716, Lon: 77.5946}
	customer1 = domain.Coordinates{Lat: 12.9352, Lon: 77.6245}
	customer2 = domain.Coordinates{Lat: 12.9698, Lon: 77.6480}
)

func TestHaversineKm(t *testing.T) {
	tests := []struct {
		name string
		a, b domain.Coordinates
		want float64
	}{
		{name: "depot to customer 1", a: depotA, b: customer1, want: 5.185},
		{name: "depot to customer 2", a: depotA, b: customer2, want: 5.790},
		{name: "customer 1 to customer 2", a: customer1, b: customer2, want: 4.614},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HaversineKm(tt.a, tt.b)
			if math.Abs(got-tt.want) > 0.005 {
				t.Fatalf("distance = %.4f, want %.3f", got, tt.want)
			}
		})
	}
}

func TestHaversineKmSymmetricAndZero(t *testing.T) {
	if d := HaversineKm(depotA, depotA); d != 0 {
		t.Fatalf("distance(a, a) = %v, want 0", d)
	}

	ab := HaversineKm(depotA, customer2)
	ba := HaversineKm(customer2, depotA)
	if ab != ba {
		t.Fatalf("distance not symmetric: %v vs %v", ab, ba)
	}
}

func TestHaversineKmAntipodal(t *testing.T) {
	d := HaversineKm(domain.Coordinates{Lat: 0, Lon: 0}, domain.Coordinates{Lat: 0, Lon: 180})
	want := math.Pi * EarthRadiusKm
	if math.Abs(d-want) > 1e-6 {
		t.Fatalf("antipodal distance = %v, want %v", d, want)
	}
}

func TestTravelTimeHr(t *testing.T) {
	if got := TravelTimeHr(20, 40); got != 0.5 {
		t.Fatalf("time = %v, want 0.5", got)
	}
	if got := TravelTimeHr(40, 0); got != 1 {
		t.Fatalf("time with default speed = %v, want 1", got)
	}
}
