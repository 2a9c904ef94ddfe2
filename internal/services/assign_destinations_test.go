package services

import (
	"slices"
	"testing"

	"logistics-route-service/internal/domain"
)

func TestAssignDestinationsByDistance(t *testing.T) {
	vehicles := []domain.Vehicle{{ID: "V001"}, {ID: "V002"}, {ID: "V004"}}
	dist := map[string]float64{"A": 5, "B": 1, "C": 3, "D": 3, "E": 9}

	got, err := AssignDestinationsByDistance(vehicles, []string{"A", "B", "C", "D", "E"}, dist)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := [][]string{{"B", "C"}, {"D", "A"}, {"E"}}
	if len(got) != len(want) {
		t.Fatalf("chunks = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if !slices.Equal(got[i], want[i]) {
			t.Fatalf("chunk %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestAssignDestinationsMoreVehiclesThanStops(t *testing.T) {
	vehicles := []domain.Vehicle{{ID: "V001"}, {ID: "V002"}, {ID: "V003"}}

	got, err := AssignDestinationsByDistance(vehicles, []string{"A"}, map[string]float64{"A": 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !slices.Equal(got[0], []string{"A"}) || len(got[1]) != 0 || len(got[2]) != 0 {
		t.Fatalf("chunks = %v, want [[A] [] []]", got)
	}
}

func TestAssignDestinationsRequiresVehicles(t *testing.T) {
	if _, err := AssignDestinationsByDistance(nil, []string{"A"}, nil); err == nil {
		t.Fatal("expected error for empty fleet")
	}
}
