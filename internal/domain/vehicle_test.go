package domain

import "testing"

func TestSelectVehicle(t *testing.T) {
	fleet := []Vehicle{
		{ID: "V003", Name: "Van Gamma", CapacityKg: 500, Status: VehicleAvailable},
		{ID: "V005", Name: "Van Epsilon", CapacityKg: 600, Status: VehicleMaintenance},
		{ID: "V002", Name: "Truck Beta", CapacityKg: 1500, Status: VehicleAvailable},
		{ID: "V001", Name: "Truck Alpha", CapacityKg: 1000, Status: VehicleInUse},
	}

	tests := []struct {
		name    string
		payload float64
		wantID  string
		wantOK  bool
	}{
		{name: "lowest available id wins", payload: 0, wantID: "V002", wantOK: true},
		{name: "capacity filters candidates", payload: 1200, wantID: "V002", wantOK: true},
		{name: "nothing large enough", payload: 2000, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := SelectVehicle(fleet, tt.payload)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got.ID != tt.wantID {
				t.Fatalf("vehicle = %s, want %s", got.ID, tt.wantID)
			}
		})
	}
}

func TestSelectVehicleSkipsMaintenance(t *testing.T) {
	fleet := []Vehicle{
		{ID: "V001", CapacityKg: 1000, Status: VehicleMaintenance},
		{ID: "V009", CapacityKg: 100, Status: VehicleAvailable},
	}

	got, ok := SelectVehicle(fleet, 50)
	if !ok || got.ID != "V009" {
		t.Fatalf("vehicle = %+v ok=%v, want V009", got, ok)
	}
}

func TestAvailableVehiclesSortedByID(t *testing.T) {
	fleet := []Vehicle{
		{ID: "V004", Status: VehicleAvailable},
		{ID: "V005", Status: VehicleMaintenance},
		{ID: "V001", Status: VehicleAvailable},
	}

	got := AvailableVehicles(fleet)
	if len(got) != 2 || got[0].ID != "V001" || got[1].ID != "V004" {
		t.Fatalf("available = %+v, want [V001 V004]", got)
	}
}

func TestParseVehicleStatus(t *testing.T) {
	if st, err := ParseVehicleStatus(" In_Use "); err != nil || st != VehicleInUse {
		t.Fatalf("status = %q err=%v, want in_use", st, err)
	}
	if _, err := ParseVehicleStatus("retired"); err == nil {
		t.Fatal("expected error for unknown status")
	}
}
