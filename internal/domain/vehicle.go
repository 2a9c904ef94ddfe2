package domain

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

type VehicleStatus string

const (
	VehicleAvailable   VehicleStatus = "available"
	VehicleInUse       VehicleStatus = "in_use"
	VehicleMaintenance VehicleStatus = "maintenance"
)

func ParseVehicleStatus(s string) (VehicleStatus, error) {
	switch st := VehicleStatus(strings.ToLower(strings.TrimSpace(s))); st {
	case VehicleAvailable, VehicleInUse, VehicleMaintenance:
		return st, nil
	default:
		return "", fmt.Errorf("parse vehicle status: unknown status %q", s)
	}
}

// Delivery vehicle with a nominal load capacity.
type Vehicle struct {
	ID         string
	Name       string
	CapacityKg float64
	Status     VehicleStatus
}

func (v Vehicle) Available() bool { return v.Status == VehicleAvailable }

// CanCarry reports whether payloadKg fits the nominal capacity.
func (v Vehicle) CanCarry(payloadKg float64) bool {
	return payloadKg <= v.CapacityKg
}

// SelectVehicle picks the lowest-id available vehicle that can carry payloadKg.
// IDs are compared as strings, so fleets should use fixed-width ids (V001, V002, ...).
func SelectVehicle(fleet []Vehicle, payloadKg float64) (Vehicle, bool) {
	candidates := make([]Vehicle, 0, len(fleet))
	for _, v := range fleet {
		if v.Available() && v.CanCarry(payloadKg) {
			candidates = append(candidates, v)
		}
	}
	if len(candidates) == 0 {
		return Vehicle{}, false
	}

	slices.SortFunc(candidates, func(a, b Vehicle) int { return cmp.Compare(a.ID, b.ID) })
	return candidates[0], true
}

// AvailableVehicles returns the available subset of fleet ordered by id.
func AvailableVehicles(fleet []Vehicle) []Vehicle {
	out := make([]Vehicle, 0, len(fleet))
	for _, v := range fleet {
		if v.Available() {
			out = append(out, v)
		}
	}
	slices.SortFunc(out, func(a, b Vehicle) int { return cmp.Compare(a.ID, b.ID) })
	return out
}
