package dto

import "logistics-route-service/internal/domain"

type LocationResponse struct {
	ID        int     `json:"id"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	IsDepot   bool    `json:"is_depot"`
}

type ListLocationsResponse struct {
	Locations []LocationResponse `json:"locations"`
}

type VehicleResponse struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	CapacityKg float64 `json:"capacity_kg"`
	Status     string  `json:"status"`
}

type ListVehiclesResponse struct {
	Vehicles []VehicleResponse `json:"vehicles"`
}

func NewLocationResponse(l domain.Location) LocationResponse {
	return LocationResponse{ID: l.ID, Name: l.Name, Latitude: l.Latitude, Longitude: l.Longitude, IsDepot: l.IsDepot}
}

func NewVehicleResponse(v domain.Vehicle) VehicleResponse {
	return VehicleResponse{ID: v.ID, Name: v.Name, CapacityKg: v.CapacityKg, Status: string(v.Status)}
}
