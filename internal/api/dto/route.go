package dto

import (
	"time"

	"logistics-route-service/internal/domain"
)

type OptimizeRequest struct {
	Start        string   `json:"start"`
	Destinations []string `json:"destinations"`
	VehicleID    string   `json:"vehicle_id"`
	Algorithm    string   `json:"algorithm"`
	PayloadKg    float64  `json:"payload_kg"`
	Seed         int64    `json:"seed"`
}

type FleetRequest struct {
	Start        string   `json:"start"`
	Destinations []string `json:"destinations"`
	Algorithm    string   `json:"algorithm"`
	Seed         int64    `json:"seed"`
}

type LegResponse struct {
	From       string  `json:"from"`
	To         string  `json:"to"`
	DistanceKm float64 `json:"distance_km"`
	TimeHr     float64 `json:"time_hr"`
}

type RouteResponse struct {
	ID               string           `json:"id"`
	CreatedAt        time.Time        `json:"created_at"`
	Algorithm        string           `json:"algorithm"`
	Start            string           `json:"start"`
	Stops            []string         `json:"stops"`
	Legs             []LegResponse    `json:"legs"`
	Vehicle          *VehicleResponse `json:"vehicle"`
	PayloadKg        float64          `json:"payload_kg"`
	CapacityFeasible bool             `json:"capacity_feasible"`
	TotalDistanceKm  float64          `json:"total_distance_km"`
	EstimatedTimeHr  float64          `json:"estimated_time_hr"`
}

type ListRoutesResponse struct {
	Routes []RouteResponse `json:"routes"`
}

type RouteStatsResponse struct {
	Count             int            `json:"count"`
	TotalDistanceKm   float64        `json:"total_distance_km"`
	AverageDistanceKm float64        `json:"average_distance_km"`
	TotalEstimatedHr  float64        `json:"total_estimated_hours"`
	ByAlgorithm       map[string]int `json:"by_algorithm"`
}

func NewRouteResponse(rec domain.RouteRecord) RouteResponse {
	r := rec.Route
	res := RouteResponse{
		ID:               rec.ID,
		CreatedAt:        rec.CreatedAt,
		Algorithm:        string(r.Algorithm),
		Start:            r.Start.Name,
		Stops:            r.StopNames(),
		Legs:             make([]LegResponse, 0, len(r.Legs)),
		PayloadKg:        r.PayloadKg,
		CapacityFeasible: r.CapacityFeasible,
		TotalDistanceKm:  round2(r.TotalDistanceKm),
		EstimatedTimeHr:  round2(r.EstimatedTimeHr),
	}
	for _, l := range r.Legs {
		res.Legs = append(res.Legs, LegResponse{
			From:       l.From,
			To:         l.To,
			DistanceKm: round2(l.DistanceKm),
			TimeHr:     round2(l.TimeHr),
		})
	}
	if r.Vehicle != nil {
		v := NewVehicleResponse(*r.Vehicle)
		res.Vehicle = &v
	}
	return res
}

func NewListRoutesResponse(recs []domain.RouteRecord) ListRoutesResponse {
	res := ListRoutesResponse{Routes: make([]RouteResponse, 0, len(recs))}
	for _, rec := range recs {
		res.Routes = append(res.Routes, NewRouteResponse(rec))
	}
	return res
}

func NewRouteStatsResponse(s domain.RouteStats) RouteStatsResponse {
	res := RouteStatsResponse{
		Count:             s.Count,
		TotalDistanceKm:   round2(s.TotalDistanceKm),
		AverageDistanceKm: round2(s.AverageDistanceKm),
		TotalEstimatedHr:  round2(s.TotalEstimatedHr),
		ByAlgorithm:       make(map[string]int, len(s.ByAlgorithm)),
	}
	for a, n := range s.ByAlgorithm {
		res.ByAlgorithm[string(a)] = n
	}
	return res
}
