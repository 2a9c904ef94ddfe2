package domain

// A named point a vehicle can start from or deliver to.
// Name is the identity used by route requests and must be unique within a location set.
type Location struct {
	ID        int
	Name      string
	Latitude  float64
	Longitude float64
	IsDepot   bool
}

func (l Location) Coordinates() Coordinates {
	return Coordinates{Lat: l.Latitude, Lon: l.Longitude}
}
