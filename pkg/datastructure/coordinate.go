package datastructure

import "lintang/busnavigator/pkg/geo"

type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func NewCoordinate(lat, lon float64) Coordinate {
	return Coordinate{
		Lat: lat,
		Lon: lon,
	}
}

// DistanceTo haversine distance in meters.
func (c Coordinate) DistanceTo(other Coordinate) float64 {
	return geo.HaversineDistance(geo.NewLocation(c.Lat, c.Lon), geo.NewLocation(other.Lat, other.Lon))
}
