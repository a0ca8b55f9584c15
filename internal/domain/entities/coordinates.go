package entities

import (
	"fmt"
	"math"
)

// Coordinates represents geographical coordinates
type Coordinates struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
}

const earthRadiusKm = 6371.0

// DistanceKm calculates the great-circle distance between two points in
// kilometers using the Haversine formula.
func DistanceKm(from, to Coordinates) float64 {
	lat1Rad := toRadians(from.Latitude)
	lat2Rad := toRadians(to.Latitude)
	deltaLat := toRadians(to.Latitude - from.Latitude)
	deltaLon := toRadians(to.Longitude - from.Longitude)

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// DistanceLabel renders a distance for display: meters below one
// kilometer, otherwise kilometers with one decimal.
func DistanceLabel(km float64) string {
	if km < 1 {
		return fmt.Sprintf("約%dm", int(math.Round(km*1000)))
	}
	return fmt.Sprintf("約%.1fkm", km)
}

func toRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}
