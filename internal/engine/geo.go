package engine

import (
	"math"

	"github.com/Lior1305/Planeet/internal/domain"
)

// Mean Earth radius in kilometers for the spherical approximation.
const earthRadiusKM = 6371.0

// DistanceKM computes the great-circle distance between two coordinates
// using the haversine formula. The result is rounded to two decimals so
// distances compare stably across the sequencing and timetable stages.
func DistanceKM(a, b domain.Coordinates) float64 {
	lat1 := a.Lat * math.Pi / 180
	lon1 := a.Lon * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	lon2 := b.Lon * math.Pi / 180

	dLat := lat2 - lat1
	dLon := lon2 - lon1

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Asin(math.Sqrt(h))

	return math.Round(earthRadiusKM*c*100) / 100
}
