// Package geo holds great-circle helpers for route progress.
package geo

import "math"

const earthRadiusKm = 6371.0

// HaversineKm returns the distance in kilometers between two lat/lon points.
func HaversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

// RouteProgress returns the completed share of a route, 0-100, for an
// aircraft at (lat, lon) between origin and destination.
func RouteProgress(originLat, originLon, lat, lon, destLat, destLon float64) int {
	flown := HaversineKm(originLat, originLon, lat, lon)
	remaining := HaversineKm(lat, lon, destLat, destLon)
	total := flown + remaining
	if total == 0 {
		return 0
	}
	pct := int(math.Round(flown / total * 100))
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
