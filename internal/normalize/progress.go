package normalize

import (
	"trippilot/skyview/internal/geo"
	"trippilot/skyview/internal/models/entities"
)

func progress(f entities.Flight, idx entities.AirportIndex) int {
	if !f.Airborne() {
		return 0
	}
	origin, ok := idx.Lookup(f.Origin)
	if !ok {
		return 0
	}
	dest, ok := idx.Lookup(f.Destination)
	if !ok {
		return 0
	}
	return geo.RouteProgress(origin.Lat, origin.Lng, f.Lat, f.Lon, dest.Lat, dest.Lng)
}
