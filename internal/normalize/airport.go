// Package normalize turns loosely typed backend JSON into fully populated
// airports and flights. It never fails on missing fields.
package normalize

import "trippilot/skyview/internal/models/entities"

// Airport normalizes one raw airport record.
func Airport(raw map[string]any) entities.Airport {
	amenities := object(raw, "amenities")
	return entities.Airport{
		Code:     str(raw, "code", "iata_code", "icao_code"),
		Name:     orDefault(str(raw, "name", "airport_name"), entities.UnknownAirportName),
		City:     orDefault(str(raw, "city", "city_name"), entities.UnknownCity),
		Lat:      num(raw, "lat", "latitude"),
		Lng:      num(raw, "lng", "lon", "longitude"),
		Terminal: integer(raw, "terminal"),
		Amenities: entities.Amenities{
			Restaurants: integer(amenities, "restaurants"),
			Lounges:     integer(amenities, "lounges"),
			Shops:       integer(amenities, "shops"),
			Services:    integer(amenities, "services"),
		},
	}
}

// Airports decodes a GET /api/airports body. Records without a code are
// dropped and duplicate codes keep their first occurrence.
func Airports(body []byte) ([]entities.Airport, error) {
	items, err := decodeCollection(body, "airports")
	if err != nil {
		return nil, err
	}

	out := make([]entities.Airport, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		raw, ok := item.(map[string]any)
		if !ok {
			continue
		}
		a := Airport(raw)
		if a.Code == "" {
			continue
		}
		if _, dup := seen[a.Code]; dup {
			continue
		}
		seen[a.Code] = struct{}{}
		out = append(out, a)
	}
	return out, nil
}
