package normalize

import (
	"fmt"

	"trippilot/skyview/internal/models/entities"
)

const unknownAirline = "Unknown Airline"

// Flight normalizes one raw record from the live-flight endpoint. The
// endpoint only returns airborne traffic, so the status is always In Air.
func Flight(raw map[string]any, index int) entities.Flight {
	callsign := str(raw, "flightNumber", "callsign")

	id := str(raw, "id", "icao24")
	if id == "" {
		id = callsign
	}
	if id == "" {
		id = fmt.Sprintf("flight_%d", index)
	}

	airline := str(raw, "airline")
	if airline == "" && len(callsign) >= 3 {
		airline = callsign[:3]
	}

	return entities.Flight{
		ID:           id,
		FlightNumber: orDefault(callsign, entities.UnknownRoute),
		Airline:      orDefault(airline, unknownAirline),
		Origin:       orDefault(str(raw, "origin"), entities.UnknownRoute),
		Destination:  orDefault(str(raw, "destination"), entities.UnknownRoute),
		Lat:          num(raw, "lat", "latitude"),
		Lon:          num(raw, "lon", "lng", "longitude"),
		Altitude:     num(raw, "altitude"),
		Speed:        num(raw, "speed", "velocity"),
		Heading:      num(raw, "heading"),
		Status:       entities.StatusInAir,
	}
}

// Flights decodes a GET /api/flights/active body. Duplicate ids keep their
// first occurrence so every id maps to exactly one marker.
func Flights(body []byte) ([]entities.Flight, error) {
	items, err := decodeCollection(body, "flights")
	if err != nil {
		return nil, err
	}

	out := make([]entities.Flight, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for i, item := range items {
		raw, ok := item.(map[string]any)
		if !ok {
			continue
		}
		f := Flight(raw, i)
		if _, dup := seen[f.ID]; dup {
			continue
		}
		seen[f.ID] = struct{}{}
		out = append(out, f)
	}
	return out, nil
}

// WithProgress fills the route-completion percentage of airborne flights
// whose origin and destination resolve in idx.
func WithProgress(flights []entities.Flight, idx entities.AirportIndex) []entities.Flight {
	out := make([]entities.Flight, len(flights))
	for i, f := range flights {
		f.Progress = progress(f, idx)
		out[i] = f
	}
	return out
}
