package reconciler

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"trippilot/skyview/internal/constants"
	"trippilot/skyview/internal/mapsurface"
	"trippilot/skyview/internal/models/entities"
)

// FlightColor maps a status to the marker fill colour.
func FlightColor(status entities.FlightStatus) string {
	switch status {
	case entities.StatusInAir:
		return constants.ColorInAir
	case entities.StatusDelayed:
		return constants.ColorDelayed
	case entities.StatusOnTime:
		return constants.ColorOnTime
	case entities.StatusBoarding:
		return constants.ColorBoarding
	default:
		return constants.ColorUnknown
	}
}

// SeverityColor maps a weather severity to the airport border colour.
// Anything that is not red or yellow is drawn green.
func SeverityColor(s entities.Severity) string {
	switch s {
	case entities.SeverityRed:
		return constants.SeverityColorRed
	case entities.SeverityYellow:
		return constants.SeverityColorYellow
	default:
		return constants.SeverityColorGreen
	}
}

// FlightRotation converts a compass heading to the icon rotation.
func FlightRotation(heading float64) float64 {
	return heading - constants.FlightIconHeadingOffset
}

// AirportSize returns the marker size in pixels.
func AirportSize(selected, airportsOnly bool) int {
	switch {
	case selected && airportsOnly:
		return constants.AirportMarkerSizeSelectedAirport
	case selected:
		return constants.AirportMarkerSizeSelected
	case airportsOnly:
		return constants.AirportMarkerSizeAirportsOnly
	default:
		return constants.AirportMarkerSize
	}
}

// FlightMarker builds the drawn marker for f.
func FlightMarker(f entities.Flight, selected bool) mapsurface.Marker {
	return mapsurface.Marker{
		ID:       f.ID,
		Kind:     mapsurface.MarkerFlight,
		Position: mapsurface.LatLng{Lat: f.Lat, Lng: f.Lon},
		Style: mapsurface.MarkerStyle{
			Size:        constants.FlightMarkerSize,
			FillColor:   FlightColor(f.Status),
			RotationDeg: FlightRotation(f.Heading),
		},
		Popup: mapsurface.Popup{
			Title: f.FlightNumber,
			Lines: []string{
				fmt.Sprintf("%s → %s", f.Origin, f.Destination),
				fmt.Sprintf("Alt: %s ft", thousands(int64(math.Round(f.Altitude)))),
			},
		},
		Selected: selected,
	}
}

// AirportMarker builds the drawn marker for a. weather may be nil.
func AirportMarker(a entities.Airport, weather *entities.WeatherReport, selected, airportsOnly bool) mapsurface.Marker {
	severity := entities.SeverityGreen
	popup := mapsurface.Popup{Title: fmt.Sprintf("%s - %s", a.Code, a.City)}
	if weather != nil {
		severity = weather.Severity
		popup.Lines = []string{fmt.Sprintf("%s %s°C - %s",
			weather.Icon,
			strconv.FormatFloat(weather.TemperatureC, 'f', -1, 64),
			weather.Condition,
		)}
	}

	return mapsurface.Marker{
		ID:       a.Code,
		Kind:     mapsurface.MarkerAirport,
		Position: mapsurface.LatLng{Lat: a.Lat, Lng: a.Lng},
		Style: mapsurface.MarkerStyle{
			Size:        AirportSize(selected, airportsOnly),
			BorderColor: SeverityColor(severity),
		},
		Popup:    popup,
		Selected: selected,
	}
}

func thousands(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
