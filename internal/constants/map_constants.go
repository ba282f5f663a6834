package constants

import "time"

// Flight marker fill colours, keyed by status
const (
	ColorInAir    = "#3b82f6"
	ColorDelayed  = "#f59e0b"
	ColorOnTime   = "#22c55e"
	ColorBoarding = "#06b6d4"
	ColorUnknown  = "#6b7280"
)

// Airport marker border colours, keyed by weather severity
const (
	SeverityColorRed    = "#ef4444"
	SeverityColorYellow = "#f59e0b"
	SeverityColorGreen  = "#22c55e"
)

// Marker sizes in pixels
const (
	FlightMarkerSize                 = 36
	AirportMarkerSize                = 28
	AirportMarkerSizeAirportsOnly    = 32
	AirportMarkerSizeSelected        = 40
	AirportMarkerSizeSelectedAirport = 48
)

// The flight icon points east by default.
const FlightIconHeadingOffset = 90.0

// Camera
const (
	FlightZoom     = 7.0
	AirportZoom    = 10.0
	FlyToDuration  = 1500 * time.Millisecond
	DefaultLat     = 20.5937
	DefaultLng     = 78.9629
	DefaultZoom    = 4.5
	RouteLineColor = ColorInAir
)

// Lists and search
const (
	FlightListLimit  = 20
	SearchMinLength  = 2
	SearchMaxResults = 5
)

// Route overlay
const (
	RouteTraveledWidth    = 3.0
	RouteTraveledOpacity  = 0.8
	RouteRemainingWidth   = 2.0
	RouteRemainingOpacity = 0.4
	RouteDashLength       = 4.0
)
