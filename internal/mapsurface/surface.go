// Package mapsurface is the rendering side of a map view: markers, the
// camera and the selected flight's route overlay. Canvas keeps that state
// in memory and the browser paints whatever Snapshot returns.
package mapsurface

import (
	"errors"
	"time"
)

var (
	ErrMarkerExists   = errors.New("marker already on surface")
	ErrMarkerNotFound = errors.New("marker not on surface")
)

// MarkerKind separates the airport and flight keyspaces.
type MarkerKind string

const (
	MarkerAirport MarkerKind = "airport"
	MarkerFlight  MarkerKind = "flight"
)

type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type MarkerStyle struct {
	Size        int     `json:"size"`
	FillColor   string  `json:"fillColor,omitempty"`
	BorderColor string  `json:"borderColor,omitempty"`
	RotationDeg float64 `json:"rotationDeg"`
}

type Popup struct {
	Title string   `json:"title"`
	Lines []string `json:"lines,omitempty"`
}

// Marker is one drawn point. (Kind, ID) is unique on a surface.
type Marker struct {
	ID       string      `json:"id"`
	Kind     MarkerKind  `json:"kind"`
	Position LatLng      `json:"position"`
	Style    MarkerStyle `json:"style"`
	Popup    Popup       `json:"popup"`
	Selected bool        `json:"selected"`
}

type Camera struct {
	Center   LatLng        `json:"center"`
	Zoom     float64       `json:"zoom"`
	Duration time.Duration `json:"-"`
	// DurationMs mirrors Duration for the browser.
	DurationMs int64 `json:"durationMs"`
}

const (
	SegmentTraveled  = "traveled"
	SegmentRemaining = "remaining"
)

type RouteSegment struct {
	Type      string    `json:"type"`
	Path      []LatLng  `json:"path"`
	Color     string    `json:"color"`
	Width     float64   `json:"width"`
	Opacity   float64   `json:"opacity"`
	DashArray []float64 `json:"dashArray,omitempty"`
}

// Route is the two-segment overlay of a selected flight.
type Route struct {
	FlightID  string       `json:"flightId"`
	Traveled  RouteSegment `json:"traveled"`
	Remaining RouteSegment `json:"remaining"`
}

// Surface is what the reconciler and the selection bridge draw on.
type Surface interface {
	AddMarker(m Marker) error
	UpdateMarker(m Marker) error
	RemoveMarker(kind MarkerKind, id string) error
	FlyTo(cam Camera)
	SetRoute(r Route)
	ClearRoute()
}
