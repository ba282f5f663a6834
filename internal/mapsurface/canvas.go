package mapsurface

import (
	"fmt"
	"sort"
	"sync"

	"trippilot/skyview/internal/constants"
)

type markerKey struct {
	kind MarkerKind
	id   string
}

// OpCounts tallies the calls a surface has received.
type OpCounts struct {
	Adds        int `json:"adds"`
	Updates     int `json:"updates"`
	Removes     int `json:"removes"`
	FlyTos      int `json:"flyTos"`
	RouteDraws  int `json:"routeDraws"`
	RouteClears int `json:"routeClears"`
}

// State is a copy of everything currently drawn.
type State struct {
	Version uint64   `json:"version"`
	Camera  Camera   `json:"camera"`
	Markers []Marker `json:"markers"`
	Route   *Route   `json:"route,omitempty"`
	Ops     OpCounts `json:"ops"`
}

// Canvas is an in-memory Surface. Version increases on every change.
type Canvas struct {
	mu      sync.RWMutex
	markers map[markerKey]Marker
	camera  Camera
	route   *Route
	version uint64
	ops     OpCounts
}

// NewCanvas returns an empty canvas centred on the default view.
func NewCanvas() *Canvas {
	return &Canvas{
		markers: make(map[markerKey]Marker),
		camera: Camera{
			Center: LatLng{Lat: constants.DefaultLat, Lng: constants.DefaultLng},
			Zoom:   constants.DefaultZoom,
		},
	}
}

func (c *Canvas) AddMarker(m Marker) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	k := markerKey{m.Kind, m.ID}
	if _, ok := c.markers[k]; ok {
		return fmt.Errorf("%w: %s %s", ErrMarkerExists, m.Kind, m.ID)
	}
	c.markers[k] = m
	c.ops.Adds++
	c.version++
	return nil
}

func (c *Canvas) UpdateMarker(m Marker) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	k := markerKey{m.Kind, m.ID}
	if _, ok := c.markers[k]; !ok {
		return fmt.Errorf("%w: %s %s", ErrMarkerNotFound, m.Kind, m.ID)
	}
	c.markers[k] = m
	c.ops.Updates++
	c.version++
	return nil
}

func (c *Canvas) RemoveMarker(kind MarkerKind, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	k := markerKey{kind, id}
	if _, ok := c.markers[k]; !ok {
		return fmt.Errorf("%w: %s %s", ErrMarkerNotFound, kind, id)
	}
	delete(c.markers, k)
	c.ops.Removes++
	c.version++
	return nil
}

func (c *Canvas) FlyTo(cam Camera) {
	c.mu.Lock()
	defer c.mu.Unlock()

	cam.DurationMs = cam.Duration.Milliseconds()
	c.camera = cam
	c.ops.FlyTos++
	c.version++
}

func (c *Canvas) SetRoute(r Route) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.route = &r
	c.ops.RouteDraws++
	c.version++
}

func (c *Canvas) ClearRoute() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.ops.RouteClears++
	if c.route == nil {
		return
	}
	c.route = nil
	c.version++
}

// Marker returns the drawn marker for (kind, id).
func (c *Canvas) Marker(kind MarkerKind, id string) (Marker, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	m, ok := c.markers[markerKey{kind, id}]
	return m, ok
}

// Count returns the number of markers of kind.
func (c *Canvas) Count(kind MarkerKind) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	n := 0
	for k := range c.markers {
		if k.kind == kind {
			n++
		}
	}
	return n
}

// Snapshot copies the current state. Markers are ordered by kind then id.
func (c *Canvas) Snapshot() State {
	c.mu.RLock()
	defer c.mu.RUnlock()

	markers := make([]Marker, 0, len(c.markers))
	for _, m := range c.markers {
		markers = append(markers, m)
	}
	sort.Slice(markers, func(i, j int) bool {
		if markers[i].Kind != markers[j].Kind {
			return markers[i].Kind < markers[j].Kind
		}
		return markers[i].ID < markers[j].ID
	})

	st := State{
		Version: c.version,
		Camera:  c.camera,
		Markers: markers,
		Ops:     c.ops,
	}
	if c.route != nil {
		r := *c.route
		st.Route = &r
	}
	return st
}
