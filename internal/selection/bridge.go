// Package selection tracks the single selected flight or airport of a
// view and translates selection changes into camera moves and the route
// overlay.
package selection

import (
	"go.uber.org/zap"

	"trippilot/skyview/internal/constants"
	"trippilot/skyview/internal/logging"
	"trippilot/skyview/internal/mapsurface"
	"trippilot/skyview/internal/models/entities"
)

// Bridge is not safe for concurrent use; the owning view serializes calls.
type Bridge struct {
	surface  mapsurface.Surface
	log      *zap.SugaredLogger
	current  entities.Selection
	airports entities.AirportIndex
}

func New(surface mapsurface.Surface, log *zap.SugaredLogger) *Bridge {
	if log == nil {
		log = logging.GetLogger()
	}
	return &Bridge{
		surface:  surface,
		log:      log,
		airports: entities.AirportIndex{},
	}
}

// Current returns a copy of the selection.
func (b *Bridge) Current() entities.Selection {
	sel := entities.Selection{AirportCode: b.current.AirportCode}
	if b.current.Flight != nil {
		f := *b.current.Flight
		sel.Flight = &f
	}
	return sel
}

// SelectFlight replaces any selection with f. The camera only moves for
// airborne flights.
func (b *Bridge) SelectFlight(f entities.Flight) {
	b.current = entities.Selection{Flight: &f}

	if f.Airborne() {
		b.surface.FlyTo(mapsurface.Camera{
			Center:   mapsurface.LatLng{Lat: f.Lat, Lng: f.Lon},
			Zoom:     constants.FlightZoom,
			Duration: constants.FlyToDuration,
		})
	}
	b.redrawRoute()

	b.log.Debugw("Flight selected", "flight_id", f.ID, "airborne", f.Airborne())
}

// SelectAirport replaces any selection with code. The camera moves only
// when the code resolves against the latest airports.
func (b *Bridge) SelectAirport(code string) {
	b.current = entities.Selection{AirportCode: code}
	b.surface.ClearRoute()

	if a, ok := b.airports.Lookup(code); ok {
		b.surface.FlyTo(mapsurface.Camera{
			Center:   mapsurface.LatLng{Lat: a.Lat, Lng: a.Lng},
			Zoom:     constants.AirportZoom,
			Duration: constants.FlyToDuration,
		})
	} else {
		b.log.Debugw("Selected airport not in latest poll", "code", code)
	}
}

// Clear drops the selection and its route. The camera stays where it is.
func (b *Bridge) Clear() {
	b.current = entities.Selection{}
	b.surface.ClearRoute()
}

// SetAirports replaces the index used for routes and airport fly-to.
func (b *Bridge) SetAirports(idx entities.AirportIndex) {
	b.airports = idx
	if b.current.Flight != nil {
		b.redrawRoute()
	}
}

// FlightsUpdated refreshes the selected flight from a new poll and redraws
// its route when its record changed. A selected flight missing from the
// poll keeps its last known record.
func (b *Bridge) FlightsUpdated(flights []entities.Flight) {
	if b.current.Flight == nil {
		return
	}
	for _, f := range flights {
		if f.ID != b.current.Flight.ID {
			continue
		}
		if f == *b.current.Flight {
			return
		}
		b.current.Flight = &f
		b.redrawRoute()
		return
	}
}

func (b *Bridge) redrawRoute() {
	b.surface.ClearRoute()

	f := b.current.Flight
	if f == nil {
		return
	}
	r, ok := BuildRoute(*f, b.airports)
	if !ok {
		return
	}
	b.surface.SetRoute(r)
}

// BuildRoute returns the traveled and remaining segments of f. ok is false
// when origin or destination does not resolve.
func BuildRoute(f entities.Flight, idx entities.AirportIndex) (mapsurface.Route, bool) {
	origin, ok := idx.Lookup(f.Origin)
	if !ok {
		return mapsurface.Route{}, false
	}
	dest, ok := idx.Lookup(f.Destination)
	if !ok {
		return mapsurface.Route{}, false
	}

	from := mapsurface.LatLng{Lat: origin.Lat, Lng: origin.Lng}
	here := mapsurface.LatLng{Lat: f.Lat, Lng: f.Lon}
	to := mapsurface.LatLng{Lat: dest.Lat, Lng: dest.Lng}

	return mapsurface.Route{
		FlightID: f.ID,
		Traveled: mapsurface.RouteSegment{
			Type:    mapsurface.SegmentTraveled,
			Path:    []mapsurface.LatLng{from, here},
			Color:   constants.RouteLineColor,
			Width:   constants.RouteTraveledWidth,
			Opacity: constants.RouteTraveledOpacity,
		},
		Remaining: mapsurface.RouteSegment{
			Type:      mapsurface.SegmentRemaining,
			Path:      []mapsurface.LatLng{here, to},
			Color:     constants.RouteLineColor,
			Width:     constants.RouteRemainingWidth,
			Opacity:   constants.RouteRemainingOpacity,
			DashArray: []float64{constants.RouteDashLength, constants.RouteDashLength},
		},
	}, true
}
