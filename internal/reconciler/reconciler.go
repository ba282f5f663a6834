// Package reconciler keeps the markers on a map surface in step with the
// latest polled collections. Markers are keyed by record id; a poll adds
// what is new, updates what changed, removes what vanished and leaves
// everything else alone.
package reconciler

import (
	"errors"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"trippilot/skyview/internal/logging"
	"trippilot/skyview/internal/mapsurface"
	"trippilot/skyview/internal/metrics"
	"trippilot/skyview/internal/models/entities"
)

// DisplayMode selects which layers a view draws.
type DisplayMode struct {
	ShowFlights  bool
	ShowAirports bool
}

// AirportsOnly is the airport page layout: larger airport markers and no
// flights.
func (d DisplayMode) AirportsOnly() bool {
	return d.ShowAirports && !d.ShowFlights
}

// WeatherLookup returns the latest weather for an airport code.
type WeatherLookup func(code string) (entities.WeatherReport, bool)

// Plan is the set of surface operations that turn one arena into another.
type Plan struct {
	Add    []mapsurface.Marker
	Update []mapsurface.Marker
	Remove []string
}

// Empty reports whether the plan changes nothing.
func (p Plan) Empty() bool {
	return len(p.Add) == 0 && len(p.Update) == 0 && len(p.Remove) == 0
}

// Diff plans the operations that replace current with desired. Markers
// whose drawn state is identical are left out of the plan.
func Diff(current map[string]mapsurface.Marker, desired []mapsurface.Marker) Plan {
	var p Plan
	keep := make(map[string]struct{}, len(desired))
	for _, m := range desired {
		keep[m.ID] = struct{}{}
		old, ok := current[m.ID]
		switch {
		case !ok:
			p.Add = append(p.Add, m)
		case !sameMarker(old, m):
			p.Update = append(p.Update, m)
		}
	}
	for id := range current {
		if _, ok := keep[id]; !ok {
			p.Remove = append(p.Remove, id)
		}
	}
	slices.Sort(p.Remove)
	return p
}

func sameMarker(a, b mapsurface.Marker) bool {
	return a.ID == b.ID &&
		a.Kind == b.Kind &&
		a.Position == b.Position &&
		a.Style == b.Style &&
		a.Selected == b.Selected &&
		a.Popup.Title == b.Popup.Title &&
		slices.Equal(a.Popup.Lines, b.Popup.Lines)
}

// Reconciler owns the marker arenas of one view. It is not safe for
// concurrent use; the owning view serializes calls.
type Reconciler struct {
	surface mapsurface.Surface
	mode    DisplayMode
	metrics *metrics.MetricsRegistry
	log     *zap.SugaredLogger

	flights  map[string]mapsurface.Marker
	airports map[string]mapsurface.Marker
}

// New returns a reconciler drawing on surface. m may be nil.
func New(surface mapsurface.Surface, mode DisplayMode, m *metrics.MetricsRegistry, log *zap.SugaredLogger) *Reconciler {
	if log == nil {
		log = logging.GetLogger()
	}
	return &Reconciler{
		surface:  surface,
		mode:     mode,
		metrics:  m,
		log:      log,
		flights:  make(map[string]mapsurface.Marker),
		airports: make(map[string]mapsurface.Marker),
	}
}

func (r *Reconciler) Mode() DisplayMode {
	return r.mode
}

// FlightIDs returns the ids currently drawn as flight markers, sorted.
func (r *Reconciler) FlightIDs() []string {
	return sortedKeys(r.flights)
}

// AirportCodes returns the codes currently drawn as airport markers, sorted.
func (r *Reconciler) AirportCodes() []string {
	return sortedKeys(r.airports)
}

// ReconcileFlights brings the flight layer in line with flights.
// selectedID marks the selected flight, if any.
func (r *Reconciler) ReconcileFlights(flights []entities.Flight, selectedID string) error {
	var desired []mapsurface.Marker
	if r.mode.ShowFlights {
		desired = make([]mapsurface.Marker, 0, len(flights))
		for _, f := range flights {
			desired = append(desired, FlightMarker(f, f.ID == selectedID))
		}
	}
	return r.apply(mapsurface.MarkerFlight, r.flights, Diff(r.flights, desired))
}

// ReconcileAirports brings the airport layer in line with airports.
// weather may be nil, in which case every border is green.
func (r *Reconciler) ReconcileAirports(airports []entities.Airport, weather WeatherLookup, selectedCode string) error {
	var desired []mapsurface.Marker
	if r.mode.ShowAirports {
		airportsOnly := r.mode.AirportsOnly()
		desired = make([]mapsurface.Marker, 0, len(airports))
		for _, a := range airports {
			var report *entities.WeatherReport
			if weather != nil {
				if w, ok := weather(a.Code); ok {
					report = &w
				}
			}
			desired = append(desired, AirportMarker(a, report, a.Code == selectedCode, airportsOnly))
		}
	}
	return r.apply(mapsurface.MarkerAirport, r.airports, Diff(r.airports, desired))
}

// Teardown removes every marker this reconciler drew.
func (r *Reconciler) Teardown() error {
	err := errors.Join(
		r.apply(mapsurface.MarkerFlight, r.flights, Diff(r.flights, nil)),
		r.apply(mapsurface.MarkerAirport, r.airports, Diff(r.airports, nil)),
	)
	if err != nil {
		r.log.Warnw("Marker teardown incomplete", "error", err.Error())
	}
	return err
}

func (r *Reconciler) apply(kind mapsurface.MarkerKind, arena map[string]mapsurface.Marker, p Plan) error {
	if p.Empty() {
		return nil
	}
	before := len(arena)
	var errs []error

	for _, id := range p.Remove {
		if err := r.surface.RemoveMarker(kind, id); err != nil && !errors.Is(err, mapsurface.ErrMarkerNotFound) {
			errs = append(errs, fmt.Errorf("remove %s %s: %w", kind, id, err))
			continue
		}
		delete(arena, id)
	}
	for _, m := range p.Update {
		if err := r.surface.UpdateMarker(m); err != nil {
			errs = append(errs, fmt.Errorf("update %s %s: %w", kind, m.ID, err))
			continue
		}
		arena[m.ID] = m
	}
	for _, m := range p.Add {
		if err := r.surface.AddMarker(m); err != nil {
			errs = append(errs, fmt.Errorf("add %s %s: %w", kind, m.ID, err))
			continue
		}
		arena[m.ID] = m
	}

	if r.metrics != nil {
		r.metrics.MarkersActive.WithLabelValues(string(kind)).Add(float64(len(arena) - before))
	}
	r.log.Debugw("Markers reconciled",
		"kind", kind,
		"added", len(p.Add),
		"updated", len(p.Update),
		"removed", len(p.Remove),
	)
	return errors.Join(errs...)
}

func sortedKeys(m map[string]mapsurface.Marker) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
