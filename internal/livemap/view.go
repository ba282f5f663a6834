// Package livemap ties one mounted map view together: its poller, the
// marker reconciler, the selection bridge and the in-memory surface they
// draw on.
package livemap

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"trippilot/skyview/internal/logging"
	"trippilot/skyview/internal/mapsurface"
	"trippilot/skyview/internal/metrics"
	"trippilot/skyview/internal/models/entities"
	"trippilot/skyview/internal/normalize"
	"trippilot/skyview/internal/poller"
	"trippilot/skyview/internal/reconciler"
	"trippilot/skyview/internal/selection"
)

var (
	ErrViewClosed     = errors.New("view unmounted")
	ErrFlightNotFound = errors.New("flight not in latest poll")
)

// Options configures a view at mount time.
type Options struct {
	Mode    reconciler.DisplayMode
	Poller  poller.Config
	Weather reconciler.WeatherLookup
	Metrics *metrics.MetricsRegistry
}

// View is one mounted map. All methods are safe for concurrent use.
type View struct {
	ID        string
	CreatedAt time.Time

	poller  *poller.Poller
	canvas  *mapsurface.Canvas
	weather reconciler.WeatherLookup
	log     *zap.SugaredLogger

	mu             sync.Mutex
	closed         bool
	recon          *reconciler.Reconciler
	bridge         *selection.Bridge
	airports       []entities.Airport
	airportIdx     entities.AirportIndex
	airportsLoaded bool
	rawFlights     []entities.Flight
	flights        []entities.Flight
}

// New wires a view but does not start polling; call Mount.
func New(id string, fetcher poller.Fetcher, opts Options) *View {
	log := logging.WithView(id)
	canvas := mapsurface.NewCanvas()

	pcfg := opts.Poller
	pcfg.Metrics = opts.Metrics
	pcfg.Logger = log

	v := &View{
		ID:         id,
		CreatedAt:  time.Now(),
		poller:     poller.New(fetcher, pcfg),
		canvas:     canvas,
		weather:    opts.Weather,
		log:        log,
		recon:      reconciler.New(canvas, opts.Mode, opts.Metrics, log),
		bridge:     selection.New(canvas, log),
		airportIdx: entities.AirportIndex{},
	}
	v.poller.Subscribe(v.onSnapshot)
	return v
}

// Mount loads the enabled kinds once, in parallel, and then schedules
// their timers. A kind whose first load failed is retried immediately by
// its timer instead of waiting a full interval.
func (v *View) Mount(ctx context.Context) error {
	kinds := []poller.Kind{poller.KindAirports}
	if v.recon.Mode().ShowFlights {
		kinds = append(kinds, poller.KindFlights)
	}

	loaded := make([]bool, len(kinds))
	g, gctx := errgroup.WithContext(ctx)
	for i, kind := range kinds {
		i, kind := i, kind
		g.Go(func() error {
			_, err := v.poller.Refresh(gctx, kind)
			if errors.Is(err, poller.ErrClosed) {
				return ErrViewClosed
			}
			loaded[i] = err == nil
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, kind := range kinds {
		start := v.poller.StartDeferred
		if !loaded[i] {
			start = v.poller.Start
		}
		if err := start(kind); err != nil {
			if errors.Is(err, poller.ErrClosed) {
				return ErrViewClosed
			}
			return fmt.Errorf("start %s poller: %w", kind, err)
		}
	}

	v.log.Infow("View mounted", "kinds", kinds)
	return nil
}

// Unmount stops polling and removes everything the view drew. Responses
// still in flight are dropped.
func (v *View) Unmount() {
	v.poller.Close()

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return
	}
	v.closed = true
	v.bridge.Clear()
	_ = v.recon.Teardown()

	v.log.Infow("View unmounted", "lifetime", time.Since(v.CreatedAt).String())
}

// Closed reports whether the view has been unmounted.
func (v *View) Closed() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.closed
}

func (v *View) Mode() reconciler.DisplayMode {
	return v.recon.Mode()
}

// Refresh fetches kind out of band and reconciles the result.
func (v *View) Refresh(ctx context.Context, kind poller.Kind) (int, error) {
	snap, err := v.poller.Refresh(ctx, kind)
	if errors.Is(err, poller.ErrClosed) {
		return 0, ErrViewClosed
	}
	if err != nil {
		return 0, err
	}
	return snap.Len(), nil
}

// Map returns what is currently drawn.
func (v *View) Map() mapsurface.State {
	return v.canvas.Snapshot()
}

// Flights returns the latest flights with route progress filled in.
func (v *View) Flights() []entities.Flight {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]entities.Flight, len(v.flights))
	copy(out, v.flights)
	return out
}

// Airports returns the latest airports.
func (v *View) Airports() []entities.Airport {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]entities.Airport, len(v.airports))
	copy(out, v.airports)
	return out
}

// Airport resolves code against the latest airports. loaded is false until
// an airport poll has succeeded.
func (v *View) Airport(code string) (a entities.Airport, found, loaded bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	a, found = v.airportIdx.Lookup(code)
	return a, found, v.airportsLoaded
}

// Selection returns the current selection.
func (v *View) Selection() entities.Selection {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.bridge.Current()
}

// SelectFlight selects the flight with id from the latest poll.
func (v *View) SelectFlight(id string) (entities.Flight, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return entities.Flight{}, ErrViewClosed
	}

	for _, f := range v.flights {
		if f.ID == id {
			v.bridge.SelectFlight(f)
			v.redrawLocked()
			return f, nil
		}
	}
	return entities.Flight{}, fmt.Errorf("%w: %s", ErrFlightNotFound, id)
}

// SelectAirport selects code. Unknown codes are kept as the selection but
// do not move the camera.
func (v *View) SelectAirport(code string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return ErrViewClosed
	}

	v.bridge.SelectAirport(code)
	v.redrawLocked()
	return nil
}

// ClearSelection drops any selection.
func (v *View) ClearSelection() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return ErrViewClosed
	}

	v.bridge.Clear()
	v.redrawLocked()
	return nil
}

// RestyleAirports redraws airport markers after weather changed.
func (v *View) RestyleAirports() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return
	}
	v.reconcileAirportsLocked()
}

func (v *View) onSnapshot(s poller.Snapshot) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return
	}

	switch s.Kind {
	case poller.KindAirports:
		v.airports = s.Airports
		v.airportIdx = entities.IndexAirports(s.Airports)
		v.airportsLoaded = true
		v.bridge.SetAirports(v.airportIdx)
		v.flights = normalize.WithProgress(v.rawFlights, v.airportIdx)
		v.reconcileAirportsLocked()
	case poller.KindFlights:
		v.rawFlights = s.Flights
		v.flights = normalize.WithProgress(s.Flights, v.airportIdx)
		v.bridge.FlightsUpdated(v.flights)
		v.reconcileFlightsLocked()
	}
}

func (v *View) redrawLocked() {
	v.reconcileFlightsLocked()
	v.reconcileAirportsLocked()
}

func (v *View) reconcileFlightsLocked() {
	var selected string
	if f := v.bridge.Current().Flight; f != nil {
		selected = f.ID
	}
	if err := v.recon.ReconcileFlights(v.flights, selected); err != nil {
		v.log.Warnw("Flight reconcile incomplete", "error", err.Error())
	}
}

func (v *View) reconcileAirportsLocked() {
	selected := v.bridge.Current().AirportCode
	if err := v.recon.ReconcileAirports(v.airports, v.weather, selected); err != nil {
		v.log.Warnw("Airport reconcile incomplete", "error", err.Error())
	}
}
