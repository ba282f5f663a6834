package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"

	"trippilot/skyview/internal/common"
	"trippilot/skyview/internal/livemap"
	"trippilot/skyview/internal/logging"
	"trippilot/skyview/internal/mapsurface"
	"trippilot/skyview/internal/metrics"
	"trippilot/skyview/internal/models/dtos"
	"trippilot/skyview/internal/models/entities"
	"trippilot/skyview/internal/poller"
	"trippilot/skyview/internal/reconciler"
)

type staticFetcher struct {
	airports []entities.Airport
	flights  []entities.Flight
}

func (f *staticFetcher) FetchAirports(ctx context.Context) ([]entities.Airport, error) {
	return f.airports, nil
}

func (f *staticFetcher) FetchFlights(ctx context.Context) ([]entities.Flight, error) {
	return f.flights, nil
}

type viewServiceFixture struct {
	svc     *ViewService
	signer  *common.ViewTokenSigner
	weather *WeatherService
	metrics *metrics.MetricsRegistry
}

func newViewServiceFixture(t *testing.T, idleTTL time.Duration) *viewServiceFixture {
	t.Helper()
	logging.SetLogger(zap.NewNop())

	cache := common.NewCacheService(time.Hour, 0)
	signer := common.NewViewTokenSigner([]byte("test-secret"), time.Hour, cache)
	weather := NewWeatherService(cache, time.Hour)
	reg := metrics.NewMetricsRegistry(prometheus.NewRegistry())
	fetcher := &staticFetcher{
		airports: []entities.Airport{{Code: "DEL", City: "Delhi", Lat: 28.56, Lng: 77.1}},
		flights: []entities.Flight{{
			ID: "f1", FlightNumber: "AI101", Origin: "DEL", Destination: "BOM",
			Lat: 20, Lon: 75, Heading: 180, Status: entities.StatusInAir,
		}},
	}

	svc := NewViewService(fetcher, signer, weather, reg, ViewServiceConfig{
		IdleTTL: idleTTL,
		Poller:  poller.Config{AirportInterval: time.Hour, FlightInterval: time.Hour},
	})
	t.Cleanup(svc.Shutdown)
	return &viewServiceFixture{svc: svc, signer: signer, weather: weather, metrics: reg}
}

func TestViewService_MountGetUnmount(t *testing.T) {
	fx := newViewServiceFixture(t, time.Hour)
	ctx := context.Background()

	resp, err := fx.svc.Mount(ctx, dtos.MountViewRequest{})
	if err != nil {
		t.Fatalf("Mount: %v", err)
	}
	if !resp.ShowFlights || !resp.ShowAirports {
		t.Errorf("Display flags should default to true, got %+v", resp)
	}

	claims, err := fx.signer.Validate(ctx, resp.Token)
	if err != nil || claims.ViewID != resp.ViewID {
		t.Fatalf("Token should validate for the view, got %+v %v", claims, err)
	}

	view, err := fx.svc.Get(resp.ViewID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	state := view.Map()
	if len(state.Markers) != 2 {
		t.Errorf("Expected airport and flight markers after mount, got %d", len(state.Markers))
	}
	if got := testutil.ToFloat64(fx.metrics.ViewsActive); got != 1 {
		t.Errorf("Expected 1 active view, got %v", got)
	}

	if err := fx.svc.Unmount(resp.ViewID); err != nil {
		t.Fatalf("Unmount: %v", err)
	}
	if !view.Closed() {
		t.Error("View should be closed after unmount")
	}
	if len(view.Map().Markers) != 0 {
		t.Error("Unmount should tear down every marker")
	}
	if _, err := fx.svc.Get(resp.ViewID); !errors.Is(err, ErrViewNotFound) {
		t.Errorf("Expected ErrViewNotFound, got %v", err)
	}
	if _, err := fx.signer.Validate(ctx, resp.Token); !errors.Is(err, common.ErrTokenRevoked) {
		t.Errorf("Expected revoked token, got %v", err)
	}
	if err := fx.svc.Unmount(resp.ViewID); !errors.Is(err, ErrViewNotFound) {
		t.Errorf("Second unmount: expected ErrViewNotFound, got %v", err)
	}
	if got := testutil.ToFloat64(fx.metrics.ViewsActive); got != 0 {
		t.Errorf("Expected 0 active views, got %v", got)
	}
}

func TestViewService_AirportsOnlyMode(t *testing.T) {
	fx := newViewServiceFixture(t, time.Hour)
	off := false

	resp, err := fx.svc.Mount(context.Background(), dtos.MountViewRequest{ShowFlights: &off})
	if err != nil {
		t.Fatalf("Mount: %v", err)
	}
	view, _ := fx.svc.Get(resp.ViewID)
	if view.Mode() != (reconciler.DisplayMode{ShowFlights: false, ShowAirports: true}) {
		t.Errorf("Unexpected mode %+v", view.Mode())
	}
	for _, m := range view.Map().Markers {
		if m.Kind == mapsurface.MarkerFlight {
			t.Errorf("Airports-only view drew flight %s", m.ID)
		}
	}
}

func TestViewService_ReapExpired(t *testing.T) {
	fx := newViewServiceFixture(t, 150*time.Millisecond)
	ctx := context.Background()

	idle, _ := fx.svc.Mount(ctx, dtos.MountViewRequest{})
	busy, _ := fx.svc.Mount(ctx, dtos.MountViewRequest{})

	var idleView *livemap.View
	idleView, _ = fx.svc.Get(idle.ViewID)

	time.Sleep(90 * time.Millisecond)
	if _, err := fx.svc.Get(busy.ViewID); err != nil {
		t.Fatalf("Get busy: %v", err)
	}
	time.Sleep(90 * time.Millisecond)

	if n := fx.svc.ReapExpired(); n != 1 {
		t.Errorf("Expected 1 reaped view, got %d", n)
	}
	if !idleView.Closed() {
		t.Error("Reaped view should be unmounted")
	}
	if _, err := fx.svc.Get(busy.ViewID); err != nil {
		t.Errorf("Touched view should survive, got %v", err)
	}
	if fx.svc.Count() != 1 {
		t.Errorf("Expected 1 registered view, got %d", fx.svc.Count())
	}
}

func TestViewService_WeatherRestylesViews(t *testing.T) {
	fx := newViewServiceFixture(t, time.Hour)
	ctx := context.Background()

	resp, _ := fx.svc.Mount(ctx, dtos.MountViewRequest{})
	view, _ := fx.svc.Get(resp.ViewID)

	if err := fx.weather.Set(ctx, entities.WeatherReport{AirportCode: "DEL", Severity: entities.SeverityRed}); err != nil {
		t.Fatalf("Set weather: %v", err)
	}

	for _, m := range view.Map().Markers {
		if m.Kind == mapsurface.MarkerAirport && m.ID == "DEL" {
			if m.Style.FillColor != reconciler.SeverityColor(entities.SeverityRed) {
				t.Errorf("Expected red airport marker, got %s", m.Style.FillColor)
			}
			return
		}
	}
	t.Fatal("DEL marker missing")
}
