package poller

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"

	"trippilot/skyview/internal/metrics"
	"trippilot/skyview/internal/models/entities"
)

type fakeFetcher struct {
	mu           sync.Mutex
	airportCalls int
	flightCalls  int
	airports     func(call int) ([]entities.Airport, error)
	flights      func(call int) ([]entities.Flight, error)
}

func (f *fakeFetcher) FetchAirports(ctx context.Context) ([]entities.Airport, error) {
	f.mu.Lock()
	f.airportCalls++
	call := f.airportCalls
	f.mu.Unlock()
	if f.airports == nil {
		return []entities.Airport{}, nil
	}
	return f.airports(call)
}

func (f *fakeFetcher) FetchFlights(ctx context.Context) ([]entities.Flight, error) {
	f.mu.Lock()
	f.flightCalls++
	call := f.flightCalls
	f.mu.Unlock()
	if f.flights == nil {
		return []entities.Flight{}, nil
	}
	return f.flights(call)
}

func (f *fakeFetcher) calls(kind Kind) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if kind == KindAirports {
		return f.airportCalls
	}
	return f.flightCalls
}

func newTestPoller(f Fetcher, interval time.Duration) (*Poller, *metrics.MetricsRegistry) {
	m := metrics.NewMetricsRegistry(prometheus.NewRegistry())
	p := New(f, Config{
		AirportInterval: interval,
		FlightInterval:  interval,
		FetchTimeout:    time.Second,
		Metrics:         m,
		Logger:          zap.NewNop().Sugar(),
	})
	return p, m
}

func flight(id string) entities.Flight {
	return entities.Flight{ID: id, FlightNumber: id, Status: entities.StatusInAir}
}

func TestPoller_StartFetchesImmediately(t *testing.T) {
	f := &fakeFetcher{
		airports: func(int) ([]entities.Airport, error) {
			return []entities.Airport{{Code: "DEL"}}, nil
		},
	}
	p, _ := newTestPoller(f, time.Hour)
	defer p.Close()

	got := make(chan Snapshot, 1)
	p.Subscribe(func(s Snapshot) { got <- s })

	if err := p.Start(KindAirports); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	select {
	case s := <-got:
		if s.Kind != KindAirports {
			t.Errorf("Expected kind airports, got %s", s.Kind)
		}
		if len(s.Airports) != 1 || s.Airports[0].Code != "DEL" {
			t.Errorf("Expected [DEL], got %+v", s.Airports)
		}
		if s.Seq != 1 {
			t.Errorf("Expected seq 1, got %d", s.Seq)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Expected an immediate fetch after Start")
	}
}

func TestPoller_StartIsIdempotent(t *testing.T) {
	f := &fakeFetcher{}
	p, _ := newTestPoller(f, time.Hour)
	defer p.Close()

	got := make(chan Snapshot, 4)
	p.Subscribe(func(s Snapshot) { got <- s })

	for i := 0; i < 3; i++ {
		if err := p.Start(KindFlights); err != nil {
			t.Fatalf("Start #%d: %v", i, err)
		}
	}

	select {
	case <-got:
	case <-time.After(2 * time.Second):
		t.Fatal("Expected one publish")
	}
	time.Sleep(50 * time.Millisecond)

	if n := f.calls(KindFlights); n != 1 {
		t.Errorf("Expected exactly 1 fetch, got %d", n)
	}
	if n := p.ActiveTimers(); n != 1 {
		t.Errorf("Expected 1 active timer, got %d", n)
	}
}

func TestPoller_TicksRepeatedly(t *testing.T) {
	f := &fakeFetcher{}
	p, _ := newTestPoller(f, 10*time.Millisecond)
	defer p.Close()

	if err := p.Start(KindFlights); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for f.calls(KindFlights) < 3 {
		if time.Now().After(deadline) {
			t.Fatalf("Expected at least 3 fetches, got %d", f.calls(KindFlights))
		}
		time.Sleep(5 * time.Millisecond)
	}
	if f.calls(KindAirports) != 0 {
		t.Errorf("Expected airports timer untouched, got %d calls", f.calls(KindAirports))
	}
}

func TestPoller_FailureKeepsLastKnownGood(t *testing.T) {
	f := &fakeFetcher{
		flights: func(call int) ([]entities.Flight, error) {
			if call == 1 {
				return []entities.Flight{flight("A1")}, nil
			}
			return nil, errors.New("backend unreachable")
		},
	}
	p, m := newTestPoller(f, time.Hour)
	defer p.Close()

	if _, err := p.Refresh(context.Background(), KindFlights); err != nil {
		t.Fatalf("First refresh: %v", err)
	}
	if _, err := p.Refresh(context.Background(), KindFlights); err == nil {
		t.Fatal("Expected error from failing refresh")
	}

	snap, ok := p.Latest(KindFlights)
	if !ok {
		t.Fatal("Expected a published snapshot")
	}
	if len(snap.Flights) != 1 || snap.Flights[0].ID != "A1" {
		t.Errorf("Expected last known [A1], got %+v", snap.Flights)
	}

	if v := testutil.ToFloat64(m.PollFetchesTotal.WithLabelValues("flights", "failure")); v != 1 {
		t.Errorf("Expected 1 failure, got %v", v)
	}
	if v := testutil.ToFloat64(m.PollFetchesTotal.WithLabelValues("flights", "success")); v != 1 {
		t.Errorf("Expected 1 success, got %v", v)
	}
}

func TestPoller_StaleResponseDiscarded(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	f := &fakeFetcher{
		flights: func(call int) ([]entities.Flight, error) {
			if call == 1 {
				close(entered)
				<-release
				return []entities.Flight{flight("OLD")}, nil
			}
			return []entities.Flight{flight("NEW")}, nil
		},
	}
	p, m := newTestPoller(f, time.Hour)
	defer p.Close()

	var seqs []uint64
	var mu sync.Mutex
	p.Subscribe(func(s Snapshot) {
		mu.Lock()
		seqs = append(seqs, s.Seq)
		mu.Unlock()
	})

	slowDone := make(chan struct{})
	go func() {
		defer close(slowDone)
		_, _ = p.Refresh(context.Background(), KindFlights)
	}()
	<-entered

	if _, err := p.Refresh(context.Background(), KindFlights); err != nil {
		t.Fatalf("Fast refresh: %v", err)
	}
	close(release)
	<-slowDone

	snap, _ := p.Latest(KindFlights)
	if len(snap.Flights) != 1 || snap.Flights[0].ID != "NEW" {
		t.Errorf("Expected newer response to win, got %+v", snap.Flights)
	}
	if snap.Seq != 2 {
		t.Errorf("Expected seq 2, got %d", snap.Seq)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(seqs) != 1 || seqs[0] != 2 {
		t.Errorf("Expected only seq 2 delivered, got %v", seqs)
	}
	if v := testutil.ToFloat64(m.PollStaleDiscarded.WithLabelValues("flights")); v != 1 {
		t.Errorf("Expected 1 stale discard, got %v", v)
	}
}

func TestPoller_StopIgnoresInFlightResponse(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	f := &fakeFetcher{
		flights: func(call int) ([]entities.Flight, error) {
			if call == 1 {
				close(entered)
				<-release
			}
			return []entities.Flight{flight("LATE")}, nil
		},
	}
	p, _ := newTestPoller(f, time.Hour)
	defer p.Close()

	got := make(chan Snapshot, 1)
	p.Subscribe(func(s Snapshot) { got <- s })

	if err := p.Start(KindFlights); err != nil {
		t.Fatal(err)
	}
	<-entered
	p.Stop(KindFlights)
	if p.Running(KindFlights) {
		t.Error("Expected flights timer stopped")
	}
	close(release)

	select {
	case s := <-got:
		t.Fatalf("Expected late response ignored, got %+v", s)
	case <-time.After(100 * time.Millisecond):
	}
	if _, ok := p.Latest(KindFlights); ok {
		t.Error("Expected no published snapshot")
	}
}

func TestPoller_RestartAfterStop(t *testing.T) {
	f := &fakeFetcher{}
	p, _ := newTestPoller(f, time.Hour)
	defer p.Close()

	got := make(chan Snapshot, 2)
	p.Subscribe(func(s Snapshot) { got <- s })

	_ = p.Start(KindAirports)
	<-got
	p.StopAll()
	if p.ActiveTimers() != 0 {
		t.Fatalf("Expected no timers after StopAll, got %d", p.ActiveTimers())
	}

	_ = p.Start(KindAirports)
	select {
	case s := <-got:
		if s.Seq != 2 {
			t.Errorf("Expected seq 2 after restart, got %d", s.Seq)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Expected fetch after restart")
	}
}

func TestPoller_Closed(t *testing.T) {
	p, _ := newTestPoller(&fakeFetcher{}, time.Hour)
	p.Close()

	if err := p.Start(KindFlights); !errors.Is(err, ErrClosed) {
		t.Errorf("Expected ErrClosed from Start, got %v", err)
	}
	if _, err := p.Refresh(context.Background(), KindFlights); !errors.Is(err, ErrClosed) {
		t.Errorf("Expected ErrClosed from Refresh, got %v", err)
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in      string
		want    Kind
		wantErr bool
	}{
		{"airports", KindAirports, false},
		{"flights", KindFlights, false},
		{"ships", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseKind(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseKind(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseKind(%q) = %q, want %q", tt.in, got, tt.want)
		}
		if tt.wantErr && !errors.Is(err, ErrUnknownKind) {
			t.Errorf("Expected ErrUnknownKind, got %v", err)
		}
	}
}

func TestPoller_StartDeferredWaitsForTick(t *testing.T) {
	f := &fakeFetcher{}
	p, _ := newTestPoller(f, time.Hour)
	defer p.Close()

	if err := p.StartDeferred(KindFlights); err != nil {
		t.Fatal(err)
	}
	time.Sleep(50 * time.Millisecond)

	if n := f.calls(KindFlights); n != 0 {
		t.Errorf("Expected no fetch before the first tick, got %d", n)
	}
	if !p.Running(KindFlights) {
		t.Error("Expected flights timer running")
	}
}
