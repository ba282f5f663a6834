// Package poller owns the repeating fetch timers of one map view.
//
// Each kind has at most one timer. Every tick issues its own fetch, so a
// slow response may overlap the next tick; responses carry a per-kind
// sequence number taken when the fetch was issued and anything older than
// the last published sequence is dropped. Failed fetches leave the last
// published snapshot in place.
package poller

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"trippilot/skyview/internal/logging"
	"trippilot/skyview/internal/metrics"
	"trippilot/skyview/internal/models/entities"
)

// Fetcher loads one collection from the backend.
type Fetcher interface {
	FetchAirports(ctx context.Context) ([]entities.Airport, error)
	FetchFlights(ctx context.Context) ([]entities.Flight, error)
}

// Subscriber receives published snapshots in sequence order. It must not
// call Refresh synchronously.
type Subscriber func(Snapshot)

// Config tunes a Poller. Zero values fall back to the package defaults.
type Config struct {
	AirportInterval time.Duration
	FlightInterval  time.Duration
	FetchTimeout    time.Duration
	Metrics         *metrics.MetricsRegistry
	Logger          *zap.SugaredLogger
}

type timer struct {
	cancel     context.CancelFunc
	generation uint64
}

type kindState struct {
	issued     uint64
	published  uint64
	generation uint64
	last       *Snapshot
}

// Poller runs the airport and flight timers of one view.
type Poller struct {
	fetcher Fetcher
	cfg     Config
	log     *zap.SugaredLogger

	mu          sync.Mutex
	closed      bool
	timers      map[Kind]*timer
	state       map[Kind]*kindState
	subscribers []Subscriber

	// deliverMu serializes the sequence check with delivery so subscribers
	// observe strictly increasing sequences.
	deliverMu sync.Mutex
	wg        sync.WaitGroup
}

// New creates a stopped poller.
func New(fetcher Fetcher, cfg Config) *Poller {
	if cfg.AirportInterval <= 0 {
		cfg.AirportInterval = DefaultAirportInterval
	}
	if cfg.FlightInterval <= 0 {
		cfg.FlightInterval = DefaultFlightInterval
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = DefaultFetchTimeout
	}
	log := cfg.Logger
	if log == nil {
		log = logging.GetLogger()
	}

	return &Poller{
		fetcher: fetcher,
		cfg:     cfg,
		log:     log,
		timers:  make(map[Kind]*timer),
		state: map[Kind]*kindState{
			KindAirports: {},
			KindFlights:  {},
		},
	}
}

// Subscribe registers fn for every future publish.
func (p *Poller) Subscribe(fn Subscriber) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.subscribers = append(p.subscribers, fn)
}

// Start fetches kind immediately and then on every interval. Calling Start
// for a kind that is already running does nothing.
func (p *Poller) Start(kind Kind) error {
	return p.start(kind, true)
}

// StartDeferred is Start without the immediate fetch, for callers that
// have just loaded kind through Refresh.
func (p *Poller) StartDeferred(kind Kind) error {
	return p.start(kind, false)
}

func (p *Poller) start(kind Kind, immediate bool) error {
	if _, err := ParseKind(string(kind)); err != nil {
		return err
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return ErrClosed
	}
	if _, running := p.timers[kind]; running {
		p.mu.Unlock()
		return nil
	}
	ctx, cancel := context.WithCancel(context.Background())
	st := p.state[kind]
	st.generation++
	gen := st.generation
	p.timers[kind] = &timer{cancel: cancel, generation: gen}
	p.wg.Add(1)
	p.mu.Unlock()

	go p.run(ctx, kind, gen, immediate)

	p.log.Infow("Poller started", "kind", kind, "interval", p.interval(kind).String())
	return nil
}

// Stop cancels the timer of kind. Fetches already in flight finish but
// their results are ignored.
func (p *Poller) Stop(kind Kind) {
	p.mu.Lock()
	t, ok := p.timers[kind]
	if ok {
		delete(p.timers, kind)
	}
	p.mu.Unlock()

	if ok {
		t.cancel()
		p.log.Infow("Poller stopped", "kind", kind)
	}
}

// StopAll stops every timer and waits for the timer goroutines to exit.
func (p *Poller) StopAll() {
	for _, kind := range Kinds {
		p.Stop(kind)
	}
	p.wg.Wait()
}

// Close is StopAll that also turns every later publish, including
// Refresh, into a no-op. A closed poller cannot be restarted.
func (p *Poller) Close() {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()

	p.StopAll()
}

// Running reports whether kind has an active timer.
func (p *Poller) Running(kind Kind) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.timers[kind]
	return ok
}

// ActiveTimers returns the number of running timers.
func (p *Poller) ActiveTimers() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.timers)
}

// Latest returns the last published snapshot of kind.
func (p *Poller) Latest(kind Kind) (Snapshot, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	st, ok := p.state[kind]
	if !ok || st.last == nil {
		return Snapshot{}, false
	}
	return *st.last, true
}

// Refresh performs one synchronous fetch outside the timer schedule and
// returns the latest published snapshot afterwards. On failure the error
// is returned and the previous snapshot stays published.
func (p *Poller) Refresh(ctx context.Context, kind Kind) (Snapshot, error) {
	if _, err := ParseKind(string(kind)); err != nil {
		return Snapshot{}, err
	}
	p.mu.Lock()
	closed := p.closed
	p.mu.Unlock()
	if closed {
		return Snapshot{}, ErrClosed
	}
	if err := p.fetch(ctx, kind, 0); err != nil {
		return Snapshot{}, err
	}
	snap, _ := p.Latest(kind)
	return snap, nil
}

func (p *Poller) interval(kind Kind) time.Duration {
	if kind == KindAirports {
		return p.cfg.AirportInterval
	}
	return p.cfg.FlightInterval
}

func (p *Poller) run(ctx context.Context, kind Kind, gen uint64, immediate bool) {
	defer p.wg.Done()

	ticker := time.NewTicker(p.interval(kind))
	defer ticker.Stop()

	if immediate {
		go p.tick(kind, gen)
	}

	for {
		select {
		case <-ticker.C:
			go p.tick(kind, gen)
		case <-ctx.Done():
			return
		}
	}
}

func (p *Poller) tick(kind Kind, gen uint64) {
	ctx, cancel := context.WithTimeout(context.Background(), p.cfg.FetchTimeout)
	defer cancel()
	_ = p.fetch(ctx, kind, gen)
}

// fetch issues one request for kind. gen is the timer generation that
// issued it, or 0 for Refresh.
func (p *Poller) fetch(ctx context.Context, kind Kind, gen uint64) error {
	p.mu.Lock()
	st := p.state[kind]
	st.issued++
	seq := st.issued
	p.mu.Unlock()

	start := time.Now()
	snap := Snapshot{Kind: kind, Seq: seq}
	var err error
	switch kind {
	case KindAirports:
		snap.Airports, err = p.fetcher.FetchAirports(ctx)
	case KindFlights:
		snap.Flights, err = p.fetcher.FetchFlights(ctx)
	}
	snap.FetchedAt = time.Now()
	p.observe(kind, time.Since(start), err)

	if err != nil {
		p.log.Warnw("Poll fetch failed, keeping last known data",
			"kind", kind,
			"seq", seq,
			"error", err.Error(),
		)
		return err
	}

	p.publish(snap, gen)
	return nil
}

func (p *Poller) publish(snap Snapshot, gen uint64) {
	p.deliverMu.Lock()
	defer p.deliverMu.Unlock()

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	if gen != 0 {
		t, ok := p.timers[snap.Kind]
		if !ok || t.generation != gen {
			p.mu.Unlock()
			p.log.Debugw("Dropping response from stopped timer", "kind", snap.Kind, "seq", snap.Seq)
			return
		}
	}
	st := p.state[snap.Kind]
	if published := st.published; snap.Seq <= published {
		p.mu.Unlock()
		if p.cfg.Metrics != nil {
			p.cfg.Metrics.PollStaleDiscarded.WithLabelValues(string(snap.Kind)).Inc()
		}
		p.log.Debugw("Dropping stale response", "kind", snap.Kind, "seq", snap.Seq, "published", published)
		return
	}
	st.published = snap.Seq
	st.last = &snap
	subs := make([]Subscriber, len(p.subscribers))
	copy(subs, p.subscribers)
	p.mu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
}

func (p *Poller) observe(kind Kind, d time.Duration, err error) {
	if p.cfg.Metrics == nil {
		return
	}
	result := "success"
	if err != nil {
		result = "failure"
	}
	p.cfg.Metrics.PollFetchesTotal.WithLabelValues(string(kind), result).Inc()
	p.cfg.Metrics.PollFetchDuration.WithLabelValues(string(kind)).Observe(d.Seconds())
}
