package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"trippilot/skyview/internal/common"
	"trippilot/skyview/internal/constants"
	"trippilot/skyview/internal/livemap"
	"trippilot/skyview/internal/logging"
	"trippilot/skyview/internal/metrics"
	"trippilot/skyview/internal/models/dtos"
	"trippilot/skyview/internal/poller"
	"trippilot/skyview/internal/reconciler"
)

var ErrViewNotFound = errors.New("view not found")

// ViewServiceConfig tunes the view registry.
type ViewServiceConfig struct {
	// IdleTTL is how long a view survives without being touched.
	IdleTTL time.Duration
	Poller  poller.Config
}

type viewEntry struct {
	view   *livemap.View
	claims *common.ViewClaims
}

// ViewService owns every mounted view. Views that go idle are evicted by
// ReapExpired, which unmounts them and revokes their token.
type ViewService struct {
	fetcher poller.Fetcher
	signer  *common.ViewTokenSigner
	weather *WeatherService
	metrics *metrics.MetricsRegistry
	cfg     ViewServiceConfig

	// mu orders touches against reaping so a reaped view is never re-added.
	mu       sync.Mutex
	registry *cache.Cache
}

func NewViewService(fetcher poller.Fetcher, signer *common.ViewTokenSigner, weather *WeatherService, m *metrics.MetricsRegistry, cfg ViewServiceConfig) *ViewService {
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = 30 * time.Minute
	}
	s := &ViewService{
		fetcher:  fetcher,
		signer:   signer,
		weather:  weather,
		metrics:  m,
		cfg:      cfg,
		registry: cache.New(cfg.IdleTTL, 0),
	}
	s.registry.OnEvicted(s.evicted)
	if weather != nil {
		weather.OnChange(s.RestyleAll)
	}
	return s
}

// Mount creates a view, loads its data once and starts its pollers.
// Both display flags default to true.
func (s *ViewService) Mount(ctx context.Context, req dtos.MountViewRequest) (*dtos.MountViewResponse, error) {
	mode := reconciler.DisplayMode{ShowFlights: true, ShowAirports: true}
	if req.ShowFlights != nil {
		mode.ShowFlights = *req.ShowFlights
	}
	if req.ShowAirports != nil {
		mode.ShowAirports = *req.ShowAirports
	}

	id := uuid.New().String()
	opts := livemap.Options{
		Mode:    mode,
		Poller:  s.cfg.Poller,
		Metrics: s.metrics,
	}
	if s.weather != nil {
		opts.Weather = s.weather.Lookup
	}
	view := livemap.New(id, s.fetcher, opts)

	if err := view.Mount(ctx); err != nil {
		view.Unmount()
		return nil, fmt.Errorf("mount view: %w", err)
	}

	token, claims, err := s.signer.Issue(id)
	if err != nil {
		view.Unmount()
		return nil, err
	}

	s.mu.Lock()
	s.registry.SetDefault(id, &viewEntry{view: view, claims: claims})
	s.mu.Unlock()
	if s.metrics != nil {
		s.metrics.ViewsActive.Inc()
	}

	logging.Info("View registered",
		"view_id", id,
		"show_flights", mode.ShowFlights,
		"show_airports", mode.ShowAirports,
	)

	return &dtos.MountViewResponse{
		ViewID:       id,
		Token:        token,
		ExpiresAt:    claims.ExpiresAt,
		ShowFlights:  mode.ShowFlights,
		ShowAirports: mode.ShowAirports,
		ChatGreeting: constants.ChatGreeting,
	}, nil
}

// Get returns the view and extends its idle deadline.
func (s *ViewService) Get(id string) (*livemap.View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, found := s.registry.Get(id)
	if !found {
		return nil, ErrViewNotFound
	}
	entry := item.(*viewEntry)
	if entry.view.Closed() {
		return nil, ErrViewNotFound
	}
	s.registry.SetDefault(id, entry)
	return entry.view, nil
}

// Unmount removes the view now.
func (s *ViewService) Unmount(id string) error {
	s.mu.Lock()
	_, found := s.registry.Get(id)
	if found {
		s.registry.Delete(id)
	}
	s.mu.Unlock()

	if !found {
		return ErrViewNotFound
	}
	return nil
}

// Each calls fn for every live view.
func (s *ViewService) Each(fn func(*livemap.View)) {
	for _, item := range s.registry.Items() {
		fn(item.Object.(*viewEntry).view)
	}
}

// RestyleAll redraws airport markers of every view.
func (s *ViewService) RestyleAll() {
	s.Each(func(v *livemap.View) {
		v.RestyleAirports()
	})
}

// ReapExpired unmounts every view past its idle deadline.
func (s *ViewService) ReapExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	before := s.registry.ItemCount()
	s.registry.DeleteExpired()
	return before - s.registry.ItemCount()
}

// Count returns the number of registered views, including expired views
// not yet reaped.
func (s *ViewService) Count() int {
	return s.registry.ItemCount()
}

// Shutdown unmounts every view.
func (s *ViewService) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id := range s.registry.Items() {
		s.registry.Delete(id)
	}
	s.registry.DeleteExpired()
}

func (s *ViewService) evicted(id string, item interface{}) {
	entry, ok := item.(*viewEntry)
	if !ok {
		return
	}
	entry.view.Unmount()
	if s.metrics != nil {
		s.metrics.ViewsActive.Dec()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.signer.Revoke(ctx, entry.claims.TokenID, entry.claims.ExpiresAt); err != nil {
		logging.Warn("Failed to revoke view token", "view_id", id, "error", err.Error())
	}
	logging.Info("View evicted", "view_id", id)
}
