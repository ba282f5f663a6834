package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"trippilot/skyview/internal/common"
	"trippilot/skyview/internal/constants"
	"trippilot/skyview/internal/logging"
	"trippilot/skyview/internal/models/dtos"
)

var ErrInvalidICAO24 = errors.New("icao24 cannot be empty")

// FlightTracker resolves the route of a live aircraft.
type FlightTracker interface {
	TrackFlight(ctx context.Context, icao24 string) (*dtos.TrackFlightResponse, error)
}

// TrackService caches route lookups by aircraft.
type TrackService struct {
	tracker FlightTracker
	cache   common.CacheInterface
	ttl     time.Duration
}

func NewTrackService(tracker FlightTracker, cache common.CacheInterface, ttl time.Duration) *TrackService {
	return &TrackService{tracker: tracker, cache: cache, ttl: ttl}
}

// Track returns the route of icao24, from cache when possible.
func (s *TrackService) Track(ctx context.Context, icao24 string) (*dtos.TrackFlightResponse, error) {
	icao24 = strings.ToLower(strings.TrimSpace(icao24))
	if icao24 == "" {
		return nil, ErrInvalidICAO24
	}
	key := string(constants.CachePrefixTrackedFlight) + icao24

	var cached dtos.TrackFlightResponse
	found, err := s.cache.GetJSON(ctx, key, &cached)
	if err != nil {
		logging.Warn("Track cache read failed", "icao24", icao24, "error", err.Error())
	}
	if found {
		return &cached, nil
	}

	resp, err := s.tracker.TrackFlight(ctx, icao24)
	if err != nil {
		return nil, fmt.Errorf("track %s: %w", icao24, err)
	}
	if err := s.cache.Set(ctx, key, resp, s.ttl); err != nil {
		logging.Warn("Track cache write failed", "icao24", icao24, "error", err.Error())
	}
	return resp, nil
}
