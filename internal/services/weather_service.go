package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"trippilot/skyview/internal/common"
	"trippilot/skyview/internal/constants"
	"trippilot/skyview/internal/logging"
	"trippilot/skyview/internal/models/entities"
)

var ErrInvalidAirportCode = errors.New("invalid airport code")

// WeatherService keeps airport weather in the shared cache and serves
// marker styling from a local snapshot that Sync rebuilds.
type WeatherService struct {
	cache common.CacheInterface
	ttl   time.Duration

	mu       sync.RWMutex
	snapshot map[string]entities.WeatherReport
	onChange []func()
}

func NewWeatherService(cache common.CacheInterface, ttl time.Duration) *WeatherService {
	return &WeatherService{
		cache:    cache,
		ttl:      ttl,
		snapshot: make(map[string]entities.WeatherReport),
	}
}

// OnChange registers fn to run after every snapshot change.
func (s *WeatherService) OnChange(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = append(s.onChange, fn)
}

// Set stores the report for its airport and restyles every view.
func (s *WeatherService) Set(ctx context.Context, report entities.WeatherReport) error {
	code := strings.ToUpper(strings.TrimSpace(report.AirportCode))
	if code == "" {
		return ErrInvalidAirportCode
	}
	report.AirportCode = code
	report.Severity = entities.ParseSeverity(string(report.Severity))

	if err := s.cache.Set(ctx, weatherKey(code), report, s.ttl); err != nil {
		return fmt.Errorf("store weather for %s: %w", code, err)
	}

	s.mu.Lock()
	s.snapshot[code] = report
	hooks := append([]func(){}, s.onChange...)
	s.mu.Unlock()

	logging.Info("Weather updated", "airport", code, "severity", report.Severity)
	for _, fn := range hooks {
		fn()
	}
	return nil
}

// Lookup reads the local snapshot. Its signature matches
// reconciler.WeatherLookup.
func (s *WeatherService) Lookup(code string) (entities.WeatherReport, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.snapshot[code]
	return r, ok
}

// Get reads code straight from the cache.
func (s *WeatherService) Get(ctx context.Context, code string) (entities.WeatherReport, bool, error) {
	var r entities.WeatherReport
	found, err := s.cache.GetJSON(ctx, weatherKey(strings.ToUpper(code)), &r)
	return r, found, err
}

// Alerts returns every yellow or red report, red first.
func (s *WeatherService) Alerts() []entities.WeatherReport {
	s.mu.RLock()
	defer s.mu.RUnlock()

	alerts := []entities.WeatherReport{}
	for _, r := range s.snapshot {
		if r.Severity == entities.SeverityRed || r.Severity == entities.SeverityYellow {
			alerts = append(alerts, r)
		}
	}
	sort.Slice(alerts, func(i, j int) bool {
		if alerts[i].Severity != alerts[j].Severity {
			return alerts[i].Severity == entities.SeverityRed
		}
		return alerts[i].AirportCode < alerts[j].AirportCode
	})
	return alerts
}

// Sync rebuilds the snapshot from the cache, dropping expired entries and
// picking up reports written by other instances.
func (s *WeatherService) Sync(ctx context.Context) error {
	prefix := string(constants.CachePrefixWeather)
	keys, err := s.cache.Keys(ctx, prefix)
	if err != nil {
		return fmt.Errorf("list weather keys: %w", err)
	}

	next := make(map[string]entities.WeatherReport, len(keys))
	for _, k := range keys {
		var r entities.WeatherReport
		found, err := s.cache.GetJSON(ctx, k, &r)
		if err != nil {
			logging.Warn("Skipping unreadable weather entry", "key", k, "error", err.Error())
			continue
		}
		if found {
			next[strings.TrimPrefix(k, prefix)] = r
		}
	}

	s.mu.Lock()
	changed := !sameReports(s.snapshot, next)
	s.snapshot = next
	hooks := append([]func(){}, s.onChange...)
	s.mu.Unlock()

	if changed {
		for _, fn := range hooks {
			fn()
		}
	}
	return nil
}

func sameReports(a, b map[string]entities.WeatherReport) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if w, ok := b[k]; !ok || w != v {
			return false
		}
	}
	return true
}

func weatherKey(code string) string {
	return string(constants.CachePrefixWeather) + code
}
