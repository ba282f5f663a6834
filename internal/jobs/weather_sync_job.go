package jobs

import (
	"context"
	"time"

	"trippilot/skyview/internal/logging"
)

// WeatherSyncer rebuilds the local weather snapshot from the shared cache.
type WeatherSyncer interface {
	Sync(ctx context.Context) error
}

// WeatherSyncJob keeps the weather snapshot used for marker styling in
// step with the cache, so expired reports and reports written by other
// instances reach the map.
type WeatherSyncJob struct {
	weather WeatherSyncer
	timeout time.Duration
}

func NewWeatherSyncJob(weather WeatherSyncer) *WeatherSyncJob {
	return &WeatherSyncJob{weather: weather, timeout: 10 * time.Second}
}

func (j *WeatherSyncJob) Run(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, j.timeout)
	defer cancel()
	return j.weather.Sync(ctx)
}

// RunScheduled syncs once immediately and then every interval.
func (j *WeatherSyncJob) RunScheduled(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	if err := j.Run(ctx); err != nil {
		logging.Warn("Initial weather sync failed", "error", err.Error())
	}

	for {
		select {
		case <-ticker.C:
			if err := j.Run(ctx); err != nil {
				logging.Warn("Scheduled weather sync failed", "error", err.Error())
			}
		case <-ctx.Done():
			logging.Info("Shutting down weather sync")
			return
		}
	}
}
