package jobs

import (
	"context"
	"time"
)

// Jobs holds the background jobs started at boot.
type Jobs struct {
	ViewReaper  *ViewReaperJob
	WeatherSync *WeatherSyncJob
}

// Intervals of the scheduled jobs. Zero values fall back to one minute for
// the reaper and thirty seconds for weather.
type Intervals struct {
	ViewReap    time.Duration
	WeatherSync time.Duration
}

// InitializeJobs starts every background job. They stop when ctx is
// cancelled.
func InitializeJobs(ctx context.Context, views ViewReaper, weather WeatherSyncer, iv Intervals) *Jobs {
	if iv.ViewReap <= 0 {
		iv.ViewReap = time.Minute
	}
	if iv.WeatherSync <= 0 {
		iv.WeatherSync = 30 * time.Second
	}

	j := &Jobs{
		ViewReaper:  NewViewReaperJob(views),
		WeatherSync: NewWeatherSyncJob(weather),
	}

	go j.ViewReaper.RunScheduled(ctx, iv.ViewReap)
	go j.WeatherSync.RunScheduled(ctx, iv.WeatherSync)

	return j
}
