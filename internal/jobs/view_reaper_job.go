package jobs

import (
	"context"
	"time"

	"trippilot/skyview/internal/logging"
)

// ViewReaper unmounts views that have not been touched within their idle TTL.
type ViewReaper interface {
	ReapExpired() int
	Count() int
}

// ViewReaperJob evicts idle views on a schedule.
type ViewReaperJob struct {
	views ViewReaper
}

func NewViewReaperJob(views ViewReaper) *ViewReaperJob {
	return &ViewReaperJob{views: views}
}

// Run performs one sweep and returns how many views were evicted.
func (j *ViewReaperJob) Run(ctx context.Context) int {
	if ctx.Err() != nil {
		return 0
	}
	start := time.Now()
	reaped := j.views.ReapExpired()
	if reaped > 0 {
		logging.Info("Reaped idle views",
			"count", reaped,
			"remaining", j.views.Count(),
			"duration", time.Since(start).String(),
		)
	}
	return reaped
}

// RunScheduled sweeps every interval until ctx is cancelled.
func (j *ViewReaperJob) RunScheduled(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			j.Run(ctx)
		case <-ctx.Done():
			logging.Info("Shutting down view reaper")
			return
		}
	}
}
