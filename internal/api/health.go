package api

import (
	"context"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"trippilot/skyview/internal/common"
	"trippilot/skyview/internal/models/entities"
)

const healthProbeTimeout = 2 * time.Second

// HealthCheckHandler handles GET /healthCheck. Every configured dependency
// is probed in parallel; the service reports down when any probe fails.
func HealthCheckHandler(probes map[string]Pinger, upSince time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		services := map[string]entities.ServiceStatus{
			"api": {Status: "ok", Details: "Serving requests"},
		}
		var mu sync.Mutex

		g, ctx := errgroup.WithContext(r.Context())
		for name, p := range probes {
			name, p := name, p
			g.Go(func() error {
				pctx, cancel := context.WithTimeout(ctx, healthProbeTimeout)
				defer cancel()

				status := entities.ServiceStatus{Status: "ok", Details: name + " reachable"}
				if err := p.Ping(pctx); err != nil {
					status = entities.ServiceStatus{Status: "down", Details: err.Error()}
				}
				mu.Lock()
				services[name] = status
				mu.Unlock()
				return nil
			})
		}
		_ = g.Wait()

		overallStatus := "ok"
		for _, svc := range services {
			if svc.Status != "ok" {
				overallStatus = "down"
				break
			}
		}

		resp := entities.HealthCheckResponse{
			Status:   overallStatus,
			Services: services,
			UpSince:  upSince,
			Uptime:   time.Since(upSince).Round(time.Second).String(),
		}
		code := http.StatusOK
		if overallStatus != "ok" {
			code = http.StatusServiceUnavailable
		}
		common.RespondSuccess(w, initTime, overallStatus, resp, code)
	}
}
