package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"trippilot/skyview/internal/api"
	"trippilot/skyview/internal/logging"
	"trippilot/skyview/internal/middleware"
)

// RouterConfig carries the HTTP settings that are not service dependencies.
type RouterConfig struct {
	AllowedOrigins     []string
	RateLimitPerSecond float64
	RateLimitBurst     int
	// MetricsHandler serves /metrics. Defaults to the global Prometheus
	// registry.
	MetricsHandler http.Handler
}

func RegisterRoutes(deps *api.Dependencies, rc RouterConfig, upSince time.Time) http.Handler {
	// initialize Chi router
	r := chi.NewRouter()

	// global middleware
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.InFlightMiddleware(deps.Metrics, "all"))
	r.Use(middleware.MetricsMiddleware(deps.Metrics))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   rc.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))

	logging.Info("Router initialized with metrics and logging middleware")

	metricsHandler := rc.MetricsHandler
	if metricsHandler == nil {
		metricsHandler = promhttp.Handler()
	}
	r.Get("/healthCheck", api.HealthCheckHandler(deps.Probes, upSince))
	r.Method(http.MethodGet, "/metrics", metricsHandler)

	handlers := api.NewHandlers(deps)
	limiter := middleware.NewRateLimiter(rc.RateLimitPerSecond, rc.RateLimitBurst)

	RegisterAPIRoutes(r, handlers, deps, limiter)

	return r
}
