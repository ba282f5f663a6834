package routes

import (
	"github.com/go-chi/chi/v5"

	"trippilot/skyview/internal/api"
	"trippilot/skyview/internal/middleware"
)

// RegisterAPIRoutes registers all API v1 routes and handlers
func RegisterAPIRoutes(r chi.Router, handlers *api.Handlers, deps *api.Dependencies, limiter *middleware.RateLimiter) {
	r.Route("/api/v1", func(v1 chi.Router) {
		v1.Use(limiter.Middleware)

		v1.Post("/auth/password-strength", api.PasswordStrength())

		v1.Get("/weather/alerts", handlers.WeatherAlerts())
		v1.Put("/weather/{code}", handlers.SetWeather())

		v1.Post("/views", handlers.MountView())

		// Every route below needs the token issued when the view was mounted
		v1.Route("/views/{id}", func(view chi.Router) {
			view.Use(middleware.ViewAuthMiddleware(deps.Signer))

			view.Delete("/", handlers.UnmountView())
			view.Get("/map", handlers.GetMap())
			view.Post("/refresh/{kind}", handlers.Refresh())

			view.Get("/flights", handlers.ListFlights())
			view.Get("/airports", handlers.ListAirports())
			view.Get("/airports/{code}", handlers.AirportDetail())

			view.Get("/selection", handlers.GetSelection())
			view.Delete("/selection", handlers.ClearSelection())
			view.Post("/select/flight/{flightID}", handlers.SelectFlight())
			view.Post("/select/airport/{code}", handlers.SelectAirport())

			view.Get("/search", handlers.Search())
			view.Post("/chat", handlers.Chat())
			view.Get("/history", handlers.History())
			view.Post("/track", handlers.TrackFlight())
		})
	})
}
