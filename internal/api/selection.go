package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"trippilot/skyview/internal/common"
)

// SelectFlight handles POST /api/v1/views/{id}/select/flight/{flightID}
func (h *Handlers) SelectFlight() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		v, ok := h.view(w, r, initTime)
		if !ok {
			return
		}

		if _, err := v.SelectFlight(chi.URLParam(r, "flightID")); err != nil {
			respondViewError(w, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Flight selected", v.Selection())
	}
}

// SelectAirport handles POST /api/v1/views/{id}/select/airport/{code}
func (h *Handlers) SelectAirport() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		v, ok := h.view(w, r, initTime)
		if !ok {
			return
		}

		if err := v.SelectAirport(chi.URLParam(r, "code")); err != nil {
			respondViewError(w, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Airport selected", v.Selection())
	}
}

// ClearSelection handles DELETE /api/v1/views/{id}/selection
func (h *Handlers) ClearSelection() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		v, ok := h.view(w, r, initTime)
		if !ok {
			return
		}

		if err := v.ClearSelection(); err != nil {
			respondViewError(w, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Selection cleared", v.Selection())
	}
}

// GetSelection handles GET /api/v1/views/{id}/selection
func (h *Handlers) GetSelection() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		v, ok := h.view(w, r, initTime)
		if !ok {
			return
		}
		common.RespondSuccess(w, initTime, "Selection fetched", v.Selection())
	}
}
