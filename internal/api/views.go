package api

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"trippilot/skyview/internal/common"
	"trippilot/skyview/internal/constants"
	"trippilot/skyview/internal/livemap"
	"trippilot/skyview/internal/models/dtos"
	"trippilot/skyview/internal/models/entities"
	"trippilot/skyview/internal/poller"
)

// MountView handles POST /api/v1/views
func (h *Handlers) MountView() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.MountViewRequest
		if err := decodeBody(r, &req); err != nil && !errors.Is(err, io.EOF) {
			common.RespondError(w, initTime, err, constants.MsgInvalidBody, http.StatusBadRequest)
			return
		}

		resp, err := h.deps.Services.Views.Mount(r.Context(), req)
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to mount view", http.StatusInternalServerError)
			return
		}
		common.RespondSuccess(w, initTime, "View mounted", resp, http.StatusCreated)
	}
}

// UnmountView handles DELETE /api/v1/views/{id}
func (h *Handlers) UnmountView() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		if err := h.deps.Services.Views.Unmount(chi.URLParam(r, "id")); err != nil {
			respondViewError(w, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "View unmounted", nil)
	}
}

// GetMap handles GET /api/v1/views/{id}/map
func (h *Handlers) GetMap() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		v, ok := h.view(w, r, initTime)
		if !ok {
			return
		}
		common.RespondSuccess(w, initTime, "Map state fetched", v.Map())
	}
}

// Refresh handles POST /api/v1/views/{id}/refresh/{kind}. A failed fetch
// keeps the last known data and is reported as a bad gateway.
func (h *Handlers) Refresh() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		v, ok := h.view(w, r, initTime)
		if !ok {
			return
		}

		kind, err := poller.ParseKind(chi.URLParam(r, "kind"))
		if err != nil {
			respondViewError(w, initTime, err)
			return
		}

		n, err := v.Refresh(r.Context(), kind)
		if err != nil {
			if errors.Is(err, livemap.ErrViewClosed) {
				respondViewError(w, initTime, err)
				return
			}
			common.RespondError(w, initTime, err, "Backend fetch failed, keeping last known data", http.StatusBadGateway)
			return
		}
		common.RespondSuccess(w, initTime, "Refreshed "+string(kind), map[string]any{
			"kind":  kind,
			"count": n,
		})
	}
}

// ListFlights handles GET /api/v1/views/{id}/flights
func (h *Handlers) ListFlights() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		v, ok := h.view(w, r, initTime)
		if !ok {
			return
		}

		flights := v.Flights()
		total := len(flights)
		if len(flights) > constants.FlightListLimit {
			flights = flights[:constants.FlightListLimit]
		}
		common.RespondSuccess(w, initTime, "Flights fetched", dtos.FlightListResponse{
			Flights: flights,
			Total:   total,
		})
	}
}

// ListAirports handles GET /api/v1/views/{id}/airports
func (h *Handlers) ListAirports() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		v, ok := h.view(w, r, initTime)
		if !ok {
			return
		}

		airports := v.Airports()
		common.RespondSuccess(w, initTime, "Airports fetched", dtos.AirportListResponse{
			Airports: airports,
			Total:    len(airports),
		})
	}
}

// AirportDetail handles GET /api/v1/views/{id}/airports/{code}. Unknown
// codes answer with a placeholder record rather than 404.
func (h *Handlers) AirportDetail() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		v, ok := h.view(w, r, initTime)
		if !ok {
			return
		}

		code := strings.ToUpper(strings.TrimSpace(chi.URLParam(r, "code")))
		resp := dtos.AirportDetailResponse{}
		if a, found, _ := v.Airport(code); found {
			resp.Airport = a
		} else {
			resp.Airport = entities.PlaceholderAirport(code)
			resp.Placeholder = true
		}
		if report, ok := h.deps.Services.Weather.Lookup(code); ok {
			resp.Weather = &report
		}
		common.RespondSuccess(w, initTime, "Airport fetched", resp)
	}
}
