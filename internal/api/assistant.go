package api

import (
	"net/http"
	"time"

	"trippilot/skyview/internal/common"
	"trippilot/skyview/internal/constants"
	"trippilot/skyview/internal/models/dtos"
	"trippilot/skyview/internal/providers"
)

// Search handles GET /api/v1/views/{id}/search?q=
func (h *Handlers) Search() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		v, ok := h.view(w, r, initTime)
		if !ok {
			return
		}

		resp, err := h.deps.Services.Search.Search(v.ID, r.URL.Query().Get("q"), v.Flights(), v.Airports())
		if err != nil {
			respondViewError(w, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Search completed", resp)
	}
}

// Chat handles POST /api/v1/views/{id}/chat. Backend failures come back as
// a normal assistant reply.
func (h *Handlers) Chat() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		v, ok := h.view(w, r, initTime)
		if !ok {
			return
		}

		var req dtos.ChatMessageRequest
		if err := decodeBody(r, &req); err != nil {
			common.RespondError(w, initTime, err, constants.MsgInvalidBody, http.StatusBadRequest)
			return
		}

		reply, err := h.deps.Services.Chat.Send(r.Context(), v.ID, req.Message, v.Selection())
		if err != nil {
			respondViewError(w, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Reply received", reply)
	}
}

// History handles GET /api/v1/views/{id}/history
func (h *Handlers) History() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		v, ok := h.view(w, r, initTime)
		if !ok {
			return
		}

		resp, err := h.deps.Services.History.Recent(r.Context(), v.ID)
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to load history", http.StatusInternalServerError)
			return
		}
		common.RespondSuccess(w, initTime, "History fetched", resp)
	}
}

// TrackFlight handles POST /api/v1/views/{id}/track
func (h *Handlers) TrackFlight() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		if _, ok := h.view(w, r, initTime); !ok {
			return
		}

		var req dtos.TrackFlightRequest
		if err := decodeBody(r, &req); err != nil || req.ICAO24 == "" {
			common.RespondError(w, initTime, err, "icao24 is required", http.StatusBadRequest)
			return
		}

		resp, err := h.deps.Services.Track.Track(r.Context(), req.ICAO24)
		if err != nil {
			code := http.StatusBadGateway
			if providers.ErrorCode(err) == constants.ErrCodeNotFound {
				code = http.StatusNotFound
			}
			common.RespondError(w, initTime, err, "Flight route not available", code)
			return
		}
		common.RespondSuccess(w, initTime, "Flight tracked", resp)
	}
}
