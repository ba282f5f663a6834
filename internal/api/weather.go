package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"trippilot/skyview/internal/common"
	"trippilot/skyview/internal/constants"
	"trippilot/skyview/internal/models/dtos"
	"trippilot/skyview/internal/models/entities"
	"trippilot/skyview/internal/services"
)

// WeatherAlerts handles GET /api/v1/weather/alerts
func (h *Handlers) WeatherAlerts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		common.RespondSuccess(w, initTime, "Weather alerts fetched", h.deps.Services.Weather.Alerts())
	}
}

// SetWeather handles PUT /api/v1/weather/{code}
func (h *Handlers) SetWeather() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.WeatherUpdateRequest
		if err := decodeBody(r, &req); err != nil {
			common.RespondError(w, initTime, err, constants.MsgInvalidBody, http.StatusBadRequest)
			return
		}
		switch entities.Severity(req.Severity) {
		case entities.SeverityGreen, entities.SeverityYellow, entities.SeverityRed:
		default:
			common.RespondError(w, initTime, nil, constants.MsgInvalidSeverity, http.StatusBadRequest)
			return
		}

		report := entities.WeatherReport{
			AirportCode:  chi.URLParam(r, "code"),
			City:         req.City,
			Severity:     entities.Severity(req.Severity),
			Condition:    req.Condition,
			Icon:         req.Icon,
			TemperatureC: req.TemperatureC,
			VisibilityM:  req.VisibilityM,
			WindKmh:      req.WindKmh,
			Alert:        req.Alert,
		}
		if err := h.deps.Services.Weather.Set(r.Context(), report); err != nil {
			if errors.Is(err, services.ErrInvalidAirportCode) {
				common.RespondError(w, initTime, err, "", http.StatusBadRequest)
				return
			}
			common.RespondError(w, initTime, err, "Failed to store weather", http.StatusInternalServerError)
			return
		}
		common.RespondSuccess(w, initTime, "Weather updated", nil)
	}
}
