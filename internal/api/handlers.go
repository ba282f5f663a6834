package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"trippilot/skyview/internal/common"
	"trippilot/skyview/internal/constants"
	"trippilot/skyview/internal/livemap"
	"trippilot/skyview/internal/poller"
	"trippilot/skyview/internal/services"
)

type Handlers struct {
	deps *Dependencies
}

// NewHandlers creates a new handlers instance with injected dependencies
func NewHandlers(deps *Dependencies) *Handlers {
	return &Handlers{
		deps: deps,
	}
}

// view resolves the {id} URL parameter, writing the error response itself
// when the view is gone.
func (h *Handlers) view(w http.ResponseWriter, r *http.Request, initTime time.Time) (*livemap.View, bool) {
	v, err := h.deps.Services.Views.Get(chi.URLParam(r, "id"))
	if err != nil {
		respondViewError(w, initTime, err)
		return nil, false
	}
	return v, true
}

func decodeBody(r *http.Request, dst any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}

// respondViewError maps view and service errors to HTTP responses
func respondViewError(w http.ResponseWriter, initTime time.Time, err error) {
	switch {
	case errors.Is(err, services.ErrViewNotFound), errors.Is(err, livemap.ErrViewClosed):
		common.RespondError(w, initTime, err, constants.MsgViewNotFound, http.StatusNotFound)
	case errors.Is(err, livemap.ErrFlightNotFound):
		common.RespondError(w, initTime, err, constants.MsgFlightNotFound, http.StatusNotFound)
	case errors.Is(err, poller.ErrUnknownKind):
		common.RespondError(w, initTime, err, constants.MsgUnknownKind, http.StatusBadRequest)
	case errors.Is(err, services.ErrQueryTooShort):
		common.RespondError(w, initTime, err, constants.MsgSearchQueryTooShort, http.StatusBadRequest)
	case errors.Is(err, services.ErrEmptyMessage):
		common.RespondError(w, initTime, err, constants.MsgMissingMessage, http.StatusBadRequest)
	default:
		common.RespondError(w, initTime, err, "An unexpected error occurred", http.StatusInternalServerError)
	}
}
