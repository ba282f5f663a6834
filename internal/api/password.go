package api

import (
	"net/http"
	"time"

	"trippilot/skyview/internal/common"
	"trippilot/skyview/internal/constants"
	"trippilot/skyview/internal/models/dtos"
	"trippilot/skyview/internal/services"
)

// PasswordStrength handles POST /api/v1/auth/password-strength
func PasswordStrength() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.PasswordStrengthRequest
		if err := decodeBody(r, &req); err != nil {
			common.RespondError(w, initTime, err, constants.MsgInvalidBody, http.StatusBadRequest)
			return
		}
		if req.Password == "" {
			common.RespondError(w, initTime, nil, constants.MsgMissingPassword, http.StatusBadRequest)
			return
		}

		common.RespondSuccess(w, initTime, "Password evaluated", services.EvaluatePassword(req.Password))
	}
}
