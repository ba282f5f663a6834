package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"trippilot/skyview/internal/auth"
	"trippilot/skyview/internal/common"
	"trippilot/skyview/internal/constants"
)

// ViewAuthMiddleware requires a bearer token issued for the view named by
// the {id} URL parameter.
func ViewAuthMiddleware(signer *common.ViewTokenSigner) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				common.RespondError(w, start, nil, constants.MsgUnauthorizedView, http.StatusUnauthorized)
				return
			}

			claims, err := signer.Validate(r.Context(), strings.TrimPrefix(authHeader, "Bearer "))
			if err != nil {
				common.RespondError(w, start, err, constants.MsgUnauthorizedView, http.StatusUnauthorized)
				return
			}

			if claims.ViewID != chi.URLParam(r, "id") {
				common.RespondError(w, start, nil, "Forbidden: token was issued for another view", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.SetViewClaims(r.Context(), claims)))
		})
	}
}
