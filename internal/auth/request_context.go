package auth

import (
	"context"

	"trippilot/skyview/internal/common"
)

type contextKey string

var (
	viewClaimsKey contextKey = "view_claims"
	requestIDKey  contextKey = "request_id"
)

// SetViewClaims stores the claims of a validated view token.
func SetViewClaims(ctx context.Context, claims *common.ViewClaims) context.Context {
	return context.WithValue(ctx, viewClaimsKey, claims)
}

// GetViewClaims returns the claims stored by the view auth middleware, or
// nil on unauthenticated routes.
func GetViewClaims(ctx context.Context) *common.ViewClaims {
	if claims, ok := ctx.Value(viewClaimsKey).(*common.ViewClaims); ok {
		return claims
	}
	return nil
}

func SetRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
