package middleware

import (
	"context"

	"github.com/sachin24864/RealEstate-Website/internal/auth"
)

// ContextKey is a private type for request context keys to avoid collisions.
type ContextKey string

const (
	// UserIDCtxKey holds the authenticated admin id.
	UserIDCtxKey = ContextKey("user_id")
	// ClaimsCtxKey holds the full *auth.Claims of the session token.
	ClaimsCtxKey = ContextKey("claims")
)

// ClaimsFromContext returns the session claims stored by JWTAuth.
func ClaimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(ClaimsCtxKey).(*auth.Claims)
	return claims, ok && claims != nil
}
