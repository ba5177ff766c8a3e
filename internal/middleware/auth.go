package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sachin24864/RealEstate-Website/internal/auth"
	"go.uber.org/zap"
)

// TokenVerifier parses a session token into claims.
type TokenVerifier interface {
	Parse(token string) (*auth.Claims, error)
}

// JWTAuth requires a valid session token in the named cookie. A missing
// cookie is answered with 401, an invalid or expired token with 403.
func JWTAuth(tokens TokenVerifier, cookieName string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(cookieName)
			if err != nil || cookie.Value == "" {
				logger.Debug("JWTAuth: session cookie missing", zap.String("path", r.URL.Path))
				writeAuthError(w, http.StatusUnauthorized, "Authentication required")
				return
			}

			claims, err := tokens.Parse(cookie.Value)
			if err != nil {
				logger.Warn("JWTAuth: token rejected",
					zap.String("path", r.URL.Path),
					zap.Bool("expired", errors.Is(err, auth.ErrTokenExpired)),
					zap.Error(err),
				)
				writeAuthError(w, http.StatusForbidden, "Invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), UserIDCtxKey, claims.UserID)
			ctx = context.WithValue(ctx, ClaimsCtxKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeAuthError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": msg})
}
