package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sachin24864/RealEstate-Website/internal/handler"
)

// SetupSessionRoutes configures admin login and session checks.
func SetupSessionRoutes(r *chi.Mux, authHandler *handler.AuthHandler, requireAuth func(http.Handler) http.Handler) {
	r.Post("/login", authHandler.Login)
	r.Post("/logout", authHandler.Logout)
	r.Post("/forgot-password", authHandler.ForgotPassword)
	r.With(requireAuth).Get("/check-auth", authHandler.CheckAuth)
}
