package handler

import (
	"net/http"
	"time"

	"github.com/sachin24864/RealEstate-Website/internal/middleware"
	"github.com/sachin24864/RealEstate-Website/internal/usecase"
	"go.uber.org/zap"
)

// CookieConfig controls the session cookie.
type CookieConfig struct {
	Name   string
	Secure bool
	TTL    time.Duration
}

type AuthHandler struct {
	uc     *usecase.AuthUseCase
	cookie CookieConfig
	logger *zap.Logger
}

func NewAuthHandler(uc *usecase.AuthUseCase, cookie CookieConfig, logger *zap.Logger) *AuthHandler {
	if cookie.Name == "" {
		cookie.Name = "token"
	}
	return &AuthHandler{uc: uc, cookie: cookie, logger: logger.Named("AuthHandler")}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, h.logger, err, "")
		return
	}

	admin, token, err := h.uc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, h.logger, err, "")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cookie.Name,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   int(h.cookie.TTL / time.Second),
	})
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Login successful",
		"user": map[string]string{
			"id":    admin.ID,
			"email": admin.Email,
			"name":  admin.Name,
		},
	})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookie.Name,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
	})
	writeMessage(w, http.StatusOK, "Logged out successfully")
}

// CheckAuth runs behind JWTAuth and echoes the session claims.
func (h *AuthHandler) CheckAuth(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Authentication required")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"loggedIn": true,
		"user":     claims,
	})
}

func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, h.logger, err, "")
		return
	}

	if err := h.uc.ForgotPassword(r.Context(), req.Email); err != nil {
		writeError(w, h.logger, err, "Admin user with this email not found")
		return
	}
	writeMessage(w, http.StatusOK, "A new password has been sent to the admin's email address.")
}
