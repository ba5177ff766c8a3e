package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/sachin24864/RealEstate-Website/internal/port/repository"
	"github.com/sachin24864/RealEstate-Website/internal/usecase"
	"go.uber.org/zap"
)

type messageResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, messageResponse{Message: msg})
}

// writeError maps a use-case error onto the HTTP contract. notFound is the
// message returned for missing records. Unexpected errors are logged and
// reported without detail.
func writeError(w http.ResponseWriter, logger *zap.Logger, err error, notFound string) {
	var ve *usecase.ValidationError
	switch {
	case errors.As(err, &ve):
		writeMessage(w, http.StatusBadRequest, ve.Msg)
	case errors.Is(err, usecase.ErrInvalidCredentials):
		writeMessage(w, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, usecase.ErrAdminNotFound), errors.Is(err, repository.ErrNotFound):
		writeMessage(w, http.StatusNotFound, notFound)
	case errors.Is(err, usecase.ErrMailerNotConfigured):
		writeMessage(w, http.StatusServiceUnavailable, "Email delivery is not configured")
	case errors.Is(err, repository.ErrDuplicateKey):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Duplicate key error in database"})
	default:
		logger.Error("Unhandled request error", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Internal server error"})
	}
}

// decodeJSON reads a JSON body into dst. An empty body leaves dst untouched.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	if r.Body == nil {
		return nil
	}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBodySize))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return usecase.NewValidationError("Invalid request body")
	}
	return nil
}
