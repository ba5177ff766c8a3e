package usecase

import (
	"errors"
	"fmt"
)

// ValidationError marks bad client input. Its message is safe to return.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAdminNotFound      = errors.New("admin not found")
)

// ErrMailerNotConfigured means a flow that must deliver mail has no sender.
var ErrMailerNotConfigured = errors.New("mailer is not configured")
