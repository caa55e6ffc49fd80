package screens

import (
	"errors"
	"fmt"
	"strings"
)

// ErrValidation matches every *ValidationError via errors.Is.
var ErrValidation = errors.New("validation failed")

// Login form fields.
const (
	FieldEmail    = "email"
	FieldPassword = "password"
)

// ValidationError reports a login field that failed the gate.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("screens: %s is required", e.Field)
}

// Is makes every ValidationError match ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// IsValidationError checks if an error is a login validation failure.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidation)
}

// Authenticator decides whether submitted credentials open the app.
type Authenticator interface {
	Authenticate(email, password string) error
}

// AuthenticatorFunc adapts a function to the Authenticator interface.
type AuthenticatorFunc func(email, password string) error

func (f AuthenticatorFunc) Authenticate(email, password string) error {
	return f(email, password)
}

// PresenceAuthenticator accepts any credentials where both fields contain
// something other than whitespace. Email is checked first.
type PresenceAuthenticator struct{}

func (PresenceAuthenticator) Authenticate(email, password string) error {
	if strings.TrimSpace(email) == "" {
		return &ValidationError{Field: FieldEmail}
	}
	if strings.TrimSpace(password) == "" {
		return &ValidationError{Field: FieldPassword}
	}
	return nil
}
