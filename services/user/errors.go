package user

import "errors"

var (
	// ErrEmailTaken signals a registration attempt with an email that already exists.
	ErrEmailTaken = errors.New("usuário já existe")

	// ErrInvalidCredentials is returned for an unknown email and for a password
	// mismatch alike, so a login failure never reveals whether the email exists.
	ErrInvalidCredentials = errors.New("email ou senha inválidos")

	// ErrNotFound signals that the referenced user no longer exists.
	ErrNotFound = errors.New("usuário não encontrado")
)

// ValidationError marks malformed or missing registration fields.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func newValidationError(msg string) error {
	return &ValidationError{Message: msg}
}
