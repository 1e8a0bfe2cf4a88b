package booking

import "errors"

var (
	// ErrSlotTaken signals a booking attempt for a (date, time) pair that is
	// already occupied, regardless of who owns the existing appointment.
	ErrSlotTaken = errors.New("este horário já está agendado")

	// ErrNotFound signals an appointment ID that does not resolve.
	ErrNotFound = errors.New("agendamento não encontrado")
)

// ValidationError marks malformed or missing booking fields, including
// disallowed status transitions.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func newValidationError(msg string) error {
	return &ValidationError{Message: msg}
}
