package notification

import (
	"context"

	"petbook/models"
)

// NotificationService defines methods for sending appointment emails.
type NotificationService interface {
	SendBookingConfirmation(ctx context.Context, appt *models.Appointment) error
	SendAppointmentReminder(ctx context.Context, appt *models.Appointment) error
}
