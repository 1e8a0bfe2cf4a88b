package booking

import "petbook/models"

// BookingService exposes slot availability and the appointment ledger.
type BookingService interface {
	AvailableSlots(date string) ([]string, error)
	Book(ownerID, ownerEmail string, req models.BookSlotRequest) (*models.Appointment, error)
	Create(ownerID, ownerEmail string, req models.CreateAppointmentRequest) (*models.Appointment, error)
	ListMine(userID string) ([]models.Appointment, error)
	ListAll() ([]models.Appointment, error)
	UpdateStatus(id, status string) (*models.Appointment, error)
}

// ConfirmationDispatcher hands a booked appointment to the background
// notification queue. Enqueue must never block the booking path.
type ConfirmationDispatcher interface {
	Enqueue(appt *models.Appointment)
}
