package appointmentRepo

import (
	"errors"

	"petbook/models"
)

// ErrSlotTaken is returned by Insert when the (date, time) pair is already booked.
var ErrSlotTaken = errors.New("slot already booked")

// AppointmentRepository defines persistence operations for appointments.
//
// Insert is the atomic insert-if-slot-free operation: implementations must
// guarantee that two concurrent inserts for the same (date, time) cannot both
// succeed. GetByID and UpdateStatus return (nil, nil) when no record matches.
type AppointmentRepository interface {
	Insert(appt *models.Appointment) error
	GetByID(id string) (*models.Appointment, error)
	ListByUser(userID string) ([]models.Appointment, error)
	ListAll() ([]models.Appointment, error)
	ListByDate(date string) ([]models.Appointment, error)
	UpdateStatus(id, status string) (*models.Appointment, error)
}
