package booking

import (
	"fmt"
	"time"

	appointmentRepo "petbook/database/repository/appointment"
	"petbook/models"
	"petbook/utils"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultBookingService is the production implementation of BookingService.
// Cache and Dispatcher are optional; a nil Cache disables the availability
// cache and a nil Dispatcher skips confirmation emails.
type DefaultBookingService struct {
	Repo       appointmentRepo.AppointmentRepository
	Hours      BusinessHours
	Cache      *redis.Client
	Dispatcher ConfirmationDispatcher
}

// allowedTransitions is the forward-only status graph. Cancelled and completed
// appointments are terminal.
var allowedTransitions = map[string][]string{
	models.StatusScheduled: {models.StatusConfirmed, models.StatusCancelled},
	models.StatusConfirmed: {models.StatusCompleted, models.StatusCancelled},
}

func transitionAllowed(from, to string) bool {
	for _, t := range allowedTransitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

// Book reserves a slot for the calling identity. The conflict check happens
// inside the repository insert, so two near-simultaneous requests for the same
// slot cannot both succeed.
func (s *DefaultBookingService) Book(ownerID, ownerEmail string, req models.BookSlotRequest) (*models.Appointment, error) {
	if req.ServiceID == "" || req.ServiceName == "" || req.Date == "" || req.Time == "" {
		return nil, newValidationError("campos obrigatórios ausentes: serviceId, serviceName, date, time")
	}
	if !validDate(req.Date) {
		return nil, newValidationError("formato de data inválido, use YYYY-MM-DD")
	}
	if !timePattern.MatchString(req.Time) {
		return nil, newValidationError("formato de hora inválido, use HH:MM")
	}

	appt := &models.Appointment{
		ID:             uuid.New().String(),
		UserID:         ownerID,
		UserEmail:      ownerEmail,
		ServiceID:      req.ServiceID,
		ServiceType:    req.ServiceName,
		Date:           req.Date,
		Time:           req.Time,
		Notes:          req.Notes,
		ReferenceImage: req.ReferenceImage,
		Status:         models.StatusScheduled,
		CreatedAt:      time.Now(),
	}

	if err := s.insert(appt); err != nil {
		return nil, err
	}

	// Confirmation email is best-effort and never delays the response.
	if s.Dispatcher != nil {
		s.Dispatcher.Enqueue(appt)
	}
	return appt, nil
}

// Create records an appointment from the form-style payload (pet and owner
// details plus a service type from the closed set).
func (s *DefaultBookingService) Create(ownerID, ownerEmail string, req models.CreateAppointmentRequest) (*models.Appointment, error) {
	if req.PetName == "" || req.AppointmentDate == "" || req.AppointmentTime == "" || req.ServiceType == "" {
		return nil, newValidationError("por favor, preencha todos os campos obrigatórios")
	}
	if !validDate(req.AppointmentDate) {
		return nil, newValidationError("formato de data inválido, use YYYY-MM-DD")
	}
	if !timePattern.MatchString(req.AppointmentTime) {
		return nil, newValidationError("formato de hora inválido, use HH:MM")
	}
	if !models.ValidServiceType(req.ServiceType) {
		return nil, newValidationError(fmt.Sprintf("tipo de serviço inválido: %s", req.ServiceType))
	}

	ownerName := req.OwnerName
	if ownerName == "" {
		ownerName = ownerEmail
	}

	appt := &models.Appointment{
		ID:          uuid.New().String(),
		UserID:      ownerID,
		UserEmail:   ownerEmail,
		PetName:     req.PetName,
		OwnerName:   ownerName,
		ServiceType: req.ServiceType,
		Date:        req.AppointmentDate,
		Time:        req.AppointmentTime,
		Notes:       req.Notes,
		Status:      models.StatusScheduled,
		CreatedAt:   time.Now(),
	}

	if err := s.insert(appt); err != nil {
		return nil, err
	}
	return appt, nil
}

func (s *DefaultBookingService) insert(appt *models.Appointment) error {
	if err := s.Repo.Insert(appt); err != nil {
		if err == appointmentRepo.ErrSlotTaken {
			return ErrSlotTaken
		}
		utils.GetLogger().Error("failed to persist appointment", zap.Error(err))
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	s.invalidateSlots(appt.Date)
	return nil
}

// ListMine returns the caller's appointments, newest scheduled first.
func (s *DefaultBookingService) ListMine(userID string) ([]models.Appointment, error) {
	appts, err := s.Repo.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments for user %s: %w", userID, err)
	}
	return appts, nil
}

// ListAll returns every appointment, newest scheduled first. Role gating
// happens at the route level.
func (s *DefaultBookingService) ListAll() ([]models.Appointment, error) {
	appts, err := s.Repo.ListAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appts, nil
}

// UpdateStatus moves an appointment along the forward-only status graph.
func (s *DefaultBookingService) UpdateStatus(id, status string) (*models.Appointment, error) {
	if !models.ValidStatus(status) {
		return nil, newValidationError("status inválido fornecido")
	}

	current, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch appointment %s: %w", id, err)
	}
	if current == nil {
		return nil, ErrNotFound
	}
	if !transitionAllowed(current.Status, status) {
		return nil, newValidationError(fmt.Sprintf("transição de status inválida: %s -> %s", current.Status, status))
	}

	updated, err := s.Repo.UpdateStatus(id, status)
	if err != nil {
		return nil, fmt.Errorf("failed to update status of appointment %s: %w", id, err)
	}
	if updated == nil {
		return nil, ErrNotFound
	}
	return updated, nil
}
