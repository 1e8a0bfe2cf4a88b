package appointmentRepo

import (
	"sort"
	"sync"
	"time"

	"petbook/models"
)

// MemoryAppointmentRepo is an in-memory AppointmentRepository. The slot map is
// checked and written under one lock, so the insert-if-slot-free guarantee
// holds for concurrent bookings.
type MemoryAppointmentRepo struct {
	mu    sync.RWMutex
	byID  map[string]*models.Appointment
	slots map[string]string // "date|time" -> appointment ID
}

// NewMemoryAppointmentRepo creates an empty in-memory appointment repository.
func NewMemoryAppointmentRepo() *MemoryAppointmentRepo {
	return &MemoryAppointmentRepo{
		byID:  make(map[string]*models.Appointment),
		slots: make(map[string]string),
	}
}

func slotKey(date, t string) string {
	return date + "|" + t
}

func (r *MemoryAppointmentRepo) Insert(appt *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := slotKey(appt.Date, appt.Time)
	if _, taken := r.slots[key]; taken {
		return ErrSlotTaken
	}
	if appt.CreatedAt.IsZero() {
		appt.CreatedAt = time.Now()
	}

	stored := *appt
	r.byID[appt.ID] = &stored
	r.slots[key] = appt.ID
	return nil
}

func (r *MemoryAppointmentRepo) GetByID(id string) (*models.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	copied := *a
	return &copied, nil
}

func (r *MemoryAppointmentRepo) ListByUser(userID string) ([]models.Appointment, error) {
	return r.list(func(a *models.Appointment) bool { return a.UserID == userID }), nil
}

func (r *MemoryAppointmentRepo) ListAll() ([]models.Appointment, error) {
	return r.list(func(*models.Appointment) bool { return true }), nil
}

func (r *MemoryAppointmentRepo) ListByDate(date string) ([]models.Appointment, error) {
	return r.list(func(a *models.Appointment) bool { return a.Date == date }), nil
}

func (r *MemoryAppointmentRepo) list(match func(*models.Appointment) bool) []models.Appointment {
	r.mu.RLock()
	defer r.mu.RUnlock()

	appts := make([]models.Appointment, 0)
	for _, a := range r.byID {
		if match(a) {
			appts = append(appts, *a)
		}
	}
	// Newest scheduled first, matching the Mongo sort.
	sort.Slice(appts, func(i, j int) bool {
		if appts[i].Date != appts[j].Date {
			return appts[i].Date > appts[j].Date
		}
		return appts[i].Time > appts[j].Time
	})
	return appts
}

func (r *MemoryAppointmentRepo) UpdateStatus(id, status string) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	a.Status = status
	copied := *a
	return &copied, nil
}
