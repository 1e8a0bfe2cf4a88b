package models

import "time"

// Appointment statuses. Values match what the clients display, so they stay in Portuguese.
const (
	StatusScheduled = "Agendado"
	StatusConfirmed = "Confirmado"
	StatusCancelled = "Cancelado"
	StatusCompleted = "Concluído"
)

// ServiceTypes is the closed set of bookable services.
var ServiceTypes = []string{
	"Consulta Geral",
	"Vacinação",
	"Banho e Tosa",
	"Exames",
	"Outro",
}

// Appointment represents one reserved slot.
type Appointment struct {
	ID             string    `bson:"id" json:"id"`
	UserID         string    `bson:"user_id" json:"userId"`
	UserEmail      string    `bson:"user_email" json:"userEmail"`
	PetName        string    `bson:"pet_name,omitempty" json:"petName,omitempty"`
	OwnerName      string    `bson:"owner_name,omitempty" json:"ownerName,omitempty"`
	ServiceID      string    `bson:"service_id,omitempty" json:"serviceId,omitempty"`
	ServiceType    string    `bson:"service_type" json:"serviceType"`
	Date           string    `bson:"date" json:"date"` // "YYYY-MM-DD"
	Time           string    `bson:"time" json:"time"` // "HH:MM", 24h
	Notes          string    `bson:"notes,omitempty" json:"notes,omitempty"`
	ReferenceImage string    `bson:"reference_image,omitempty" json:"referenceImage,omitempty"`
	Status         string    `bson:"status" json:"status"`
	CreatedAt      time.Time `bson:"created_at" json:"createdAt"`
}

// ValidStatus reports whether s is a known appointment status.
func ValidStatus(s string) bool {
	switch s {
	case StatusScheduled, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// ValidServiceType reports whether s is one of the bookable services.
func ValidServiceType(s string) bool {
	for _, t := range ServiceTypes {
		if t == s {
			return true
		}
	}
	return false
}

// BookSlotRequest is the payload for booking a slot with an optional reference image.
type BookSlotRequest struct {
	ServiceID      string `form:"serviceId" json:"serviceId"`
	ServiceName    string `form:"serviceName" json:"serviceName"`
	Date           string `form:"date" json:"date"`
	Time           string `form:"time" json:"time"`
	Notes          string `form:"notes" json:"notes"`
	ReferenceImage string `form:"-" json:"-"`
}

// CreateAppointmentRequest is the payload for the form-style appointment creation.
type CreateAppointmentRequest struct {
	PetName         string `json:"petName"`
	OwnerName       string `json:"ownerName"`
	AppointmentDate string `json:"appointmentDate"`
	AppointmentTime string `json:"appointmentTime"`
	ServiceType     string `json:"serviceType"`
	Notes           string `json:"notes"`
}
