package user

import "petbook/models"

// UserService manages account registration, authentication and profile lookups.
type UserService interface {
	Register(email, password, role string) (*models.AuthResponse, error)
	Authenticate(email, password string) (*models.AuthResponse, error)
	GetProfile(userID string) (*models.Profile, error)
}
