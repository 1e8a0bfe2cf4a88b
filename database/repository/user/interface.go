package userRepo

import (
	"errors"

	"petbook/models"
)

// ErrDuplicateEmail is returned by Create when the email is already registered.
var ErrDuplicateEmail = errors.New("email already registered")

// UserRepository defines persistence operations for user accounts.
// GetByEmail and GetByID return (nil, nil) when no record matches.
type UserRepository interface {
	Create(user *models.User) error
	GetByEmail(email string) (*models.User, error)
	GetByID(id string) (*models.User, error)
}
