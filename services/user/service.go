package user

import (
	"fmt"
	"regexp"
	"strings"

	userRepo "petbook/database/repository/user"
	"petbook/models"
	"petbook/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// DefaultUserService is the production implementation of UserService.
type DefaultUserService struct {
	Repo userRepo.UserRepository
}

// Register validates the payload, hashes the password and persists the new
// account. The role defaults to "user" when empty.
func (s *DefaultUserService) Register(email, password, role string) (*models.AuthResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, newValidationError("por favor, forneça email e senha")
	}
	if !emailPattern.MatchString(email) {
		return nil, newValidationError("por favor, use um email válido")
	}
	if len(password) < 6 {
		return nil, newValidationError("senha deve ter pelo menos 6 caracteres")
	}
	if role == "" {
		role = models.RoleUser
	}
	if !models.ValidRole(role) {
		return nil, newValidationError(fmt.Sprintf("role inválida: %s", role))
	}

	existing, err := s.Repo.GetByEmail(email)
	if err != nil {
		utils.GetLogger().Error("Register: failed to check for existing user", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		utils.GetLogger().Error("Register: failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}

	userObj := models.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hashed),
		Role:         role,
	}

	if err := s.Repo.Create(&userObj); err != nil {
		if err == userRepo.ErrDuplicateEmail {
			return nil, ErrEmailTaken
		}
		utils.GetLogger().Error("Register: failed to create user", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}

	token, err := utils.GenerateToken(userObj.ID, userObj.Email)
	if err != nil {
		utils.GetLogger().Error("Register: failed to generate auth token", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}

	return &models.AuthResponse{
		ID:    userObj.ID,
		Email: userObj.Email,
		Role:  userObj.Role,
		Token: token,
	}, nil
}

// Authenticate checks the credentials and issues a fresh session token.
func (s *DefaultUserService) Authenticate(email, password string) (*models.AuthResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, newValidationError("por favor, forneça email e senha")
	}

	userRec, err := s.Repo.GetByEmail(email)
	if err != nil {
		utils.GetLogger().Error("Authenticate: failed to fetch user", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}
	if userRec == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(userRec.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(userRec.ID, userRec.Email)
	if err != nil {
		utils.GetLogger().Error("Authenticate: failed to generate auth token", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}

	return &models.AuthResponse{
		ID:    userRec.ID,
		Email: userRec.Email,
		Role:  userRec.Role,
		Token: token,
	}, nil
}

// GetProfile returns the credential-free view of the user.
func (s *DefaultUserService) GetProfile(userID string) (*models.Profile, error) {
	userRec, err := s.Repo.GetByID(userID)
	if err != nil {
		utils.GetLogger().Error("GetProfile: failed to fetch user", zap.String("id", userID), zap.Error(err))
		return nil, fmt.Errorf("failed to fetch profile, please try again")
	}
	if userRec == nil {
		return nil, ErrNotFound
	}
	return &models.Profile{
		ID:    userRec.ID,
		Email: userRec.Email,
		Role:  userRec.Role,
	}, nil
}
