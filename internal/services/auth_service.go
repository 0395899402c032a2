package services

import (
	"casa-certa-portal/internal/apperr"
	"casa-certa-portal/internal/auth"
	"casa-certa-portal/internal/database"
	"casa-certa-portal/internal/models"
)

// AdminStore is the persistence surface the auth service needs.
// *database.GormDB implements it.
type AdminStore interface {
	FindAdminByEmail(email string) (*models.AdminUser, error)
}

// IAuthService is the handler-facing auth API.
type IAuthService interface {
	Login(email, password string) (*models.AdminUser, error)
}

// AuthService checks admin credentials against the database.
type AuthService struct {
	store AdminStore
}

// NewAuthService creates a new AuthService.
func NewAuthService(store AdminStore) *AuthService {
	return &AuthService{store: store}
}

// Login verifies the email/password pair. Unknown accounts and wrong
// passwords produce the same message so the form does not leak which
// emails exist.
func (s *AuthService) Login(email, password string) (*models.AdminUser, error) {
	user, err := s.store.FindAdminByEmail(email)
	if err != nil {
		if err == database.ErrUserNotFound {
			return nil, apperr.Validation("invalid email or password")
		}
		return nil, apperr.Remote(err.Error(), err)
	}

	if !auth.CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperr.Validation("invalid email or password")
	}

	return user, nil
}
