package service

import (
	"context"
	"strings"

	"github.com/gosh00/FitnessApp/internal/models"
	"github.com/gosh00/FitnessApp/internal/validation"

	"github.com/google/uuid"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// SyncResult describes the caller's identity as the application sees it.
type SyncResult struct {
	AuthID      uuid.UUID `json:"auth_id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	Role        string    `json:"role"`
}

type AuthService struct {
	adminEmail string
}

func NewAuthService(adminEmail string) *AuthService {
	return &AuthService{adminEmail: strings.ToLower(strings.TrimSpace(adminEmail))}
}

// Sync resolves the caller's role. Nothing is persisted.
func (s *AuthService) Sync(_ context.Context, authID uuid.UUID, email string) (*SyncResult, error) {
	email = strings.TrimSpace(email)
	if authID == uuid.Nil || email == "" {
		return nil, models.NewValidationError("auth_id and email are required")
	}
	if err := validation.ValidateEmail(email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	return &SyncResult{
		AuthID:      authID,
		Email:       email,
		DisplayName: models.DisplayNameFromEmail(email),
		Role:        s.RoleFor(email),
	}, nil
}

// RoleFor returns RoleAdmin when email matches the configured admin address.
func (s *AuthService) RoleFor(email string) string {
	if s.adminEmail != "" && strings.ToLower(strings.TrimSpace(email)) == s.adminEmail {
		return RoleAdmin
	}
	return RoleUser
}
