package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/alex-adamant/volley/models"
	"github.com/alex-adamant/volley/repositories"
	"github.com/alex-adamant/volley/utils"
)

const adminRole = "admin"

type LoginResult struct {
	Token string        `json:"token"`
	Admin *models.Admin `json:"admin"`
}

type AuthService interface {
	Login(ctx context.Context, creds models.Credentials) (*LoginResult, error)
	Register(ctx context.Context, creds models.Credentials) (*models.Admin, error)
	// Bootstrap creates the initial admin account; an already existing
	// account is not an error.
	Bootstrap(ctx context.Context, creds models.Credentials) error
}

type authService struct {
	adminRepo repositories.AdminRepository
	jwtSecret []byte
	logger    *slog.Logger
}

func NewAuthService(adminRepo repositories.AdminRepository, jwtSecret []byte, logger *slog.Logger) AuthService {
	return &authService{adminRepo: adminRepo, jwtSecret: jwtSecret, logger: logger}
}

func (s *authService) Login(ctx context.Context, creds models.Credentials) (*LoginResult, error) {
	admin, err := s.adminRepo.GetByEmail(ctx, strings.ToLower(creds.Email))
	if err != nil {
		if errors.Is(err, repositories.ErrAdminNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find admin by email: %w", err)
	}

	if !utils.CheckPasswordHash(creds.Password, admin.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateJWT(s.jwtSecret, admin.ID, adminRole)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	s.logger.Info("admin logged in", slog.Int("admin_id", admin.ID))

	admin.PasswordHash = ""
	return &LoginResult{Token: token, Admin: admin}, nil
}

func (s *authService) Register(ctx context.Context, creds models.Credentials) (*models.Admin, error) {
	email := strings.ToLower(strings.TrimSpace(creds.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: valid email is required", ErrValidationFailed)
	}
	if len(creds.Password) < 8 {
		return nil, fmt.Errorf("%w: password must be at least 8 characters", ErrValidationFailed)
	}

	hash, err := utils.HashPassword(creds.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	admin := &models.Admin{Email: email, PasswordHash: hash}
	if err := s.adminRepo.Create(ctx, admin); err != nil {
		if errors.Is(err, repositories.ErrAdminEmailConflict) {
			return nil, ErrAdminEmailTaken
		}
		return nil, fmt.Errorf("failed to create admin: %w", err)
	}

	admin.PasswordHash = ""
	return admin, nil
}

func (s *authService) Bootstrap(ctx context.Context, creds models.Credentials) error {
	_, err := s.Register(ctx, creds)
	if errors.Is(err, ErrAdminEmailTaken) {
		return nil
	}
	if err == nil {
		s.logger.Info("initial admin account created", slog.String("email", strings.ToLower(creds.Email)))
	}
	return err
}
