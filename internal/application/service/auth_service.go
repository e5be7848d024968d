package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/sangkips/shopdash-api/internal/config"
	"github.com/sangkips/shopdash-api/pkg/apperror"
	"github.com/sangkips/shopdash-api/pkg/utils"
)

// AdminRole is the only role issued by the dashboard
const AdminRole = "admin"

// AdminUser is the account configured for the dashboard
type AdminUser struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	DisplayName string    `json:"display_name"`
	Roles       []string  `json:"roles"`
}

// AuthService handles authentication-related operations
type AuthService struct {
	admin        AdminUser
	passwordHash string
	jwtManager   *utils.JWTManager
}

// NewAuthService creates a new auth service
func NewAuthService(cfg config.AdminConfig, jwtManager *utils.JWTManager) *AuthService {
	email := strings.ToLower(strings.TrimSpace(cfg.Email))
	return &AuthService{
		admin: AdminUser{
			ID:          utils.UserIDFromEmail(email),
			Email:       email,
			FirstName:   cfg.FirstName,
			LastName:    cfg.LastName,
			DisplayName: strings.TrimSpace(cfg.FirstName + " " + cfg.LastName),
			Roles:       []string{AdminRole},
		},
		passwordHash: cfg.PasswordHash,
		jwtManager:   jwtManager,
	}
}

// LoginInput represents the login input
type LoginInput struct {
	Email    string
	Password string
}

// LoginOutput represents the login output
type LoginOutput struct {
	User         *AdminUser
	AccessToken  string
	RefreshToken string
}

// Login authenticates the admin and returns tokens
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	if !strings.EqualFold(strings.TrimSpace(input.Email), s.admin.Email) {
		return nil, apperror.ErrInvalidCredentials
	}
	if !utils.CheckPasswordHash(input.Password, s.passwordHash) {
		return nil, apperror.ErrInvalidCredentials
	}
	return s.issueTokens()
}

// RefreshToken exchanges a refresh token for a new token pair
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*LoginOutput, error) {
	userID, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperror.ErrInvalidToken
	}
	if userID != s.admin.ID {
		return nil, apperror.ErrInvalidToken
	}
	return s.issueTokens()
}

// GetProfile returns the account behind a user id
func (s *AuthService) GetProfile(ctx context.Context, userID uuid.UUID) (*AdminUser, error) {
	if userID != s.admin.ID {
		return nil, apperror.NewNotFoundError("User")
	}
	admin := s.admin
	return &admin, nil
}

// HasPassword reports whether a password hash is configured. Without one
// every login is rejected.
func (s *AuthService) HasPassword() bool {
	return s.passwordHash != ""
}

func (s *AuthService) issueTokens() (*LoginOutput, error) {
	accessToken, err := s.jwtManager.GenerateAccessToken(s.admin.ID, s.admin.Email, s.admin.Roles)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(s.admin.ID)
	if err != nil {
		return nil, err
	}

	admin := s.admin
	return &LoginOutput{
		User:         &admin,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
