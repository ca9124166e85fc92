package services

import (
	"context"
	"fmt"
	"strings"

	"storefront/models"
)

type UserAPI interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error)
	GetMe(ctx context.Context, token string) (*models.UserProfile, error)
	UpdateMe(ctx context.Context, token string, req models.UpdateProfileRequest) error
	ChangePassword(ctx context.Context, token string, req models.ChangePasswordRequest) error
}

type AuthService struct {
	api     UserAPI
	session *Session
}

func NewAuthService(api UserAPI, session *Session) *AuthService {
	return &AuthService{api: api, session: session}
}

// Login exchanges credentials for a bearer token and stores it in the session.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.UserProfile, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, &models.ValidationError{Message: "Email and password are required"}
	}

	resp, err := s.api.Login(ctx, models.LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if resp.Token == "" {
		return nil, &models.AuthError{Message: "Login response carried no token"}
	}

	if err := s.session.SetToken(resp.Token); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

func (s *AuthService) Logout() error {
	return s.session.Logout()
}
