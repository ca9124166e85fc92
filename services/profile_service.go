package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"storefront/models"
)

// MediaUploader stores a local image and returns its public URL.
type MediaUploader interface {
	UploadImage(ctx context.Context, localPath string) (string, error)
}

type ProfileService struct {
	api      UserAPI
	session  *Session
	uploader MediaUploader
}

func NewProfileService(api UserAPI, session *Session, uploader MediaUploader) *ProfileService {
	return &ProfileService{api: api, session: session, uploader: uploader}
}

// Load fetches the current user. A rejected token is cleared from the session
// so the caller can send the user back to login.
func (s *ProfileService) Load(ctx context.Context) (*models.UserProfile, error) {
	token := s.session.Token()
	if token == "" {
		return nil, models.ErrAuthRequired
	}

	profile, err := s.api.GetMe(ctx, token)
	if err != nil {
		var authErr *models.AuthError
		if errors.As(err, &authErr) {
			if logoutErr := s.session.Logout(); logoutErr != nil {
				return nil, logoutErr
			}
		}
		return nil, fmt.Errorf("load profile: %w", err)
	}
	return profile, nil
}

// Update saves the name fields. When imagePath is set the file is uploaded
// first and its URL replaces the current image.
func (s *ProfileService) Update(ctx context.Context, current *models.UserProfile, firstName, lastName, imagePath string) (*models.UserProfile, error) {
	token := s.session.Token()
	if token == "" {
		return nil, models.ErrAuthRequired
	}
	if current == nil {
		return nil, errors.New("profile not loaded")
	}

	image := current.Image
	if imagePath != "" {
		if s.uploader == nil {
			return nil, errors.New("image upload is not configured")
		}
		url, err := s.uploader.UploadImage(ctx, imagePath)
		if err != nil {
			return nil, fmt.Errorf("upload profile image: %w", err)
		}
		image = url
	}

	req := models.UpdateProfileRequest{
		FirstName: strings.TrimSpace(firstName),
		LastName:  strings.TrimSpace(lastName),
		Image:     image,
	}
	if err := s.api.UpdateMe(ctx, token, req); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}

	updated := *current
	updated.FirstName = req.FirstName
	updated.LastName = req.LastName
	updated.Image = req.Image
	return &updated, nil
}

func (s *ProfileService) ChangePassword(ctx context.Context, currentPassword, newPassword, confirmPassword string) error {
	token := s.session.Token()
	if token == "" {
		return models.ErrAuthRequired
	}
	if newPassword == "" || confirmPassword == "" {
		return &models.ValidationError{Message: "New password and confirmation are required"}
	}
	if newPassword != confirmPassword {
		return &models.ValidationError{Message: "Passwords do not match"}
	}

	err := s.api.ChangePassword(ctx, token, models.ChangePasswordRequest{
		CurrentPassword: currentPassword,
		NewPassword:     newPassword,
	})
	if err != nil {
		return fmt.Errorf("change password: %w", err)
	}
	return nil
}
