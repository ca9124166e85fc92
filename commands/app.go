package commands

import (
	"fmt"
	"log"

	"storefront/config"
	"storefront/libs"
	"storefront/repositories"
	"storefront/services"
)

// app is the wiring shared by the client commands.
type app struct {
	cfg     *config.Config
	repo    *repositories.SessionRepository
	session *services.Session
	client  *libs.APIClient
}

func openApp(opts *rootOptions) (*app, error) {
	cfg, err := config.LoadConfig(opts.configPath)
	if err != nil {
		return nil, err
	}
	return newApp(cfg)
}

func newApp(cfg *config.Config) (*app, error) {
	repo, err := repositories.OpenSessionRepository(cfg.SessionDBPath())
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}

	session, err := services.LoadSession(repo)
	if err != nil {
		repo.Close()
		return nil, fmt.Errorf("load session: %w", err)
	}

	return &app{
		cfg:     cfg,
		repo:    repo,
		session: session,
		client:  libs.NewAPIClient(cfg.APIBaseURL, cfg.RequestTimeout),
	}, nil
}

func (a *app) Close() {
	a.repo.Close()
}

// uploader returns nil when Cloudinary is not configured.
func (a *app) uploader() services.MediaUploader {
	if !a.cfg.CloudinaryConfigured() {
		return nil
	}
	up, err := libs.NewCloudinaryUploader(a.cfg)
	if err != nil {
		log.Printf("[Cloudinary] %v", err)
		return nil
	}
	return up
}
