package libs

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"storefront/config"
	"storefront/utils"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

var ErrCloudinaryNotConfigured = errors.New("cloudinary environment variables not set")

// CloudinaryUploader pushes profile images to Cloudinary.
type CloudinaryUploader struct {
	cld     *cloudinary.Cloudinary
	folder  string
	maxSize int64
	now     func() time.Time
}

// NewCloudinaryUploader prefers the separate cloud name, key and secret and
// falls back to CLOUDINARY_URL.
func NewCloudinaryUploader(cfg *config.Config) (*CloudinaryUploader, error) {
	var (
		cld *cloudinary.Cloudinary
		err error
	)

	switch {
	case cfg.CloudinaryCloudName != "" && cfg.CloudinaryAPIKey != "" && cfg.CloudinaryAPISecret != "":
		log.Println("[Cloudinary] Initializing with separate params...")
		cld, err = cloudinary.NewFromParams(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
		if err != nil {
			return nil, fmt.Errorf("cloudinary init from params fail: %w", err)
		}
	case cfg.CloudinaryURL != "":
		log.Printf("[Cloudinary] Using CLOUDINARY_URL: %s", maskURL(cfg.CloudinaryURL))
		cld, err = cloudinary.NewFromURL(cfg.CloudinaryURL)
		if err != nil {
			return nil, fmt.Errorf("cloudinary init from URL fail: %w", err)
		}
	default:
		return nil, ErrCloudinaryNotConfigured
	}

	return &CloudinaryUploader{
		cld:     cld,
		folder:  "profiles",
		maxSize: cfg.MaxUploadSize,
		now:     time.Now,
	}, nil
}

// UploadImage validates the local file and returns its secure URL. The local
// file is left in place.
func (u *CloudinaryUploader) UploadImage(ctx context.Context, localPath string) (string, error) {
	if err := utils.ValidateImageFile(localPath, u.maxSize); err != nil {
		return "", err
	}

	publicID := utils.PublicIDFor("profile", localPath, u.now().UnixNano())
	log.Printf("[Cloudinary] Uploading %s as %s/%s", localPath, u.folder, publicID)

	resp, err := u.cld.Upload.Upload(ctx, localPath, uploader.UploadParams{
		PublicID: publicID,
		Folder:   u.folder,
	})
	if err != nil {
		log.Printf("[Cloudinary] Upload error: %v", err)
		return "", fmt.Errorf("upload image: %w", err)
	}
	if resp == nil {
		return "", errors.New("cloudinary response is nil")
	}
	if resp.Error.Message != "" {
		return "", fmt.Errorf("upload image: %s", resp.Error.Message)
	}

	if resp.SecureURL == "" {
		log.Println("[Cloudinary] SecureURL is empty, trying regular URL")
		if resp.URL != "" {
			return resp.URL, nil
		}
		return "", errors.New("both SecureURL and URL are empty")
	}

	log.Printf("[Cloudinary] Upload successful: %s", resp.PublicID)
	return resp.SecureURL, nil
}

func maskURL(url string) string {
	if len(url) < 20 {
		return "***"
	}
	return url[:10] + "..." + url[len(url)-10:]
}
