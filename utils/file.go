package utils

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

var (
	ErrInvalidImageType = errors.New("invalid file type. Only jpg, jpeg, png, gif, webp allowed")
	ErrImageTooLarge    = errors.New("file size exceeds maximum allowed size")
)

// ValidateImageFile checks a local file before it is uploaded.
func ValidateImageFile(path string, maxSize int64) error {
	ext := strings.ToLower(filepath.Ext(path))
	if !allowedImageExtensions[ext] {
		return ErrInvalidImageType
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("file not found: %s", path)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}
	if maxSize > 0 && info.Size() > maxSize {
		return ErrImageTooLarge
	}
	return nil
}

// PublicIDFor derives a Cloudinary public id from a local file name.
func PublicIDFor(prefix, path string, unix int64) string {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	base = strings.ReplaceAll(base, " ", "_")
	return fmt.Sprintf("%s_%d_%s", prefix, unix, base)
}
