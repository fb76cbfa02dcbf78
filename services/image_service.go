package services

import (
	"context"
	"path"
	"strings"

	"github.com/autotrack/vehicle-records/storage"
	"go.uber.org/zap"
)

const (
	imageKeyPrefix   = "images/"
	imageContentType = "image/jpeg"
)

// ImageService stores car images and hands back their public URL
type ImageService struct {
	uploader storage.Uploader
	logger   *zap.Logger
}

// NewImageService creates an image service. A nil uploader makes every
// upload fail with ErrStorageNotConfigured.
func NewImageService(uploader storage.Uploader, logger *zap.Logger) *ImageService {
	return &ImageService{
		uploader: uploader,
		logger:   logger,
	}
}

// Upload stores data as images/<file name> and returns the public URL
func (s *ImageService) Upload(ctx context.Context, fileName string, data []byte) (string, error) {
	if s.uploader == nil {
		return "", ErrStorageNotConfigured
	}

	name := path.Base(strings.ReplaceAll(fileName, `\`, "/"))
	if name == "." || name == ".." || name == "/" || name == "" {
		return "", ErrMissingFileName
	}

	key := imageKeyPrefix + name
	if err := s.uploader.Upload(ctx, key, data, imageContentType); err != nil {
		s.logger.Error("image upload failed", zap.String("key", key), zap.Error(err))
		return "", ErrStorageFailed.Wrap(err)
	}

	return s.uploader.PublicURL(key), nil
}
