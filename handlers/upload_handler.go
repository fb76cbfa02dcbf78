package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/autotrack/vehicle-records/middleware"
	"github.com/autotrack/vehicle-records/utils"
	"go.uber.org/zap"
)

// DefaultMaxImageBytes bounds an upload request body
const DefaultMaxImageBytes = 10 << 20

// ImageUploader stores an image and returns its public URL
type ImageUploader interface {
	Upload(ctx context.Context, fileName string, data []byte) (string, error)
}

// UploadHandler relays multipart image uploads to object storage
type UploadHandler struct {
	uploader ImageUploader
	maxBytes int64
	logger   *zap.Logger
}

// NewUploadHandler creates a new UploadHandler. maxBytes <= 0 selects
// DefaultMaxImageBytes.
func NewUploadHandler(uploader ImageUploader, maxBytes int64, logger *zap.Logger) *UploadHandler {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxImageBytes
	}
	return &UploadHandler{
		uploader: uploader,
		maxBytes: maxBytes,
		logger:   logger,
	}
}

// HandleUpload handles POST /upload_image. The first part carrying a file
// name is stored; the response body is its public URL as a JSON string.
func (h *UploadHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestIDFromContext(ctx)

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)
	reader, err := r.MultipartReader()
	if err != nil {
		_ = utils.WriteBadRequest(w, "Request must be multipart/form-data", nil)
		return
	}

	for {
		part, err := reader.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			h.writeReadError(w, requestID, err)
			return
		}

		fileName := part.FileName()
		if fileName == "" {
			_ = part.Close()
			continue
		}

		data, err := io.ReadAll(part)
		_ = part.Close()
		if err != nil {
			h.writeReadError(w, requestID, err)
			return
		}

		url, err := h.uploader.Upload(ctx, fileName, data)
		if err != nil {
			HandleServiceError(w, err, h.logger)
			return
		}

		h.logger.Info("image uploaded",
			zap.String("request_id", requestID),
			zap.String("file_name", fileName),
			zap.Int("size", len(data)))
		_ = utils.WriteOK(w, url)
		return
	}

	_ = utils.WriteBadRequest(w, "No file provided", nil)
}

func (h *UploadHandler) writeReadError(w http.ResponseWriter, requestID string, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		h.logger.Warn("upload too large",
			zap.String("request_id", requestID),
			zap.Int64("limit", tooLarge.Limit))
		_ = utils.WriteError(w, http.StatusRequestEntityTooLarge, "Image is too large", nil)
		return
	}

	h.logger.Warn("failed to read upload",
		zap.String("request_id", requestID),
		zap.Error(err))
	_ = utils.WriteBadRequest(w, "Failed to read uploaded file", nil)
}
