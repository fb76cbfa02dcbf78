package handlers

import (
	"context"
	"net/http"

	"github.com/autotrack/vehicle-records/middleware"
	"github.com/autotrack/vehicle-records/models"
	"github.com/autotrack/vehicle-records/utils"
	"go.uber.org/zap"
)

// CarStore is RecordStore plus the ownership and image operations
type CarStore interface {
	RecordStore[models.Car]

	// CreateForUser stores a car and links it to its owner
	CreateForUser(ctx context.Context, car *models.Car, userID int64) (*models.Car, error)

	// ListByUser returns the cars linked to a user
	ListByUser(ctx context.Context, userID int64) ([]*models.Car, error)

	// UpdateImageURL sets the car's image URL
	UpdateImageURL(ctx context.Context, id int64, imageURL string) error
}

// CreateCarRequest is the body of POST /cars
type CreateCarRequest struct {
	Car    models.Car `json:"car"`
	UserID int64      `json:"user_id"`
}

// CarHandler handles car-related HTTP requests
type CarHandler struct {
	*RecordHandler[models.Car]
	cars   CarStore
	logger *zap.Logger
}

// NewCarHandler creates a new CarHandler
func NewCarHandler(cars CarStore, logger *zap.Logger) *CarHandler {
	return &CarHandler{
		RecordHandler: NewRecordHandler[models.Car]("car", cars, logger),
		cars:          cars,
		logger:        logger,
	}
}

// HandleCreate handles POST /cars
func (h *CarHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateCarRequest
	if !decodeBody(w, r, &req, h.logger) {
		return
	}

	car, err := h.cars.CreateForUser(r.Context(), &req.Car, req.UserID)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	h.logger.Info("car created",
		zap.String("request_id", middleware.GetRequestIDFromContext(r.Context())),
		zap.Int64("car_id", car.CarID),
		zap.Int64("user_id", req.UserID))
	_ = utils.WriteCreated(w, car)
}

// HandleListByUser handles GET /users/{user_id}/cars
func (h *CarHandler) HandleListByUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "user_id")
	if !ok {
		return
	}

	cars, err := h.cars.ListByUser(r.Context(), userID)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteOK(w, cars)
}

// HandleUpdateImage handles PUT /cars/{id}/image. The body is a JSON string
// holding the image URL, usually one returned by POST /upload_image.
func (h *CarHandler) HandleUpdateImage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var imageURL string
	if !decodeBody(w, r, &imageURL, h.logger) {
		return
	}

	if err := h.cars.UpdateImageURL(r.Context(), id, imageURL); err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	h.logger.Info("car image updated",
		zap.String("request_id", middleware.GetRequestIDFromContext(r.Context())),
		zap.Int64("car_id", id))
	_ = utils.WriteOK(w, "Image URL updated successfully")
}
