package handlers

import (
	"net/http"

	"github.com/autotrack/vehicle-records/middleware"
	"github.com/autotrack/vehicle-records/models"
	"github.com/autotrack/vehicle-records/utils"
	"go.uber.org/zap"
)

// UserRequest is the body of POST /users and PUT /users/{id}. user_id is
// accepted for compatibility with clients that echo a fetched user and ignored.
type UserRequest struct {
	UserID       int64  `json:"user_id,omitempty"`
	UserEmail    string `json:"user_email" validate:"required,email,max=255"`
	UserName     string `json:"user_name" validate:"required,max=255"`
	UserPassword string `json:"user_password" validate:"required,max=255"`
}

func (req *UserRequest) toModel() *models.User {
	return &models.User{
		UserEmail:    req.UserEmail,
		UserName:     req.UserName,
		UserPassword: req.UserPassword,
	}
}

// UserHandler handles user-related HTTP requests. The password never appears
// in a response, so create and update decode a dedicated request type.
type UserHandler struct {
	*RecordHandler[models.User]
	users  RecordStore[models.User]
	logger *zap.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(users RecordStore[models.User], logger *zap.Logger) *UserHandler {
	return &UserHandler{
		RecordHandler: NewRecordHandler[models.User]("user", users, logger),
		users:         users,
		logger:        logger,
	}
}

// HandleCreate handles POST /users
func (h *UserHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeUser(w, r)
	if !ok {
		return
	}

	user, err := h.users.Create(r.Context(), req.toModel())
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	h.logger.Info("user created",
		zap.String("request_id", middleware.GetRequestIDFromContext(r.Context())),
		zap.Int64("user_id", user.UserID))
	_ = utils.WriteCreated(w, user)
}

// HandleUpdate handles PUT /users/{id}
func (h *UserHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	req, ok := h.decodeUser(w, r)
	if !ok {
		return
	}

	user, err := h.users.Update(r.Context(), id, req.toModel())
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteOK(w, user)
}

func (h *UserHandler) decodeUser(w http.ResponseWriter, r *http.Request) (*UserRequest, bool) {
	var req UserRequest
	if !decodeBody(w, r, &req, h.logger) {
		return nil, false
	}
	if err := utils.ValidateStruct(&req); err != nil {
		HandleValidationError(w, err, h.logger)
		return nil, false
	}
	return &req, true
}
