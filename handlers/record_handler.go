package handlers

import (
	"context"
	"net/http"

	"github.com/autotrack/vehicle-records/middleware"
	"github.com/autotrack/vehicle-records/utils"
	"go.uber.org/zap"
)

// RecordStore defines the CRUD operations a RecordHandler serves
type RecordStore[T any] interface {
	Create(ctx context.Context, item *T) (*T, error)
	Get(ctx context.Context, id int64) (*T, error)
	List(ctx context.Context) ([]*T, error)
	Update(ctx context.Context, id int64, item *T) (*T, error)
	Delete(ctx context.Context, id int64) error
}

// RecordHandler serves create/list/get/update/delete for one table.
// Bodies decode straight into the model; the store validates them.
type RecordHandler[T any] struct {
	store  RecordStore[T]
	entity string
	logger *zap.Logger
}

// NewRecordHandler creates a new RecordHandler
func NewRecordHandler[T any](entity string, store RecordStore[T], logger *zap.Logger) *RecordHandler[T] {
	return &RecordHandler[T]{
		store:  store,
		entity: entity,
		logger: logger,
	}
}

// HandleCreate handles POST /<records>
func (h *RecordHandler[T]) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var item T
	if !decodeBody(w, r, &item, h.logger) {
		return
	}

	created, err := h.store.Create(r.Context(), &item)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	h.logger.Info(h.entity+" created",
		zap.String("request_id", middleware.GetRequestIDFromContext(r.Context())))
	_ = utils.WriteCreated(w, created)
}

// HandleList handles GET /<records>
func (h *RecordHandler[T]) HandleList(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.List(r.Context())
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteOK(w, items)
}

// HandleGet handles GET /<records>/{id}
func (h *RecordHandler[T]) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	item, err := h.store.Get(r.Context(), id)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteOK(w, item)
}

// HandleUpdate handles PUT /<records>/{id}
func (h *RecordHandler[T]) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var item T
	if !decodeBody(w, r, &item, h.logger) {
		return
	}

	updated, err := h.store.Update(r.Context(), id, &item)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	h.logger.Info(h.entity+" updated",
		zap.String("request_id", middleware.GetRequestIDFromContext(r.Context())),
		zap.Int64("id", id))
	_ = utils.WriteOK(w, updated)
}

// HandleDelete handles DELETE /<records>/{id}
func (h *RecordHandler[T]) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.store.Delete(r.Context(), id); err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	h.logger.Info(h.entity+" deleted",
		zap.String("request_id", middleware.GetRequestIDFromContext(r.Context())),
		zap.Int64("id", id))
	utils.WriteNoContent(w)
}
