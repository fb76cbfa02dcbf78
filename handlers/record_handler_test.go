package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/autotrack/vehicle-records/models"
	"github.com/autotrack/vehicle-records/services"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTuningRouter(store *MockRecordStore[models.Tuning]) http.Handler {
	h := NewRecordHandler[models.Tuning]("tuning", store, zap.NewNop())

	r := chi.NewRouter()
	r.Post("/tunings", h.HandleCreate)
	r.Get("/tunings", h.HandleList)
	r.Get("/tunings/{id}", h.HandleGet)
	r.Put("/tunings/{id}", h.HandleUpdate)
	r.Delete("/tunings/{id}", h.HandleDelete)
	return r
}

func serve(router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRecordHandler_Create(t *testing.T) {
	t.Run("returns 201 with the stored row", func(t *testing.T) {
		store := new(MockRecordStore[models.Tuning])
		store.On("Create", mock.Anything, mock.MatchedBy(func(tn *models.Tuning) bool {
			return tn.CarID == 7 && tn.TuningName == "exhaust" && tn.TuningDate == models.NewDate(2024, time.March, 9)
		})).Return(&models.Tuning{TuningID: 3, CarID: 7, TuningName: "exhaust", TuningDate: models.NewDate(2024, time.March, 9)}, nil)

		w := serve(newTuningRouter(store), http.MethodPost, "/tunings",
			`{"car_id":7,"tuning_name":"exhaust","tuning_date":"2024-03-09","tuning_description":"titanium"}`)

		assert.Equal(t, http.StatusCreated, w.Code)

		var got models.Tuning
		require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
		assert.Equal(t, int64(3), got.TuningID)
		store.AssertExpectations(t)
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		store := new(MockRecordStore[models.Tuning])

		w := serve(newTuningRouter(store), http.MethodPost, "/tunings", `{"car_id":`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		store.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("rejects unknown fields", func(t *testing.T) {
		store := new(MockRecordStore[models.Tuning])

		w := serve(newTuningRouter(store), http.MethodPost, "/tunings", `{"car_id":7,"horsepower":300}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("surfaces validation details", func(t *testing.T) {
		store := new(MockRecordStore[models.Tuning])
		store.On("Create", mock.Anything, mock.Anything).Return(nil,
			services.NewDomainError(services.ErrorTypeValidation, "Validation failed", nil).
				WithDetail("tuning_name", "tuning_name is required"))

		w := serve(newTuningRouter(store), http.MethodPost, "/tunings", `{"car_id":7,"tuning_date":"2024-03-09"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "tuning_name is required")
	})
}

func TestRecordHandler_List(t *testing.T) {
	store := new(MockRecordStore[models.Tuning])
	store.On("List", mock.Anything).Return([]*models.Tuning{}, nil)

	w := serve(newTuningRouter(store), http.MethodGet, "/tunings", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestRecordHandler_Get(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		store := new(MockRecordStore[models.Tuning])
		store.On("Get", mock.Anything, int64(3)).Return(&models.Tuning{TuningID: 3, CarID: 7}, nil)

		w := serve(newTuningRouter(store), http.MethodGet, "/tunings/3", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"tuning_id":3`)
	})

	t.Run("missing row is 404", func(t *testing.T) {
		store := new(MockRecordStore[models.Tuning])
		store.On("Get", mock.Anything, int64(99)).Return(nil, services.ErrRecordNotFound)

		w := serve(newTuningRouter(store), http.MethodGet, "/tunings/99", "")

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	for _, id := range []string{"abc", "0", "-4"} {
		t.Run("bad id "+id, func(t *testing.T) {
			store := new(MockRecordStore[models.Tuning])

			w := serve(newTuningRouter(store), http.MethodGet, "/tunings/"+id, "")

			assert.Equal(t, http.StatusBadRequest, w.Code)
			store.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
		})
	}
}

func TestRecordHandler_Update(t *testing.T) {
	store := new(MockRecordStore[models.Tuning])
	store.On("Update", mock.Anything, int64(3), mock.MatchedBy(func(tn *models.Tuning) bool {
		return tn.TuningName == "intake"
	})).Return(&models.Tuning{TuningID: 3, CarID: 7, TuningName: "intake"}, nil)

	w := serve(newTuningRouter(store), http.MethodPut, "/tunings/3",
		`{"car_id":7,"tuning_name":"intake","tuning_date":"2024-04-01","tuning_description":""}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"tuning_name":"intake"`)
	store.AssertExpectations(t)
}

func TestRecordHandler_Delete(t *testing.T) {
	t.Run("returns 204", func(t *testing.T) {
		store := new(MockRecordStore[models.Tuning])
		store.On("Delete", mock.Anything, int64(3)).Return(nil)

		w := serve(newTuningRouter(store), http.MethodDelete, "/tunings/3", "")

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.String())
	})

	t.Run("missing row is 404", func(t *testing.T) {
		store := new(MockRecordStore[models.Tuning])
		store.On("Delete", mock.Anything, int64(3)).Return(services.ErrRecordNotFound)

		w := serve(newTuningRouter(store), http.MethodDelete, "/tunings/3", "")

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestHello(t *testing.T) {
	for _, method := range []string{http.MethodGet, http.MethodPost} {
		w := httptest.NewRecorder()
		Hello(w, httptest.NewRequest(method, "/", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Hello, world!", w.Body.String())
	}
}
