package handlers

import (
	"net/http"

	"github.com/autotrack/vehicle-records/middleware"
	"github.com/autotrack/vehicle-records/utils"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Hello handles GET and POST /
func Hello(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("Hello, world!"))
}

// pathID parses the named chi URL parameter as a row id, writing a 400 and
// returning false when it is not a positive integer
func pathID(w http.ResponseWriter, r *http.Request, param string) (int64, bool) {
	id, err := utils.ParseID(chi.URLParam(r, param))
	if err != nil {
		_ = utils.WriteBadRequest(w, "Invalid "+param+" format", nil)
		return 0, false
	}
	return id, true
}

// decodeBody decodes the JSON request body into dst, writing a 400 and
// returning false on malformed input
func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}, logger *zap.Logger) bool {
	if err := utils.DecodeJSON(r, dst); err != nil {
		logger.Debug("invalid request body",
			zap.String("request_id", middleware.GetRequestIDFromContext(r.Context())),
			zap.Error(err))
		_ = utils.WriteBadRequest(w, "Invalid request body", nil)
		return false
	}
	return true
}
