package middleware

import (
	"net/http"
	"time"

	"github.com/autotrack/vehicle-records/internal/observability"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// slowRequestThreshold marks requests worth a warning
const slowRequestThreshold = 5 * time.Second

// RequestLogger logs one line per completed request with its status and duration
func RequestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			duration := time.Since(start)
			reqLogger := observability.WithResponse(observability.WithRequest(logger, r), ww.Status(), duration).
				With(zap.String("request_id", GetRequestIDFromContext(r.Context())))

			reqLogger.Info("request completed", zap.Int("size", ww.BytesWritten()))
			if duration > slowRequestThreshold {
				reqLogger.Warn("slow request detected")
			}
		})
	}
}
