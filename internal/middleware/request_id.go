package middleware

import (
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RequestIDHeader carries the request ID in both directions.
const RequestIDHeader = "X-Request-ID"

// WithRequestID tags every request with an ID, reusing a well-formed
// incoming one, echoes it on the response and adds it to the context logger.
func WithRequestID(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(RequestIDHeader)
			if _, err := uuid.Parse(id); err != nil {
				id = uuid.NewString()
			}
			w.Header().Set(RequestIDHeader, id)

			reqLogger := LoggerFromContext(r.Context(), logger).With(zap.String("request_id", id))
			next.ServeHTTP(w, r.WithContext(ContextWithLogger(r.Context(), reqLogger)))
		})
	}
}
