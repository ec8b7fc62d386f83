package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const RequestIdHeader = "X-Request-Id"

// Struct that holds response data.
type responseData struct {
	status int
	size   int
}

// Wrapper around http.ResponseWriter which captures the response data after the handler function returns.
type loggingResponseWriter struct {
	http.ResponseWriter // compose wrapped http.ResponseWriter
	responseData        *responseData
}

func (r *loggingResponseWriter) Write(b []byte) (int, error) {
	if r.responseData.status == 0 {
		r.responseData.status = http.StatusOK
	}
	size, err := r.ResponseWriter.Write(b)
	r.responseData.size += size
	return size, err
}

func (r *loggingResponseWriter) WriteHeader(statusCode int) {
	r.ResponseWriter.WriteHeader(statusCode) // write status code using wrapped http.ResponseWriter
	if r.responseData.status == 0 {
		r.responseData.status = statusCode // capture status code
	}
}

// WithLogging logs every request once it has been handled.
//
// The request id is taken from the X-Request-Id header or generated, and echoed in the response.
func WithLogging(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			requestId := r.Header.Get(RequestIdHeader)
			if requestId == "" {
				requestId = uuid.NewString()
			}
			w.Header().Set(RequestIdHeader, requestId)

			lw := loggingResponseWriter{
				ResponseWriter: w,
				responseData:   &responseData{},
			}

			next.ServeHTTP(&lw, r)

			status := lw.responseData.status
			if status == 0 {
				status = http.StatusOK
			}

			logger.Info("Handled request",
				zap.String("method", r.Method),
				zap.String("url", r.URL.Path),
				zap.Int("status", status),
				zap.Int("size", lw.responseData.size),
				zap.Duration("duration", time.Since(start)),
				zap.String("remote", r.RemoteAddr),
				zap.String("requestId", requestId),
			)
		})
	}
}
