package http

import (
	"fmt"
	"net/http"
	"time"

	"tpv-server/internal/adapter/logger"
)

func LoggingMiddleware(lgr logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			requestID := fmt.Sprintf("req-%d", time.Now().UnixNano())

			lgr.Debug("http_request", fmt.Sprintf("%s %s", r.Method, r.URL.Path), requestID, map[string]any{
				"method": r.Method,
				"path":   r.URL.Path,
			})

			next.ServeHTTP(w, r)

			lgr.Debug("http_response", "Request completed", requestID, map[string]any{
				"duration_ms": time.Since(start).Milliseconds(),
			})
		})
	}
}

// RecoveryMiddleware keeps a panicking handler from taking the process down;
// the caller gets a regular error envelope instead.
func RecoveryMiddleware(lgr logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					requestID := fmt.Sprintf("req-%d", time.Now().UnixNano())
					lgr.Error("panic_recovered", "Panic recovered", requestID, nil, fmt.Errorf("%v", rec))
					writeJSON(w, http.StatusInternalServerError, errorResponse{OK: false, Error: "internal server error"})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
