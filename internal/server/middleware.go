package server

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// DefaultMiddleware returns the standard stack: request IDs, client IP, request logging and panic recovery.
func DefaultMiddleware(logger *log.Logger) []Middleware {
	return []Middleware{
		chiMiddleware.RequestID,
		chiMiddleware.RealIP,
		RequestLogger(logger),
		chiMiddleware.Recoverer,
	}
}

// RequestLogger logs method, path, status, size and duration of every request.
func RequestLogger(logger *log.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			defer func() {
				status := ww.Status()
				if status == 0 {
					status = http.StatusOK
				}
				kv := []any{
					"method", r.Method,
					"path", r.URL.Path,
					"status", status,
					"bytes", ww.BytesWritten(),
					"duration", time.Since(start),
					"request_id", chiMiddleware.GetReqID(r.Context()),
					"remote", r.RemoteAddr,
				}
				if status >= http.StatusInternalServerError {
					logger.Error("request", kv...)
				} else {
					logger.Info("request", kv...)
				}
			}()

			next.ServeHTTP(ww, r)
		})
	}
}
