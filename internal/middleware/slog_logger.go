// Package middleware provides HTTP middleware for the vacation planner server.
package middleware

import (
	"log/slog"
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewSlogLogger returns a middleware that logs each request as a structured
// line via the provided slog.Logger: method, path, status, bytes written,
// duration, and the request ID set by chi's RequestID middleware.
//
// Wire it after chimiddleware.RequestID so the request ID is available.
// Redirects are logged with their Location, which is where form handlers
// report the outcome of a submission.
func NewSlogLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			attrs := []any{
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", chimiddleware.GetReqID(r.Context()),
			}
			if loc := ww.Header().Get("Location"); loc != "" {
				attrs = append(attrs, "location", loc)
			}

			level := slog.LevelInfo
			if ww.Status() >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			log.Log(r.Context(), level, "request", attrs...)
		})
	}
}
