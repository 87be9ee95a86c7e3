package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/dabi61/opensky/internal/server/handlers"
)

// RequestIDHeader ставит клиент на каждый авторизованный запрос
const RequestIDHeader = "X-Request-ID"

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    int64
}

// WriteHeader captures the status code
func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Write captures the number of bytes written
func (rw *responseWriter) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.written += int64(n)
	return n, err
}

// userRecorder is filled by the auth middleware deeper in the chain,
// so the access log can include the user after the handler returns.
type userRecorder struct {
	userID string
}

type recorderKey struct{}

// LoggingMiddleware логирует метод, путь, статус, длительность и размер ответа.
// Тело запроса и заголовки с токенами не логируются.
func LoggingMiddleware(logger *slog.Logger, skipPaths ...string) func(http.Handler) http.Handler {
	skip := make(map[string]struct{}, len(skipPaths))
	for _, p := range skipPaths {
		skip[p] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := skip[r.URL.Path]; ok {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			rec := &userRecorder{}

			next.ServeHTTP(wrapped, r.WithContext(withRecorder(r, rec)))

			logLevel := slog.LevelInfo
			if wrapped.statusCode >= 500 {
				logLevel = slog.LevelError
			} else if wrapped.statusCode >= 400 {
				logLevel = slog.LevelWarn
			}

			attrs := []any{
				"method", r.Method,
				"path", r.URL.Path,
				"remote_addr", r.RemoteAddr,
				"status", wrapped.statusCode,
				"duration_ms", time.Since(start).Milliseconds(),
				"bytes_written", wrapped.written,
			}
			if id := r.Header.Get(RequestIDHeader); id != "" {
				attrs = append(attrs, "request_id", id)
			}
			if rec.userID != "" {
				attrs = append(attrs, "user_id", rec.userID)
			}

			logger.Log(r.Context(), logLevel, "HTTP request", attrs...)
		})
	}
}

func withRecorder(r *http.Request, rec *userRecorder) context.Context {
	return context.WithValue(r.Context(), recorderKey{}, rec)
}

// RecordUser передает user_id наверх в access log
func RecordUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rec, ok := r.Context().Value(recorderKey{}).(*userRecorder); ok {
			if id, ok := handlers.UserIDFromContext(r.Context()); ok {
				rec.userID = id
			}
		}
		next.ServeHTTP(w, r)
	})
}
