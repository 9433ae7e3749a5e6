package middleware

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/templui/soulsync/internal/ctxkeys"
)

// responseWriter records the status and body size of a response.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	bytes      int
	written    bool
}

func (rw *responseWriter) WriteHeader(code int) {
	if !rw.written {
		rw.statusCode = code
		rw.written = true
		rw.ResponseWriter.WriteHeader(code)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	n, err := rw.ResponseWriter.Write(b)
	rw.bytes += n
	return n, err
}

var skipLoggingPaths = []string{
	"/healthz",
	"/favicon.ico",
}

// RequestLogging logs each request once it has been served. It must run
// after SessionMiddleware to see who made the request. Server errors are
// logged at error level so they reach Sentry.
func RequestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if skipLogging(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(rw, r)

		level := slog.LevelInfo
		switch {
		case rw.statusCode >= http.StatusInternalServerError:
			level = slog.LevelError
		case rw.statusCode == http.StatusServiceUnavailable, rw.statusCode == http.StatusTooManyRequests:
			level = slog.LevelWarn
		}

		attrs := []any{
			"method", r.Method,
			"path", r.URL.Path,
			"area", AreaFor(r.URL.Path).String(),
			"status", rw.statusCode,
			"bytes", rw.bytes,
			"duration_ms", time.Since(start).Milliseconds(),
			"ip", getClientIP(r),
		}
		if session := ctxkeys.Session(r.Context()); session != nil {
			attrs = append(attrs, "user_id", session.ID, "role", session.Role)
		}
		if location := rw.Header().Get("Location"); location != "" {
			attrs = append(attrs, "redirect", location)
		}

		slog.Log(r.Context(), level, "http request", attrs...)
	})
}

func skipLogging(path string) bool {
	for _, prefix := range skipLoggingPaths {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}
