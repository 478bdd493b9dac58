package middleware

import (
	"net/http"
	"slices"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// LoggingConfig holds configuration for the logging middleware
type LoggingConfig struct {
	// Logger receives one entry per request
	Logger func(LogEntry)
	// SkipPaths is a list of paths to skip logging
	SkipPaths []string
}

// LogEntry represents a log entry for a request
type LogEntry struct {
	RequestID    string
	Method       string
	Path         string
	Route        string
	StatusCode   int
	Duration     time.Duration
	BytesWritten int
	RemoteAddr   string
	UserAgent    string
}

// Logging writes one access log line per request to logger. Health checks
// and metric scrapes are not logged.
func Logging(logger *zap.Logger) Middleware {
	return LoggingWithConfig(LoggingConfig{
		Logger:    ZapLogEntry(logger),
		SkipPaths: []string{"/healthz", "/metrics"},
	})
}

// LoggingWithConfig creates a logging middleware with custom configuration
func LoggingWithConfig(config LoggingConfig) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if config.Logger == nil || slices.Contains(config.SkipPaths, r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			rw := newResponseWriter(w)

			next.ServeHTTP(rw, r)

			config.Logger(LogEntry{
				RequestID:    GetRequestID(r.Context()),
				Method:       r.Method,
				Path:         r.URL.Path,
				Route:        routePattern(r),
				StatusCode:   rw.statusCode,
				Duration:     time.Since(start),
				BytesWritten: rw.bytesWritten,
				RemoteAddr:   r.RemoteAddr,
				UserAgent:    r.UserAgent(),
			})
		})
	}
}

// ZapLogEntry adapts a zap logger to LoggingConfig.Logger. Server errors
// are logged at error level and client errors at warn.
func ZapLogEntry(logger *zap.Logger) func(LogEntry) {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("http")

	return func(e LogEntry) {
		fields := []zap.Field{
			zap.String("request_id", e.RequestID),
			zap.String("method", e.Method),
			zap.String("path", e.Path),
			zap.String("route", e.Route),
			zap.Int("status", e.StatusCode),
			zap.Duration("duration", e.Duration),
			zap.Int("bytes", e.BytesWritten),
			zap.String("remote_addr", e.RemoteAddr),
			zap.String("user_agent", e.UserAgent),
		}

		switch {
		case e.StatusCode >= 500:
			logger.Error("request", fields...)
		case e.StatusCode >= 400:
			logger.Warn("request", fields...)
		default:
			logger.Info("request", fields...)
		}
	}
}

// routePattern returns the chi route pattern that served r, or "" when the
// request was not routed by chi.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		return rctx.RoutePattern()
	}
	return ""
}

// responseWriter wraps http.ResponseWriter to capture status code and bytes written
type responseWriter struct {
	http.ResponseWriter
	statusCode   int
	bytesWritten int
	wroteHeader  bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
}

// WriteHeader captures the status code
func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.wroteHeader {
		rw.statusCode = statusCode
		rw.wroteHeader = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

// Write captures bytes written
func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.wroteHeader {
		rw.WriteHeader(http.StatusOK)
	}
	n, err := rw.ResponseWriter.Write(b)
	rw.bytesWritten += n
	return n, err
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}
