package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoggingCapturesEntry(t *testing.T) {
	var entries []LogEntry
	mw := LoggingWithConfig(LoggingConfig{
		Logger: func(e LogEntry) { entries = append(entries, e) },
	})

	r := chi.NewRouter()
	r.Use(RequestID(nil), mw)
	r.Get("/api/get-struct", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("missing"))
	})

	req := httptest.NewRequest(http.MethodGet, "/api/get-struct?structname=X", nil)
	req.Header.Set("User-Agent", "test-agent")
	r.ServeHTTP(httptest.NewRecorder(), req)

	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	e := entries[0]
	if e.StatusCode != http.StatusNotFound {
		t.Errorf("StatusCode = %d", e.StatusCode)
	}
	if e.BytesWritten != len("missing") {
		t.Errorf("BytesWritten = %d", e.BytesWritten)
	}
	if e.Route != "/api/get-struct" {
		t.Errorf("Route = %q", e.Route)
	}
	if e.RequestID == "" {
		t.Error("RequestID is empty")
	}
	if e.UserAgent != "test-agent" {
		t.Errorf("UserAgent = %q", e.UserAgent)
	}
}

func TestLoggingSkipPaths(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	handler := Logging(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	for _, path := range []string{"/healthz", "/metrics", "/api/get-enum"} {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	if logs.Len() != 1 {
		t.Fatalf("got %d log entries, want 1", logs.Len())
	}
	if got := logs.All()[0].ContextMap()["path"]; got != "/api/get-enum" {
		t.Errorf("path = %v", got)
	}
}

func TestZapLogEntryLevels(t *testing.T) {
	tests := []struct {
		status int
		level  zapcore.Level
	}{
		{http.StatusOK, zapcore.InfoLevel},
		{http.StatusBadRequest, zapcore.WarnLevel},
		{http.StatusInternalServerError, zapcore.ErrorLevel},
	}

	for _, tt := range tests {
		core, logs := observer.New(zapcore.DebugLevel)
		ZapLogEntry(zap.New(core))(LogEntry{StatusCode: tt.status})

		if logs.Len() != 1 {
			t.Fatalf("status %d: got %d entries", tt.status, logs.Len())
		}
		entry := logs.All()[0]
		if entry.Level != tt.level {
			t.Errorf("status %d: level = %v, want %v", tt.status, entry.Level, tt.level)
		}
		if entry.LoggerName != "http" {
			t.Errorf("logger name = %q", entry.LoggerName)
		}
	}
}

func TestResponseWriterDefaults(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := newResponseWriter(rec)

	rw.Write([]byte("abc"))
	rw.WriteHeader(http.StatusTeapot)

	if rw.statusCode != http.StatusOK {
		t.Errorf("statusCode = %d, want 200", rw.statusCode)
	}
	if rw.bytesWritten != 3 {
		t.Errorf("bytesWritten = %d", rw.bytesWritten)
	}
	if rw.Unwrap() != rec {
		t.Error("Unwrap should return the wrapped writer")
	}
}
