package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestTimeoutFastHandler(t *testing.T) {
	fastHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Handler", "fast")
		w.Write([]byte("OK"))
	})

	w := httptest.NewRecorder()
	Timeout(time.Second)(fastHandler).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if w.Body.String() != "OK" {
		t.Errorf("Expected body 'OK', got %s", w.Body.String())
	}
	if w.Header().Get("X-Handler") != "fast" {
		t.Error("handler headers were not copied")
	}
}

func TestTimeoutSlowHandler(t *testing.T) {
	finished := make(chan struct{})
	release := make(chan struct{})
	slowHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer close(finished)
		<-r.Context().Done()
		<-release
		w.Header().Set("X-Late", "1")
		if _, err := w.Write([]byte("late")); err != http.ErrHandlerTimeout {
			t.Errorf("late write error = %v, want ErrHandlerTimeout", err)
		}
	})

	w := httptest.NewRecorder()
	Timeout(20*time.Millisecond)(slowHandler).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	close(release)
	<-finished

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected status 503, got %d", w.Code)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body["code"] != "request_timeout" {
		t.Errorf("code = %v", body["code"])
	}
}

func TestTimeoutDisabled(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := r.Context().Deadline(); ok {
			t.Error("disabled timeout should not set a deadline")
		}
	})

	Timeout(0)(handler).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
}

func TestTimeoutPropagatesPanic(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("inner")
	})

	defer func() {
		if rec := recover(); rec != "inner" {
			t.Errorf("recovered %v", rec)
		}
	}()
	Timeout(time.Second)(handler).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
}
