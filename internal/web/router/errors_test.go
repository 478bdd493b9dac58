package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conduit-lang/classview/internal/web/response"
)

func decode(t *testing.T, w *httptest.ResponseRecorder) response.ErrorResponse {
	t.Helper()
	var body response.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestNewErrorHandler(t *testing.T) {
	assert.True(t, NewErrorHandler(true).ShowDetails)
	assert.False(t, NewErrorHandler(false).ShowDetails)
}

func TestDefaultNotFound(t *testing.T) {
	router := NewRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nonexistent", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, response.ContentTypeJSON, w.Header().Get("Content-Type"))

	body := decode(t, w)
	assert.Equal(t, "not_found", body.Code)
	assert.Equal(t, "no route for /nonexistent", body.Message)
	assert.Nil(t, body.Details)
}

func TestNotFoundHandlerWithDetails(t *testing.T) {
	router := NewRouter()
	router.NotFound(NewErrorHandler(true).NotFoundHandler())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/nonexistent", nil))

	body := decode(t, w)
	assert.Equal(t, "/nonexistent", body.Details["path"])
	assert.Equal(t, http.MethodDelete, body.Details["method"])
}

func TestDefaultMethodNotAllowed(t *testing.T) {
	router := NewRouter()
	router.Get("/api/get-struct", func(w http.ResponseWriter, r *http.Request) {})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/get-struct", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Equal(t, "GET", w.Header().Get("Allow"))
	assert.Equal(t, "method_not_allowed", decode(t, w).Code)
}

func TestMethodNotAllowedWithDetails(t *testing.T) {
	router := NewRouter()
	router.MethodNotAllowed(NewErrorHandler(true).MethodNotAllowedHandler())
	router.Get("/api/get-filtered-classes", func(w http.ResponseWriter, r *http.Request) {})
	router.Post("/api/get-filtered-classes", func(w http.ResponseWriter, r *http.Request) {})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/get-filtered-classes", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	body := decode(t, w)
	assert.ElementsMatch(t, []interface{}{"GET", "POST"}, body.Details["allowed_methods"])
}
