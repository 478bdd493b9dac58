package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conduit-lang/classview/runtime/query"
)

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestRenderError(t *testing.T) {
	rec := httptest.NewRecorder()
	RenderError(rec, http.StatusNotFound, errors.New("struct not found"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, ContentTypeJSON, rec.Header().Get("Content-Type"))

	body := decodeError(t, rec)
	assert.Equal(t, "error", body.Error)
	assert.Equal(t, "struct not found", body.Message)
	assert.Equal(t, "not_found", body.Code)
}

func TestRenderErrorValidation(t *testing.T) {
	tests := []struct {
		err      error
		wantCode string
	}{
		{&query.ValidationError{Field: "filter", Value: "color", Err: query.ErrInvalidFilterKey}, "invalid_filter_key"},
		{&query.ValidationError{Field: "filters", Value: "65 > 64", Err: query.ErrTooManyClauses}, "too_many_clauses"},
		{&query.ValidationError{Field: "page", Value: "-1", Err: query.ErrInvalidPagination}, "invalid_pagination"},
		{fmt.Errorf("wrapped: %w", &query.ValidationError{Field: "x", Err: errors.New("other")}), "validation_error"},
	}

	for _, tt := range tests {
		rec := httptest.NewRecorder()
		RenderError(rec, http.StatusInternalServerError, tt.err)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		body := decodeError(t, rec)
		assert.Equal(t, "validation_failed", body.Error)
		assert.Equal(t, tt.wantCode, body.Code)
		assert.Contains(t, body.Details, "field")
	}
}

func TestRenderHelpers(t *testing.T) {
	tests := []struct {
		name       string
		render     func(http.ResponseWriter)
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{"bad request", func(w http.ResponseWriter) { RenderBadRequest(w, "bad body") }, 400, "bad_request", "bad body"},
		{"not found default", func(w http.ResponseWriter) { RenderNotFound(w, "") }, 404, "not_found", "Resource not found"},
		{"method", func(w http.ResponseWriter) { RenderMethodNotAllowed(w) }, 405, "method_not_allowed", "method not allowed"},
		{"internal", func(w http.ResponseWriter) { RenderInternalError(w) }, 500, "internal_error", "internal server error"},
		{"unavailable", func(w http.ResponseWriter) { RenderServiceUnavailable(w, "") }, 503, "service_unavailable", "Service temporarily unavailable"},
		{"too many", func(w http.ResponseWriter) { RenderError(w, http.StatusTooManyRequests, errors.New("slow down")) }, 429, "rate_limited", "slow down"},
		{"unmapped", func(w http.ResponseWriter) { RenderError(w, http.StatusConflict, errors.New("conflict")) }, 409, "error", "conflict"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tt.render(rec)

			assert.Equal(t, tt.wantStatus, rec.Code)
			body := decodeError(t, rec)
			assert.Equal(t, tt.wantCode, body.Code)
			assert.Equal(t, tt.wantMsg, body.Message)
		})
	}
}

func TestRenderErrorWithDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	RenderErrorWithDetails(rec, http.StatusBadRequest, errors.New("nope"), map[string]interface{}{"limit": 500})

	body := decodeError(t, rec)
	assert.Equal(t, float64(500), body.Details["limit"])
}

func TestRenderRaw(t *testing.T) {
	rec := httptest.NewRecorder()
	RenderRaw(rec, http.StatusOK, []byte(`{"ok":true}`))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
	assert.Equal(t, ContentTypeJSON, rec.Header().Get("Content-Type"))
}
