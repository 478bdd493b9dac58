package response

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/conduit-lang/classview/runtime/query"
)

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Error   string                 `json:"error"`
	Message string                 `json:"message"`
	Code    string                 `json:"code,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// RenderError renders a standard error response. Query validation errors
// are rendered with their field and value as details.
func RenderError(w http.ResponseWriter, statusCode int, err error) {
	var ve *query.ValidationError
	if errors.As(err, &ve) {
		RenderValidationError(w, ve)
		return
	}
	RenderErrorWithCode(w, statusCode, err, "")
}

// RenderErrorWithCode renders an error with a specific error code
func RenderErrorWithCode(w http.ResponseWriter, statusCode int, err error, code string) {
	if code == "" {
		code = errorCodeFromStatus(statusCode)
	}

	RenderJSON(w, statusCode, &ErrorResponse{
		Error:   "error",
		Message: err.Error(),
		Code:    code,
	})
}

// RenderErrorWithDetails renders an error with additional details
func RenderErrorWithDetails(w http.ResponseWriter, statusCode int, err error, details map[string]interface{}) {
	RenderJSON(w, statusCode, &ErrorResponse{
		Error:   "error",
		Message: err.Error(),
		Code:    errorCodeFromStatus(statusCode),
		Details: details,
	})
}

// RenderValidationError renders a rejected query as 400 Bad Request.
func RenderValidationError(w http.ResponseWriter, ve *query.ValidationError) {
	RenderJSON(w, http.StatusBadRequest, &ErrorResponse{
		Error:   "validation_failed",
		Message: ve.Error(),
		Code:    validationCode(ve.Err),
		Details: map[string]interface{}{
			"field": ve.Field,
			"value": ve.Value,
		},
	})
}

func validationCode(err error) string {
	switch {
	case errors.Is(err, query.ErrInvalidFilterKey):
		return "invalid_filter_key"
	case errors.Is(err, query.ErrTooManyClauses):
		return "too_many_clauses"
	case errors.Is(err, query.ErrInvalidPagination):
		return "invalid_pagination"
	default:
		return "validation_error"
	}
}

// RenderBadRequest renders a 400 Bad Request error
func RenderBadRequest(w http.ResponseWriter, message string) {
	RenderError(w, http.StatusBadRequest, fmt.Errorf("%s", message))
}

// RenderNotFound renders a 404 Not Found error
func RenderNotFound(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Resource not found"
	}
	RenderError(w, http.StatusNotFound, fmt.Errorf("%s", message))
}

// RenderMethodNotAllowed renders a 405 Method Not Allowed error
func RenderMethodNotAllowed(w http.ResponseWriter) {
	RenderError(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
}

// RenderInternalError renders a 500 Internal Server Error. The error itself
// is not exposed to the client.
func RenderInternalError(w http.ResponseWriter) {
	RenderError(w, http.StatusInternalServerError, fmt.Errorf("internal server error"))
}

// RenderServiceUnavailable renders a 503 Service Unavailable error
func RenderServiceUnavailable(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Service temporarily unavailable"
	}
	RenderError(w, http.StatusServiceUnavailable, fmt.Errorf("%s", message))
}

// errorCodeFromStatus maps HTTP status codes to error codes
func errorCodeFromStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "bad_request"
	case http.StatusNotFound:
		return "not_found"
	case http.StatusMethodNotAllowed:
		return "method_not_allowed"
	case http.StatusRequestEntityTooLarge:
		return "request_too_large"
	case http.StatusUnsupportedMediaType:
		return "unsupported_media_type"
	case http.StatusTooManyRequests:
		return "rate_limited"
	case http.StatusInternalServerError:
		return "internal_error"
	case http.StatusServiceUnavailable:
		return "service_unavailable"
	default:
		return "error"
	}
}
