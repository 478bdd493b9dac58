package router

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/conduit-lang/classview/internal/web/response"
)

// ErrorHandler provides default error handlers
type ErrorHandler struct {
	// Include request details in responses
	ShowDetails bool
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(showDetails bool) *ErrorHandler {
	return &ErrorHandler{
		ShowDetails: showDetails,
	}
}

// NotFoundHandler returns a handler for 404 Not Found errors
func (eh *ErrorHandler) NotFoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := fmt.Errorf("no route for %s", r.URL.Path)
		if !eh.ShowDetails {
			response.RenderError(w, http.StatusNotFound, err)
			return
		}
		response.RenderErrorWithDetails(w, http.StatusNotFound, err, map[string]interface{}{
			"path":   r.URL.Path,
			"method": r.Method,
		})
	}
}

// MethodNotAllowedHandler returns a handler for 405 Method Not Allowed errors
func (eh *ErrorHandler) MethodNotAllowedHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := fmt.Errorf("method %s is not allowed for %s", r.Method, r.URL.Path)
		allowed := allowedMethods(r)
		if len(allowed) > 0 {
			w.Header().Set("Allow", strings.Join(allowed, ", "))
		}
		if eh.ShowDetails {
			response.RenderErrorWithDetails(w, http.StatusMethodNotAllowed, err, map[string]interface{}{
				"allowed_methods": allowed,
			})
			return
		}
		response.RenderError(w, http.StatusMethodNotAllowed, err)
	}
}

// allowedMethods lists the methods registered for the request's path on the
// router that served it.
func allowedMethods(r *http.Request) []string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil || rctx.Routes == nil {
		return nil
	}

	var methods []string
	for _, m := range []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete} {
		tctx := chi.NewRouteContext()
		if rctx.Routes.Match(tctx, m, r.URL.Path) {
			methods = append(methods, m)
		}
	}
	return methods
}
