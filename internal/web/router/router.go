// Package router wraps chi with route introspection and JSON error handlers.
package router

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/conduit-lang/classview/internal/web/middleware"
)

// Router manages HTTP routing using chi framework
type Router struct {
	mux chi.Router

	// Middleware chain
	chain *middleware.Chain

	// For introspection and debugging
	registeredRoutes []*RouteInfo
}

// Route is returned by the registration methods so the caller can attach
// metadata.
type Route struct {
	info *RouteInfo
}

// RouteInfo provides metadata about a route for introspection
type RouteInfo struct {
	Pattern     string
	Method      string
	Name        string
	Description string
	Parameters  []RouteParameter
}

// RouteParameter describes a parameter in a route
type RouteParameter struct {
	Name     string
	Type     string // int, string, []string
	Required bool
	Source   ParameterSource
}

// ParameterSource indicates where a parameter comes from
type ParameterSource int

const (
	// PathParam indicates a URL path parameter
	PathParam ParameterSource = iota
	// QueryParam indicates a URL query parameter
	QueryParam
	// BodyParam indicates a field of the JSON request body
	BodyParam
)

// String returns the string representation of ParameterSource
func (p ParameterSource) String() string {
	switch p {
	case PathParam:
		return "path"
	case QueryParam:
		return "query"
	case BodyParam:
		return "body"
	default:
		return "unknown"
	}
}

// NewRouter creates a router whose 404 and 405 responses use the JSON
// error body.
func NewRouter() *Router {
	r := &Router{
		mux:              chi.NewRouter(),
		chain:            middleware.NewChain(),
		registeredRoutes: make([]*RouteInfo, 0),
	}

	eh := NewErrorHandler(false)
	r.mux.NotFound(eh.NotFoundHandler())
	r.mux.MethodNotAllowed(eh.MethodNotAllowedHandler())

	return r
}

// ServeHTTP implements http.Handler interface
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// Use adds middleware to the router. It must be called before any route is
// registered.
func (r *Router) Use(middlewares ...middleware.Middleware) {
	for _, m := range middlewares {
		r.chain.Use(m)
		r.mux.Use(m)
	}
}

// Middleware returns the number of middleware installed with Use.
func (r *Router) Middleware() int {
	return r.chain.Len()
}

// Get registers a GET route
func (r *Router) Get(pattern string, handler http.HandlerFunc) *Route {
	return r.addRoute(http.MethodGet, pattern, handler)
}

// Post registers a POST route
func (r *Router) Post(pattern string, handler http.HandlerFunc) *Route {
	return r.addRoute(http.MethodPost, pattern, handler)
}

// Handle registers handler for every method under pattern, for mounted
// handlers such as the metrics endpoint.
func (r *Router) Handle(pattern string, handler http.Handler) *Route {
	r.mux.Handle(pattern, handler)
	return r.record("*", pattern)
}

// addRoute registers a route with the given method, pattern, and handler
func (r *Router) addRoute(method, pattern string, handler http.HandlerFunc) *Route {
	r.mux.Method(method, pattern, handler)
	return r.record(method, pattern)
}

func (r *Router) record(method, pattern string) *Route {
	info := &RouteInfo{
		Pattern:    pattern,
		Method:     method,
		Parameters: extractParameters(pattern),
	}
	r.registeredRoutes = append(r.registeredRoutes, info)
	return &Route{info: info}
}

// Named sets a name for the route
func (route *Route) Named(name string) *Route {
	route.info.Name = name
	return route
}

// Describe sets a one-line description shown in route listings
func (route *Route) Describe(description string) *Route {
	route.info.Description = description
	return route
}

// Query documents a query string parameter the route reads
func (route *Route) Query(name, typ string, required bool) *Route {
	return route.param(name, typ, required, QueryParam)
}

// Body documents a JSON body field the route reads
func (route *Route) Body(name, typ string, required bool) *Route {
	return route.param(name, typ, required, BodyParam)
}

func (route *Route) param(name, typ string, required bool, source ParameterSource) *Route {
	route.info.Parameters = append(route.info.Parameters, RouteParameter{
		Name:     name,
		Type:     typ,
		Required: required,
		Source:   source,
	})
	return route
}

// GetRoutes returns all registered routes for introspection
func (r *Router) GetRoutes() []*RouteInfo {
	return r.registeredRoutes
}

// RouteList returns a formatted list of all routes
func (r *Router) RouteList() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%-6s %-32s %s\n", "METHOD", "PATTERN", "DESCRIPTION"))

	for _, info := range r.registeredRoutes {
		sb.WriteString(fmt.Sprintf("%-6s %-32s %s\n", info.Method, info.Pattern, info.Description))
	}

	return sb.String()
}

// NotFound sets the handler for 404 Not Found
func (r *Router) NotFound(handler http.HandlerFunc) {
	r.mux.NotFound(handler)
}

// MethodNotAllowed sets the handler for 405 Method Not Allowed
func (r *Router) MethodNotAllowed(handler http.HandlerFunc) {
	r.mux.MethodNotAllowed(handler)
}

// extractParameters extracts path parameter definitions from a route pattern
func extractParameters(pattern string) []RouteParameter {
	params := make([]RouteParameter, 0)

	for _, part := range strings.Split(pattern, "/") {
		if strings.HasPrefix(part, "{") && strings.HasSuffix(part, "}") {
			name, _, _ := strings.Cut(strings.Trim(part, "{}"), ":")
			params = append(params, RouteParameter{
				Name:     name,
				Type:     "string",
				Required: true,
				Source:   PathParam,
			})
		}
	}

	return params
}
