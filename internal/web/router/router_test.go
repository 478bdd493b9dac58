package router

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conduit-lang/classview/internal/web/middleware"
)

func TestNewRouter(t *testing.T) {
	router := NewRouter()
	assert.NotNil(t, router.mux)
	assert.NotNil(t, router.chain)
	assert.Empty(t, router.GetRoutes())
}

func TestRouterHTTPMethods(t *testing.T) {
	tests := []struct {
		name   string
		method string
		setup  func(*Router, http.HandlerFunc) *Route
	}{
		{
			name:   "GET route",
			method: http.MethodGet,
			setup:  func(r *Router, h http.HandlerFunc) *Route { return r.Get("/test", h) },
		},
		{
			name:   "POST route",
			method: http.MethodPost,
			setup:  func(r *Router, h http.HandlerFunc) *Route { return r.Post("/test", h) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := NewRouter()
			called := false
			route := tt.setup(router, func(w http.ResponseWriter, r *http.Request) {
				called = true
				w.WriteHeader(http.StatusOK)
			})
			require.NotNil(t, route)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(tt.method, "/test", nil))

			assert.True(t, called)
			assert.Equal(t, http.StatusOK, w.Code)

			routes := router.GetRoutes()
			require.Len(t, routes, 1)
			assert.Equal(t, tt.method, routes[0].Method)
			assert.Equal(t, "/test", routes[0].Pattern)
		})
	}
}

func TestRouterHandle(t *testing.T) {
	router := NewRouter()
	router.Handle("/metrics", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, r.Method)
	}))

	for _, method := range []string{http.MethodGet, http.MethodHead, http.MethodPost} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(method, "/metrics", nil))
		assert.Equal(t, http.StatusOK, w.Code, method)
	}
	assert.Equal(t, "*", router.GetRoutes()[0].Method)
}

func TestRouteMetadata(t *testing.T) {
	router := NewRouter()
	router.Get("/api/get-struct", func(w http.ResponseWriter, r *http.Request) {}).
		Named("get-struct").
		Describe("struct by full name").
		Query("structname", "string", true)
	router.Post("/api/get-filtered-classes", func(w http.ResponseWriter, r *http.Request) {}).
		Body("filters", "[]string", false)

	routes := router.GetRoutes()
	require.Len(t, routes, 2)

	assert.Equal(t, "get-struct", routes[0].Name)
	assert.Equal(t, "struct by full name", routes[0].Description)
	assert.Equal(t, []RouteParameter{{Name: "structname", Type: "string", Required: true, Source: QueryParam}}, routes[0].Parameters)
	assert.Equal(t, BodyParam, routes[1].Parameters[0].Source)
}

func TestRouterMiddleware(t *testing.T) {
	router := NewRouter()
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Wrapped", "yes")
			next.ServeHTTP(w, r)
		})
	}, middleware.RequestID(nil))
	router.Get("/x", func(w http.ResponseWriter, r *http.Request) {})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

	assert.Equal(t, "yes", w.Header().Get("X-Wrapped"))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.Equal(t, 2, router.Middleware())
}

func TestExtractParameters(t *testing.T) {
	tests := []struct {
		pattern string
		want    []string
	}{
		{"/api/get-struct", nil},
		{"/api/types/{name}", []string{"name"}},
		{"/api/{kind}/{name:[a-z]+}", []string{"kind", "name"}},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			params := extractParameters(tt.pattern)
			var names []string
			for _, p := range params {
				names = append(names, p.Name)
				assert.Equal(t, PathParam, p.Source)
				assert.True(t, p.Required)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestParameterSourceString(t *testing.T) {
	assert.Equal(t, "path", PathParam.String())
	assert.Equal(t, "query", QueryParam.String())
	assert.Equal(t, "body", BodyParam.String())
	assert.Equal(t, "unknown", ParameterSource(99).String())
}

func TestRouterRouteList(t *testing.T) {
	router := NewRouter()
	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {}).Describe("snapshot status")
	router.Post("/api/get-filtered-classes", func(w http.ResponseWriter, r *http.Request) {})

	list := router.RouteList()
	lines := strings.Split(strings.TrimSpace(list), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "PATTERN")
	assert.Contains(t, lines[1], "/healthz")
	assert.Contains(t, lines[1], "snapshot status")
	assert.Contains(t, lines[2], "POST")
}

func TestParamExtractor(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?filter=name:Actor&filter=has:functions&page=2&limitPerPage=abc", nil)
	p := NewParamExtractor(req)

	assert.Equal(t, []string{"name:Actor", "has:functions"}, p.QueryParamArray("filter"))
	assert.Equal(t, "2", p.QueryParam("page"))

	page, err := p.QueryParamInt("page", 1)
	require.NoError(t, err)
	assert.Equal(t, 2, page)

	missing, err := p.QueryParamInt("missing", 7)
	require.NoError(t, err)
	assert.Equal(t, 7, missing)

	_, err = p.QueryParamInt("limitPerPage", 50)
	assert.ErrorContains(t, err, "limitPerPage")
}
