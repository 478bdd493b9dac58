package middleware

import (
	"net/http"
	"time"
)

// HTTPObserver records finished requests.
type HTTPObserver interface {
	ObserveRequest(method, route string, status int, duration time.Duration)
}

// UnmatchedRoute labels requests that no route pattern matched, so that
// arbitrary paths never become label values.
const UnmatchedRoute = "unmatched"

// Metrics reports every request to observer, labelled with the route
// pattern rather than the raw path.
func Metrics(observer HTTPObserver) Middleware {
	return func(next http.Handler) http.Handler {
		if observer == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := newResponseWriter(w)

			next.ServeHTTP(rw, r)

			route := routePattern(r)
			if route == "" {
				route = UnmatchedRoute
			}
			observer.ObserveRequest(r.Method, route, rw.statusCode, time.Since(start))
		})
	}
}
