package middleware

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/conduit-lang/classview/internal/web/response"
)

// TimeoutConfig holds configuration for the timeout middleware
type TimeoutConfig struct {
	// Timeout is the maximum duration for a request
	Timeout time.Duration

	// ErrorMessage is the message returned on timeout
	ErrorMessage string

	// StatusCode is the HTTP status code returned on timeout
	StatusCode int
}

// DefaultTimeoutConfig returns the default timeout configuration
func DefaultTimeoutConfig() TimeoutConfig {
	return TimeoutConfig{
		Timeout:      30 * time.Second,
		ErrorMessage: "request timed out",
		StatusCode:   http.StatusServiceUnavailable,
	}
}

// Timeout creates a timeout middleware with default configuration. A zero or
// negative timeout disables it.
func Timeout(timeout time.Duration) Middleware {
	config := DefaultTimeoutConfig()
	config.Timeout = timeout
	return TimeoutWithConfig(config)
}

// timeoutWriter wraps http.ResponseWriter to prevent writes after timeout
type timeoutWriter struct {
	w      http.ResponseWriter
	header http.Header
	mu     sync.Mutex
	done   bool
}

func (tw *timeoutWriter) Header() http.Header {
	return tw.header
}

func (tw *timeoutWriter) Write(b []byte) (int, error) {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	if tw.done {
		return 0, http.ErrHandlerTimeout
	}
	tw.flushHeader()
	return tw.w.Write(b)
}

func (tw *timeoutWriter) WriteHeader(code int) {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	if tw.done {
		return
	}
	tw.flushHeader()
	tw.w.WriteHeader(code)
}

// flushHeader copies headers set by the handler to the real writer. The
// handler writes to its own map so that a late handler cannot race with
// the timeout response.
func (tw *timeoutWriter) flushHeader() {
	dst := tw.w.Header()
	for k, v := range tw.header {
		dst[k] = v
	}
}

// claim marks the writer as timed out. It reports false when the handler
// already started writing, in which case the timeout response is skipped.
func (tw *timeoutWriter) claim(wrote func() bool) bool {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	tw.done = true
	return !wrote()
}

// TimeoutWithConfig creates a timeout middleware with custom configuration
func TimeoutWithConfig(config TimeoutConfig) Middleware {
	return func(next http.Handler) http.Handler {
		if config.Timeout <= 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), config.Timeout)
			defer cancel()

			done := make(chan struct{})
			panicChan := make(chan interface{}, 1)

			rw := newResponseWriter(w)
			tw := &timeoutWriter{w: rw, header: make(http.Header)}

			go func() {
				defer func() {
					if p := recover(); p != nil {
						panicChan <- p
					}
				}()

				next.ServeHTTP(tw, r.WithContext(ctx))
				close(done)
			}()

			select {
			case <-done:
				return
			case p := <-panicChan:
				panic(p)
			case <-ctx.Done():
				if !errors.Is(ctx.Err(), context.DeadlineExceeded) {
					tw.claim(func() bool { return true })
					return
				}
				if tw.claim(func() bool { return rw.wroteHeader }) {
					response.RenderErrorWithCode(rw, config.StatusCode, errors.New(config.ErrorMessage), "request_timeout")
				}
			}
		})
	}
}
