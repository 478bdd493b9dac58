package middleware

import (
	"errors"
	"net"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/conduit-lang/classview/internal/web/ratelimit"
	"github.com/conduit-lang/classview/internal/web/response"
)

// RateLimitConfig holds configuration for rate limiting middleware
type RateLimitConfig struct {
	// Limiter is the rate limiter implementation to use
	Limiter ratelimit.Limiter
	// KeyFunc extracts the rate limit key from the request
	KeyFunc RateLimitKeyFunc
	// SkipPaths are never limited
	SkipPaths []string
	// Logger receives limiter failures; requests are let through when the
	// limiter errors
	Logger *zap.Logger
	// Now replaces time.Now when computing Retry-After
	Now func() time.Time
}

// RateLimitKeyFunc extracts a rate limit key from a request
type RateLimitKeyFunc func(*http.Request) string

// RateLimit limits each client IP with limiter. Health checks and metric
// scrapes are not limited.
func RateLimit(limiter ratelimit.Limiter, logger *zap.Logger) Middleware {
	return RateLimitWithConfig(RateLimitConfig{
		Limiter:   limiter,
		KeyFunc:   IPKeyFunc,
		SkipPaths: []string{"/healthz", "/metrics"},
		Logger:    logger,
	})
}

// RateLimitWithConfig creates a rate limiting middleware with custom configuration
func RateLimitWithConfig(config RateLimitConfig) Middleware {
	if config.KeyFunc == nil {
		config.KeyFunc = IPKeyFunc
	}
	if config.Logger == nil {
		config.Logger = zap.NewNop()
	}
	if config.Now == nil {
		config.Now = time.Now
	}
	logger := config.Logger.Named("ratelimit")

	return func(next http.Handler) http.Handler {
		if config.Limiter == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if slices.Contains(config.SkipPaths, r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			key := config.KeyFunc(r)
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}

			info, err := config.Limiter.Allow(r.Context(), key)
			if err != nil {
				logger.Warn("rate limit check failed, allowing request",
					zap.String("key", key),
					zap.String("request_id", GetRequestID(r.Context())),
					zap.Error(err),
				)
				next.ServeHTTP(w, r)
				return
			}

			h := w.Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
			h.Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
			h.Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetAt.Unix(), 10))

			if !info.Allowed {
				h.Set("Retry-After", strconv.Itoa(retryAfter(info.ResetAt, config.Now())))
				response.RenderErrorWithCode(w, http.StatusTooManyRequests,
					errors.New("rate limit exceeded"), "rate_limited")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// retryAfter rounds up to whole seconds and is at least 1.
func retryAfter(reset, now time.Time) int {
	secs := int((reset.Sub(now) + time.Second - 1) / time.Second)
	return max(secs, 1)
}

// IPKeyFunc keys requests by the host part of RemoteAddr.
func IPKeyFunc(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// ForwardedIPKeyFunc prefers the first X-Forwarded-For address, then
// X-Real-IP. Use it only behind a proxy that sets those headers.
func ForwardedIPKeyFunc(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		return xri
	}
	return IPKeyFunc(r)
}
