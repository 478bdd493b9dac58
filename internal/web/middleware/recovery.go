package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"go.uber.org/zap"

	"github.com/conduit-lang/classview/internal/web/response"
)

// RecoveryConfig holds configuration for the recovery middleware
type RecoveryConfig struct {
	// EnableStackTrace determines whether to log stack traces
	EnableStackTrace bool
	// Logger is called with the recovered value and, if enabled, the stack
	Logger func(*http.Request, error, []byte)
	// ResponseHandler writes the response after a panic
	ResponseHandler func(http.ResponseWriter, *http.Request, interface{})
}

// Recovery turns handler panics into 500 responses and logs them to logger.
func Recovery(logger *zap.Logger) Middleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("http")

	return RecoveryWithConfig(RecoveryConfig{
		EnableStackTrace: true,
		Logger: func(r *http.Request, err error, stack []byte) {
			logger.Error("panic recovered",
				zap.String("request_id", GetRequestID(r.Context())),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Error(err),
				zap.ByteString("stack", stack),
			)
		},
	})
}

// RecoveryWithConfig creates a recovery middleware with custom configuration
func RecoveryWithConfig(config RecoveryConfig) Middleware {
	respond := config.ResponseHandler
	if respond == nil {
		respond = defaultRecoveryResponse
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				// Let net/http abort the connection as it intends to.
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				var stack []byte
				if config.EnableStackTrace {
					stack = debug.Stack()
				}

				if config.Logger != nil {
					config.Logger(r, panicError(rec), stack)
				}

				respond(w, r, rec)
			}()

			next.ServeHTTP(w, r)
		})
	}
}

func defaultRecoveryResponse(w http.ResponseWriter, _ *http.Request, _ interface{}) {
	response.RenderInternalError(w)
}

// panicError converts a recovered value to an error.
func panicError(v interface{}) error {
	if err, ok := v.(error); ok {
		return err
	}
	return fmt.Errorf("panic: %v", v)
}
