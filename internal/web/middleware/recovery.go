package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"go.uber.org/zap"

	"github.com/acompute/acompute/internal/web/response"
)

// RecoveryConfig holds configuration for the recovery middleware
type RecoveryConfig struct {
	// Logger receives the recovered panic and stack trace.
	Logger *zap.Logger
	// EnableStackTrace determines whether to capture stack traces
	EnableStackTrace bool
}

// Recovery creates a middleware that recovers from handler panics,
// logs them, and responds with a JSON 500.
func Recovery(logger *zap.Logger) Middleware {
	return RecoveryWithConfig(RecoveryConfig{
		Logger:           logger,
		EnableStackTrace: true,
	})
}

// RecoveryWithConfig creates a recovery middleware with custom configuration
func RecoveryWithConfig(config RecoveryConfig) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if config.Logger != nil {
						fields := []zap.Field{
							zap.Any("panic", rec),
							zap.String("request_id", GetRequestID(r.Context())),
							zap.String("method", r.Method),
							zap.String("path", r.URL.Path),
						}
						if config.EnableStackTrace {
							fields = append(fields, zap.ByteString("stack", debug.Stack()))
						}
						config.Logger.Error("panic recovered", fields...)
					}

					// The panic value never reaches the client.
					response.RenderInternalError(w, fmt.Errorf("an unexpected error occurred"))
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
