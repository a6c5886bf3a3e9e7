package middleware

import (
	"net/http"

	"github.com/acompute/acompute/internal/web/auth"
	"github.com/acompute/acompute/internal/web/response"
)

// APIKeyConfig holds configuration for the API key middleware
type APIKeyConfig struct {
	// Verifier validates presented keys. A disabled verifier lets
	// every request through.
	Verifier auth.Verifier
	// HeaderName is the primary header carrying the key
	HeaderName string
	// SkipPaths is a list of paths that never require a key
	SkipPaths []string
}

// APIKey creates a middleware that requires a valid API key on every
// request except the listed public paths.
func APIKey(verifier auth.Verifier, skipPaths ...string) Middleware {
	return APIKeyWithConfig(APIKeyConfig{
		Verifier:   verifier,
		HeaderName: "X-API-Key",
		SkipPaths:  skipPaths,
	})
}

// APIKeyWithConfig creates an API key middleware with custom configuration
func APIKeyWithConfig(config APIKeyConfig) Middleware {
	headerName := config.HeaderName
	if headerName == "" {
		headerName = "X-API-Key"
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if config.Verifier == nil || !config.Verifier.Enabled() {
				next.ServeHTTP(w, r)
				return
			}

			for _, skipPath := range config.SkipPaths {
				if r.URL.Path == skipPath {
					next.ServeHTTP(w, r)
					return
				}
			}

			// Accept the key from the dedicated header or, for older
			// clients, the raw Authorization header.
			key := r.Header.Get(headerName)
			if key == "" {
				key = r.Header.Get("Authorization")
			}

			if !config.Verifier.Verify(key) {
				response.RenderUnauthorized(w, "Invalid API key")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
