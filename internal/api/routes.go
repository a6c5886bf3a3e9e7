package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/acompute/acompute/internal/resource"
	"github.com/acompute/acompute/internal/web/auth"
	"github.com/acompute/acompute/internal/web/middleware"
	"github.com/acompute/acompute/internal/web/response"
)

// RouterConfig holds everything needed to assemble the HTTP surface.
type RouterConfig struct {
	Resolver *resource.Resolver
	Verifier auth.Verifier
	Logger   *zap.Logger
	// Deployment names the deployment shape in the root payload.
	Deployment string
	// RequestTimeout bounds each request. Zero disables the timeout
	// middleware, which the serverless platform handles itself.
	RequestTimeout time.Duration
	// StorageActive is reported by the health endpoint.
	StorageActive bool
}

// NewRouter assembles the routed handler with the full middleware
// stack applied.
func NewRouter(config RouterConfig) http.Handler {
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	handlers := NewHandlers(HandlersConfig{
		Resolver:      config.Resolver,
		Logger:        logger,
		Deployment:    config.Deployment,
		AuthActive:    config.Verifier != nil && config.Verifier.Enabled(),
		StorageActive: config.StorageActive,
	})

	router := chi.NewRouter()
	SetupRoutes(router, handlers, config.Verifier)

	chain := middleware.NewChain(
		middleware.RequestID(),
		middleware.Logging(logger),
		middleware.Recovery(logger),
		middleware.CORS(),
	)
	if config.RequestTimeout > 0 {
		chain.Use(middleware.Timeout(config.RequestTimeout))
	}

	return chain.Then(router)
}

// SetupRoutes registers the API routes on the router. The metadata
// endpoints stay public; the data endpoints sit behind the API key
// check.
func SetupRoutes(router chi.Router, handlers *Handlers, verifier auth.Verifier) {
	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.RenderNotFound(w, fmt.Sprintf("no route for %s", r.URL.Path))
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		response.RenderMethodNotAllowed(w)
	})

	router.Get("/", handlers.Root)
	router.Get("/ping", handlers.Ping)
	router.Get("/health", handlers.Health)

	router.Group(func(r chi.Router) {
		r.Use(middleware.APIKey(verifier))

		r.Get("/dictionary", handlers.Dictionary)
		r.Get("/categories", handlers.Categories)
		r.Get("/sources", handlers.Sources)
		r.Post("/analyze", handlers.Analyze)
	})
}
