// Package api implements the aCOMPUTE HTTP endpoints: the public
// service metadata routes and the key-protected data routes backed by
// the resource resolver.
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/acompute/acompute/internal/catalog"
	"github.com/acompute/acompute/internal/resource"
	"github.com/acompute/acompute/internal/web/response"
)

// APIVersion is the version reported by the metadata endpoints.
const APIVersion = "2.0.0"

// defaultSource is used when a request does not name a data source.
const defaultSource = "gss"

// Handlers provides the HTTP handlers for the API.
type Handlers struct {
	resolver      *resource.Resolver
	logger        *zap.Logger
	deployment    string
	authActive    bool
	storageActive bool
}

// HandlersConfig holds the dependencies and static facts the handlers
// report.
type HandlersConfig struct {
	// Resolver locates dictionaries, category files, and sources.
	Resolver *resource.Resolver
	// Logger receives handler-level diagnostics.
	Logger *zap.Logger
	// Deployment names the deployment shape in the root payload.
	Deployment string
	// AuthActive reports whether API key verification is on.
	AuthActive bool
	// StorageActive reports whether the remote storage tier is on.
	StorageActive bool
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(config HandlersConfig) *Handlers {
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	deployment := config.Deployment
	if deployment == "" {
		deployment = "standalone"
	}

	return &Handlers{
		resolver:      config.Resolver,
		logger:        logger,
		deployment:    deployment,
		authActive:    config.AuthActive,
		storageActive: config.StorageActive,
	}
}

// Root serves the API information document.
func (h *Handlers) Root(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, map[string]interface{}{
		"message":         "aCOMPUTE Statistical Analysis API",
		"version":         APIVersion,
		"status":          "running",
		"public_endpoint": true,
		"deployment":      h.deployment,
		"endpoints": map[string]string{
			"POST /analyze":   "Perform statistical analysis",
			"GET /dictionary": "Get variable dictionary",
			"GET /categories": "Get variable categories",
			"GET /sources":    "Get available data sources",
			"GET /health":     "Health check",
			"GET /ping":       "Simple ping test",
		},
	})
}

// Ping serves a minimal liveness probe.
func (h *Handlers) Ping(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, map[string]string{
		"message":   "pong",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"status":    "ok",
	})
}

// Health reports service health along with which optional subsystems
// are active.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	authentication := "No authentication"
	if h.authActive {
		authentication = "API key verification active"
	}

	storage := "Local files only"
	if h.storageActive {
		storage = "Tigris enabled"
	}

	response.JSON(w, http.StatusOK, map[string]interface{}{
		"status":          "healthy",
		"message":         "aCOMPUTE API is running",
		"version":         APIVersion,
		"public_endpoint": true,
		"authentication":  authentication,
		"storage":         storage,
	})
}

// Dictionary serves the variable dictionary for a data source. The
// stored document is passed through byte-for-byte.
func (h *Handlers) Dictionary(w http.ResponseWriter, r *http.Request) {
	source := sourceParam(r)

	loc, err := h.resolver.Dictionary(r.Context(), source)
	if err != nil {
		if resource.IsNotFound(err) {
			response.RenderNotFound(w, fmt.Sprintf("Dictionary file not found for source: %s", source))
			return
		}
		h.logger.Error("dictionary resolution failed", zap.String("source", source), zap.Error(err))
		response.RenderResourceError(w, err)
		return
	}

	response.Raw(w, http.StatusOK, loc.Data)
}

// Categories serves the flattened category-to-variables mapping for a
// data source. When no category file exists anywhere, the built-in
// default taxonomy is served instead.
func (h *Handlers) Categories(w http.ResponseWriter, r *http.Request) {
	source := sourceParam(r)

	loc, err := h.resolver.Categories(r.Context(), source, func() ([]byte, error) {
		return json.Marshal(catalog.DefaultCategories())
	})
	if err != nil {
		h.logger.Error("categories resolution failed", zap.String("source", source), zap.Error(err))
		response.RenderResourceError(w, err)
		return
	}

	var tree catalog.Tree
	if err := json.Unmarshal(loc.Data, &tree); err != nil {
		h.logger.Error("category structure rejected", zap.String("source", source), zap.Error(err))
		response.RenderInternalError(w, fmt.Errorf("invalid category structure for source %s: %v", source, err))
		return
	}

	response.JSON(w, http.StatusOK, catalog.Flatten(tree))
}

// Sources serves the list of available data sources.
func (h *Handlers) Sources(w http.ResponseWriter, r *http.Request) {
	sources, err := h.resolver.ListSources(r.Context())
	if err != nil {
		h.logger.Error("source listing failed", zap.Error(err))
		response.RenderInternalError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, map[string][]string{"sources": sources})
}

// Analyze validates an analysis request and echoes it back with
// placeholder results. The statistical engine behind it is not
// implemented yet.
func (h *Handlers) Analyze(w http.ResponseWriter, r *http.Request) {
	var req AnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.RenderBadRequest(w, "request body must be valid JSON")
		return
	}

	if fields := req.Validate(); fields != nil {
		response.RenderValidationError(w, fields)
		return
	}
	req.normalize()

	response.JSON(w, http.StatusOK, AnalysisResponse{
		Message:           "Analysis completed successfully",
		Datasource:        req.Datasource,
		DependentVariable: req.DependentVariable,
		XVars:             req.XVars,
		Interactions:      req.Interactions,
		ShowFlags:         req.ShowFlags,
		Results: AnalysisResults{
			ModelSummary:  "Statistical analysis results will be implemented here",
			Coefficients:  map[string]float64{},
			RSquared:      0,
			NObservations: 0,
			Status:        "analysis engine pending implementation",
		},
	})
}

// sourceParam reads the source query parameter, defaulting to gss.
func sourceParam(r *http.Request) string {
	if source := r.URL.Query().Get("source"); source != "" {
		return source
	}
	return defaultSource
}
