// Package handler exposes the aCOMPUTE API as a single serverless
// function, for platforms that route every path to one entry point.
package handler

import (
	"fmt"
	"net/http"
	"sync"

	"go.uber.org/zap"

	"github.com/acompute/acompute/internal/api"
	"github.com/acompute/acompute/internal/config"
	"github.com/acompute/acompute/internal/resource"
	"github.com/acompute/acompute/internal/web/auth"
	"github.com/acompute/acompute/internal/web/response"
)

var (
	setupOnce sync.Once
	router    http.Handler
	setupErr  error
)

// Handler is the serverless entry point. The router is built once,
// on the first request, from the environment.
func Handler(w http.ResponseWriter, r *http.Request) {
	setupOnce.Do(setup)
	if setupErr != nil {
		response.RenderInternalError(w, fmt.Errorf("service initialization failed: %v", setupErr))
		return
	}
	router.ServeHTTP(w, r)
}

func setup() {
	cfg, err := config.Load()
	if err != nil {
		setupErr = err
		return
	}

	logger, err := zap.NewProduction()
	if err != nil {
		setupErr = err
		return
	}

	var store resource.ObjectStore
	if cfg.Storage.Enabled {
		s3, err := resource.NewS3Store(resource.S3Config{
			Endpoint:  cfg.Storage.Endpoint,
			Bucket:    cfg.Storage.Bucket,
			AccessKey: cfg.Storage.AccessKey,
			SecretKey: cfg.Storage.SecretKey,
			Region:    cfg.Storage.Region,
		})
		if err != nil {
			logger.Warn("object storage disabled", zap.Error(err))
		} else {
			store = s3
		}
	}

	resolver := resource.NewResolver(
		resource.Paths{Dir: cfg.Data.Dir, Prefix: resource.DefaultBase},
		store,
		logger,
	)

	router = api.NewRouter(api.RouterConfig{
		Resolver:   resolver,
		Verifier:   auth.NewKeyVerifier(cfg.Auth.APIKey),
		Logger:     logger,
		Deployment: "Vercel Production",
		// The platform enforces its own invocation deadline, so no
		// timeout middleware here.
		RequestTimeout: 0,
		StorageActive:  store != nil,
	})
}
