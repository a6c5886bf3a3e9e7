package main

import (
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/acompute/acompute/internal/api"
	"github.com/acompute/acompute/internal/config"
	"github.com/acompute/acompute/internal/resource"
	"github.com/acompute/acompute/internal/web/auth"
	"github.com/acompute/acompute/internal/web/server"
)

var servePort int

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config)")
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long:  "Load the configuration and serve the aCOMPUTE API until interrupted",
	RunE: func(cmd *cobra.Command, args []string) error {
		successColor := color.New(color.FgGreen, color.Bold)
		infoColor := color.New(color.FgCyan)
		warningColor := color.New(color.FgYellow)

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if servePort != 0 {
			cfg.Server.Port = servePort
		}

		// The remote tier is optional: a client that cannot be built
		// downgrades the service to local files rather than stopping it.
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
				warningColor.Printf("Warning: could not initialize object storage: %v\n", err)
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

		verifier := auth.NewKeyVerifier(cfg.Auth.APIKey)

		handler := api.NewRouter(api.RouterConfig{
			Resolver:       resolver,
			Verifier:       verifier,
			Logger:         logger,
			Deployment:     "standalone",
			RequestTimeout: cfg.Server.RequestTimeout,
			StorageActive:  store != nil,
		})

		srvConfig := server.DefaultConfig(handler)
		srvConfig.Address = cfg.Server.Address()
		srvConfig.ReadTimeout = cfg.Server.ReadTimeout
		srvConfig.WriteTimeout = cfg.Server.WriteTimeout
		srvConfig.IdleTimeout = cfg.Server.IdleTimeout

		srv, err := server.New(srvConfig)
		if err != nil {
			return err
		}

		successColor.Printf("aCOMPUTE API %s\n", api.APIVersion)
		infoColor.Printf("Listening on http://%s\n", srvConfig.Address)
		if store != nil {
			infoColor.Printf("Storage: %s (bucket %s)\n", cfg.Storage.Endpoint, cfg.Storage.Bucket)
		} else {
			infoColor.Printf("Storage: local files only (%s)\n", cfg.Data.Dir)
		}
		if verifier.Enabled() {
			infoColor.Println("Auth: API key verification active")
		} else {
			warningColor.Println("Auth: disabled (no API_KEY configured)")
		}

		return server.NewGracefulShutdown(srv, &server.ShutdownConfig{
			Timeout: 30 * time.Second,
			Logger:  logger,
		}).Start()
	},
}
