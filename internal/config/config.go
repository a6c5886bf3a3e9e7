// Package config loads the service configuration from acompute.yaml
// and the environment. Environment variables keep the names the
// deployed service is driven by (PORT, USE_TIGRIS, TIGRIS_*, API_KEY),
// so the same settings work for the standalone server and the
// serverless handler.
package config

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/spf13/viper"
)

// Config represents the aCOMPUTE service configuration.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Storage StorageConfig `mapstructure:"storage"`
	Auth    AuthConfig    `mapstructure:"auth"`
	Data    DataConfig    `mapstructure:"data"`
}

// ServerConfig represents HTTP server configuration.
type ServerConfig struct {
	Host           string        `mapstructure:"host"`
	Port           int           `mapstructure:"port"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	IdleTimeout    time.Duration `mapstructure:"idle_timeout"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// Address returns the host:port the server listens on.
func (s ServerConfig) Address() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// StorageConfig represents the optional S3-compatible object storage
// tier. When Enabled is false the service resolves documents from the
// local data directory and built-in fallbacks only.
type StorageConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Region    string `mapstructure:"region"`
}

// AuthConfig represents API key authentication. An empty key disables
// the check entirely.
type AuthConfig struct {
	APIKey string `mapstructure:"api_key"`
}

// DataConfig represents the local data directory layout.
type DataConfig struct {
	Dir string `mapstructure:"dir"`
}

// Load loads the configuration from acompute.yml or acompute.yaml,
// falling back to defaults and environment variables.
func Load() (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 15*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("server.request_timeout", 30*time.Second)
	v.SetDefault("storage.enabled", false)
	v.SetDefault("storage.bucket", "acompute")
	// Tigris-style endpoints sign against the "auto" region.
	v.SetDefault("storage.region", "auto")
	v.SetDefault("data.dir", "01_COMPUTE_data")

	// Set config name and paths
	v.SetConfigName("acompute")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Enable environment variable support. The explicit bindings carry
	// the names the hosted deployment already uses.
	v.AutomaticEnv()
	bindings := map[string]string{
		"server.port":        "PORT",
		"storage.enabled":    "USE_TIGRIS",
		"storage.bucket":     "TIGRIS_BUCKET_NAME",
		"storage.endpoint":   "TIGRIS_ENDPOINT",
		"storage.access_key": "TIGRIS_ACCESS_KEY",
		"storage.secret_key": "TIGRIS_SECRET_KEY",
		"storage.region":     "TIGRIS_REGION",
		"auth.api_key":       "API_KEY",
		"data.dir":           "DATA_DIR",
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found - use defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// validateConfig validates the configuration
func validateConfig(cfg *Config) error {
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got: %d", cfg.Server.Port)
	}
	if cfg.Data.Dir == "" {
		return fmt.Errorf("data.dir must not be empty")
	}
	if cfg.Storage.Enabled {
		if cfg.Storage.Endpoint == "" {
			return fmt.Errorf("storage.endpoint is required when storage is enabled")
		}
		if cfg.Storage.Bucket == "" {
			return fmt.Errorf("storage.bucket is required when storage is enabled")
		}
		if cfg.Storage.AccessKey == "" || cfg.Storage.SecretKey == "" {
			return fmt.Errorf("storage credentials are required when storage is enabled")
		}
	}
	return nil
}
