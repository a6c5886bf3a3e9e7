package config

import (
	"os"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	// Test loading with no config file (should use defaults)
	tmpDir := t.TempDir()
	oldWd, _ := os.Getwd()
	os.Chdir(tmpDir)
	defer os.Chdir(oldWd)

	// Empty values read as unset, so ambient variables cannot leak in.
	for _, env := range []string{"PORT", "USE_TIGRIS", "API_KEY", "DATA_DIR"} {
		t.Setenv(env, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error loading defaults, got %v", err)
	}

	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("expected default host '0.0.0.0', got %s", cfg.Server.Host)
	}

	if cfg.Server.Port != 8000 {
		t.Errorf("expected default port 8000, got %d", cfg.Server.Port)
	}

	if cfg.Server.RequestTimeout != 30*time.Second {
		t.Errorf("expected default request timeout 30s, got %v", cfg.Server.RequestTimeout)
	}

	if cfg.Storage.Enabled {
		t.Error("expected storage to be disabled by default")
	}

	if cfg.Storage.Bucket != "acompute" {
		t.Errorf("expected default bucket 'acompute', got %s", cfg.Storage.Bucket)
	}

	if cfg.Data.Dir != "01_COMPUTE_data" {
		t.Errorf("expected default data dir '01_COMPUTE_data', got %s", cfg.Data.Dir)
	}

	if cfg.Auth.APIKey != "" {
		t.Errorf("expected no API key by default, got %s", cfg.Auth.APIKey)
	}
}

func TestLoadWithConfigFile(t *testing.T) {
	// Create temporary directory with config file
	tmpDir := t.TempDir()
	oldWd, _ := os.Getwd()
	os.Chdir(tmpDir)
	defer os.Chdir(oldWd)

	for _, env := range []string{"PORT", "USE_TIGRIS", "TIGRIS_BUCKET_NAME", "TIGRIS_ENDPOINT"} {
		t.Setenv(env, "")
	}

	// Write config file
	configContent := `
server:
  host: 127.0.0.1
  port: 9090
  request_timeout: 5s
storage:
  enabled: true
  bucket: survey-data
  endpoint: https://fly.storage.tigris.dev
  access_key: tid_access
  secret_key: tsec_secret
data:
  dir: testdata
`
	os.WriteFile("acompute.yml", []byte(configContent), 0644)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error loading config, got %v", err)
	}

	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("expected host '127.0.0.1', got %s", cfg.Server.Host)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Server.Port)
	}

	if cfg.Server.RequestTimeout != 5*time.Second {
		t.Errorf("expected request timeout 5s, got %v", cfg.Server.RequestTimeout)
	}

	if !cfg.Storage.Enabled {
		t.Error("expected storage to be enabled")
	}

	if cfg.Storage.Bucket != "survey-data" {
		t.Errorf("expected bucket 'survey-data', got %s", cfg.Storage.Bucket)
	}

	if cfg.Data.Dir != "testdata" {
		t.Errorf("expected data dir 'testdata', got %s", cfg.Data.Dir)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	tmpDir := t.TempDir()
	oldWd, _ := os.Getwd()
	os.Chdir(tmpDir)
	defer os.Chdir(oldWd)

	t.Setenv("PORT", "3030")
	t.Setenv("USE_TIGRIS", "true")
	t.Setenv("TIGRIS_BUCKET_NAME", "env-bucket")
	t.Setenv("TIGRIS_ENDPOINT", "https://fly.storage.tigris.dev")
	t.Setenv("TIGRIS_ACCESS_KEY", "tid_env")
	t.Setenv("TIGRIS_SECRET_KEY", "tsec_env")
	t.Setenv("API_KEY", "secret-key")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error loading from environment, got %v", err)
	}

	if cfg.Server.Port != 3030 {
		t.Errorf("expected PORT to override port, got %d", cfg.Server.Port)
	}

	if !cfg.Storage.Enabled {
		t.Error("expected USE_TIGRIS=true to enable storage")
	}

	if cfg.Storage.Bucket != "env-bucket" {
		t.Errorf("expected bucket 'env-bucket', got %s", cfg.Storage.Bucket)
	}

	if cfg.Storage.AccessKey != "tid_env" || cfg.Storage.SecretKey != "tsec_env" {
		t.Error("expected TIGRIS credentials from environment")
	}

	if cfg.Auth.APIKey != "secret-key" {
		t.Errorf("expected API key from environment, got %s", cfg.Auth.APIKey)
	}
}

func TestLoadStorageValidation(t *testing.T) {
	tmpDir := t.TempDir()
	oldWd, _ := os.Getwd()
	os.Chdir(tmpDir)
	defer os.Chdir(oldWd)

	// Enabled storage without endpoint or credentials must fail.
	t.Setenv("USE_TIGRIS", "true")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for enabled storage without endpoint")
	}
}

func TestLoadInvalidPort(t *testing.T) {
	tmpDir := t.TempDir()
	oldWd, _ := os.Getwd()
	os.Chdir(tmpDir)
	defer os.Chdir(oldWd)

	t.Setenv("PORT", "99999")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for out-of-range port")
	}
}

func TestServerAddress(t *testing.T) {
	s := ServerConfig{Host: "0.0.0.0", Port: 8000}
	if got := s.Address(); got != "0.0.0.0:8000" {
		t.Errorf("expected address '0.0.0.0:8000', got %s", got)
	}
}
