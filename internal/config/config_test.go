// ABOUTME: Tests for configuration loading and parsing
// ABOUTME: Covers YAML and TOML loading, env var expansion, defaults and validation

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	return path
}

func TestLoad_ValidConfig(t *testing.T) {
	configPath := writeConfig(t, "config.yaml", `
server:
  http_addr: "0.0.0.0:8080"
  base_path: "/api/"
  read_header_timeout: "3s"
  rate_limit: 5

database:
  path: "./test.db"

auth:
  jwt_secret: "`+testSecret+`"
  token_ttl: "24h"
  bcrypt_cost: 12
  allow_signup: false

logging:
  level: "debug"
  format: "json"

metrics:
  enabled: true
`)

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.HTTPAddr != "0.0.0.0:8080" {
		t.Errorf("Server.HTTPAddr = %q, want %q", cfg.Server.HTTPAddr, "0.0.0.0:8080")
	}
	if cfg.Server.BasePath != "/api" {
		t.Errorf("Server.BasePath = %q, want %q", cfg.Server.BasePath, "/api")
	}
	if cfg.Server.ReadHeaderTimeout != 3*time.Second {
		t.Errorf("Server.ReadHeaderTimeout = %v, want 3s", cfg.Server.ReadHeaderTimeout)
	}
	if cfg.Server.ShutdownTimeout != DefaultShutdownTimeout {
		t.Errorf("Server.ShutdownTimeout = %v, want %v", cfg.Server.ShutdownTimeout, DefaultShutdownTimeout)
	}
	if cfg.Server.RateBurst != 10 {
		t.Errorf("Server.RateBurst = %d, want 10", cfg.Server.RateBurst)
	}
	if cfg.Database.Path != "./test.db" {
		t.Errorf("Database.Path = %q, want %q", cfg.Database.Path, "./test.db")
	}
	if cfg.Auth.TokenTTL != 24*time.Hour {
		t.Errorf("Auth.TokenTTL = %v, want 24h", cfg.Auth.TokenTTL)
	}
	if cfg.Auth.BcryptCost != 12 {
		t.Errorf("Auth.BcryptCost = %d, want 12", cfg.Auth.BcryptCost)
	}
	if cfg.Auth.SignupAllowed() {
		t.Error("Auth.SignupAllowed() = true, want false")
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("Logging.Format = %q, want json", cfg.Logging.Format)
	}
	if cfg.Metrics.Path != DefaultMetricsPath {
		t.Errorf("Metrics.Path = %q, want %q", cfg.Metrics.Path, DefaultMetricsPath)
	}
}

func TestLoad_Defaults(t *testing.T) {
	configPath := writeConfig(t, "config.yaml", `
database:
  path: "./test.db"
auth:
  jwt_secret: "`+testSecret+`"
`)

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.HTTPAddr != DefaultHTTPAddr {
		t.Errorf("Server.HTTPAddr = %q, want %q", cfg.Server.HTTPAddr, DefaultHTTPAddr)
	}
	if cfg.Auth.TokenTTL != DefaultTokenTTL {
		t.Errorf("Auth.TokenTTL = %v, want %v", cfg.Auth.TokenTTL, DefaultTokenTTL)
	}
	if !cfg.Auth.SignupAllowed() {
		t.Error("Auth.SignupAllowed() = false, want true")
	}
	if cfg.Server.RateLimit != 0 || cfg.Server.RateBurst != 0 {
		t.Errorf("rate limiting should be off by default, got %v/%d", cfg.Server.RateLimit, cfg.Server.RateBurst)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "text" {
		t.Errorf("Logging = %+v, want info/text", cfg.Logging)
	}
}

func TestLoad_TOML(t *testing.T) {
	configPath := writeConfig(t, "config.toml", `
[server]
http_addr = "127.0.0.1:9000"
shutdown_timeout = "2s"

[database]
path = "./pantry.db"

[auth]
jwt_secret = "`+testSecret+`"
`)

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.HTTPAddr != "127.0.0.1:9000" {
		t.Errorf("Server.HTTPAddr = %q, want %q", cfg.Server.HTTPAddr, "127.0.0.1:9000")
	}
	if cfg.Server.ShutdownTimeout != 2*time.Second {
		t.Errorf("Server.ShutdownTimeout = %v, want 2s", cfg.Server.ShutdownTimeout)
	}
	if cfg.Database.Path != "./pantry.db" {
		t.Errorf("Database.Path = %q, want %q", cfg.Database.Path, "./pantry.db")
	}
}

func TestLoad_EnvExpansion(t *testing.T) {
	t.Setenv("TEST_PANTRY_SECRET", testSecret)
	t.Setenv("PANTRY_DB_PATH", "/tmp/override.db")

	configPath := writeConfig(t, "config.yaml", `
database:
  path: "./ignored.db"
auth:
  jwt_secret: "${TEST_PANTRY_SECRET}"
`)

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Auth.JWTSecret != testSecret {
		t.Errorf("Auth.JWTSecret = %q, want expanded value", cfg.Auth.JWTSecret)
	}
	if cfg.Database.Path != "/tmp/override.db" {
		t.Errorf("Database.Path = %q, want PANTRY_DB_PATH override", cfg.Database.Path)
	}
}

func TestExpandEnvVars_Unset(t *testing.T) {
	got := expandEnvVars("a=${PANTRY_TEST_DEFINITELY_UNSET}b")
	if got != "a=b" {
		t.Errorf("expandEnvVars() = %q, want %q", got, "a=b")
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "missing database path",
			content: "auth:\n  jwt_secret: \"" + testSecret + "\"\n",
			wantErr: "database.path is required",
		},
		{
			name:    "short secret",
			content: "database:\n  path: x.db\nauth:\n  jwt_secret: short\n",
			wantErr: "jwt_secret must be at least",
		},
		{
			name:    "bad duration",
			content: "database:\n  path: x.db\nauth:\n  jwt_secret: \"" + testSecret + "\"\n  token_ttl: forever\n",
			wantErr: "token_ttl",
		},
		{
			name:    "tailscale without hostname",
			content: "tailscale:\n  enabled: true\ndatabase:\n  path: x.db\nauth:\n  jwt_secret: \"" + testSecret + "\"\n",
			wantErr: "tailscale.hostname is required",
		},
		{
			name:    "relative base path",
			content: "server:\n  base_path: api\ndatabase:\n  path: x.db\nauth:\n  jwt_secret: \"" + testSecret + "\"\n",
			wantErr: "base_path must start with /",
		},
		{
			name:    "bad log format",
			content: "database:\n  path: x.db\nauth:\n  jwt_secret: \"" + testSecret + "\"\nlogging:\n  format: xml\n",
			wantErr: "logging.format",
		},
		{
			name:    "invalid yaml",
			content: "server: [unclosed",
			wantErr: "parsing config file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, "config.yaml", tt.content))
			if err == nil {
				t.Fatal("Load() should have returned an error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Load() error = %v, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("Load() should fail for a missing file")
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("PANTRY_CONFIG", "/etc/pantry.yaml")
	if got := DefaultPath(); got != "/etc/pantry.yaml" {
		t.Errorf("DefaultPath() = %q, want PANTRY_CONFIG", got)
	}

	t.Setenv("PANTRY_CONFIG", "")
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	if got := DefaultPath(); got != filepath.Join("/xdg", "pantry", "config.yaml") {
		t.Errorf("DefaultPath() = %q, want XDG location", got)
	}
}
