package config

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/giygas/ceassist-api/catalog"
)

func cleanupEnv() {
	for _, key := range GetEnvVars() {
		_ = os.Unsetenv(key)
	}
}

func TestLoadValidConfig(t *testing.T) {
	cleanupEnv()
	_ = os.Setenv("PORT", "8002")
	_ = os.Setenv("ADDRESS", "127.0.0.1")
	_ = os.Setenv("ENV", "prod")
	_ = os.Setenv("LOG_LEVEL", "debug")
	_ = os.Setenv("CATALOG_ENCODING", "sjis")
	_ = os.Setenv("SESSION_TTL", "2h")
	_ = os.Setenv("SESSION_SWEEP_INTERVAL", "5m")
	_ = os.Setenv("MAX_SESSIONS", "50")
	_ = os.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example,")
	defer cleanupEnv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if cfg.Port != "8002" {
		t.Errorf("Expected port 8002, got %s", cfg.Port)
	}
	if cfg.Env != EnvProduction {
		t.Errorf("Expected env prod, got %s", cfg.Env)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("Expected log level debug, got %s", cfg.LogLevel)
	}
	if cfg.CatalogEncoding != catalog.ShiftJIS {
		t.Errorf("Expected shift_jis encoding, got %s", cfg.CatalogEncoding)
	}
	if cfg.SessionTTL != 2*time.Hour || cfg.SessionSweepInterval != 5*time.Minute {
		t.Errorf("Expected 2h/5m session settings, got %s/%s", cfg.SessionTTL, cfg.SessionSweepInterval)
	}
	if cfg.MaxSessions != 50 {
		t.Errorf("Expected 50 max sessions, got %d", cfg.MaxSessions)
	}
	if !slices.Equal(cfg.AllowedOrigins, []string{"https://a.example", "https://b.example"}) {
		t.Errorf("Unexpected origins: %v", cfg.AllowedOrigins)
	}
}

func TestLoadWithDefaults(t *testing.T) {
	cleanupEnv()
	defer cleanupEnv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if cfg.Port != "8000" {
		t.Errorf("Expected default port 8000, got %s", cfg.Port)
	}
	if cfg.Address != "127.0.0.1" {
		t.Errorf("Expected default address 127.0.0.1, got %s", cfg.Address)
	}
	if cfg.Env != EnvDevelopment {
		t.Errorf("Expected default env dev, got %s", cfg.Env)
	}
	if cfg.CatalogEncoding != catalog.UTF8 || cfg.CatalogDir != "" {
		t.Errorf("Expected embedded utf-8 catalog, got %q in %q", cfg.CatalogEncoding, cfg.CatalogDir)
	}
	if cfg.SessionTTL != 30*time.Minute || cfg.SessionSweepInterval != time.Minute {
		t.Errorf("Unexpected session defaults: %s/%s", cfg.SessionTTL, cfg.SessionSweepInterval)
	}
	if !slices.Equal(cfg.AllowedOrigins, []string{"*"}) {
		t.Errorf("Expected wildcard origin, got %v", cfg.AllowedOrigins)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	notADir := filepath.Join(t.TempDir(), "file.yaml")
	if err := os.WriteFile(notADir, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	testCases := []struct {
		name  string
		key   string
		value string
	}{
		{"port not a number", "PORT", "abc"},
		{"privileged port", "PORT", "80"},
		{"port out of range", "PORT", "70000"},
		{"public address", "ADDRESS", "8.8.8.8"},
		{"bad address", "ADDRESS", "not-an-ip"},
		{"bad env", "ENV", "qa"},
		{"bad log level", "LOG_LEVEL", "verbose"},
		{"bad encoding", "CATALOG_ENCODING", "euc-jp"},
		{"missing catalog dir", "CATALOG_DIR", filepath.Join(t.TempDir(), "missing")},
		{"catalog dir is a file", "CATALOG_DIR", notADir},
		{"ttl too short", "SESSION_TTL", "10s"},
		{"negative max sessions", "MAX_SESSIONS", "-1"},
		{"retention too long", "LOG_RETENTION_WEEKS", "60"},
		{"log file too small", "MAX_LOG_FILE_SIZE", "1000"},
		{"origins only commas", "ALLOWED_ORIGINS", " , ,"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cleanupEnv()
			defer cleanupEnv()
			_ = os.Setenv(tc.key, tc.value)

			if _, err := Load(); err == nil {
				t.Errorf("Expected error for %s=%s", tc.key, tc.value)
			}
		})
	}
}

func TestSweepIntervalLongerThanTTL(t *testing.T) {
	cleanupEnv()
	defer cleanupEnv()
	_ = os.Setenv("SESSION_TTL", "5m")
	_ = os.Setenv("SESSION_SWEEP_INTERVAL", "10m")

	if _, err := Load(); err == nil {
		t.Error("Expected error when the sweep interval exceeds the TTL")
	}
}

func TestLoadEnvFile(t *testing.T) {
	cleanupEnv()
	defer cleanupEnv()

	if err := LoadEnvFile(filepath.Join(t.TempDir(), "absent.env")); err != nil {
		t.Errorf("Expected a missing file to be ignored, got %v", err)
	}

	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("PORT=9100\nMAX_SESSIONS=7\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := LoadEnvFile(path); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if cfg.Port != "9100" || cfg.MaxSessions != 7 {
		t.Errorf("Expected values from the env file, got port=%s max=%d", cfg.Port, cfg.MaxSessions)
	}
}

func TestParseEnvironment(t *testing.T) {
	tests := []struct {
		input    string
		expected Environment
		hasError bool
	}{
		{"dev", EnvDevelopment, false},
		{"development", EnvDevelopment, false},
		{"staging", EnvStaging, false},
		{"prod", EnvProduction, false},
		{"PRODUCTION", EnvProduction, false},
		{"test", EnvTest, false},
		{"invalid", EnvDevelopment, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			env, err := ParseEnvironment(tt.input)
			if tt.hasError {
				if err == nil {
					t.Errorf("Expected error for %s, got none", tt.input)
				}
			} else {
				if err != nil {
					t.Errorf("Unexpected error for %s: %v", tt.input, err)
				}
				if env != tt.expected {
					t.Errorf("Expected %v, got %v", tt.expected, env)
				}
			}
		})
	}
}

func TestEnvironmentString(t *testing.T) {
	tests := []struct {
		env      Environment
		expected string
	}{
		{EnvDevelopment, "dev"},
		{EnvStaging, "staging"},
		{EnvProduction, "prod"},
		{EnvTest, "test"},
	}

	for _, tt := range tests {
		if got := tt.env.String(); got != tt.expected {
			t.Errorf("Expected %s, got %s", tt.expected, got)
		}
	}
}
