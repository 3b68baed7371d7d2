package config

import (
	"os"
	"path/filepath"
	"testing"
)

// ── Load / Defaults ──

func TestLoadReturnsDefaults(t *testing.T) {
	// Unset any env vars that would interfere
	envVars := []string{
		"CRYPTOBUDDY_PROVIDER_API_KEY", "COINGECKO_API_KEY",
		"CRYPTOBUDDY_PORTFOLIO_HOLDINGS",
	}
	for _, e := range envVars {
		os.Unsetenv(e)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	// Provider defaults
	if cfg.Provider.BaseURL != "https://api.coingecko.com/api/v3" {
		t.Errorf("Provider.BaseURL: got %q", cfg.Provider.BaseURL)
	}
	if cfg.Provider.APIKey != "" {
		t.Errorf("Provider.APIKey should default to empty, got %q", cfg.Provider.APIKey)
	}
	if cfg.Provider.CacheTTLSec != 60 {
		t.Errorf("Provider.CacheTTLSec: got %d, want 60", cfg.Provider.CacheTTLSec)
	}
	if cfg.Provider.ChartTTLSec != 300 {
		t.Errorf("Provider.ChartTTLSec: got %d, want 300", cfg.Provider.ChartTTLSec)
	}
	if cfg.Provider.RatePerSecond != 5 {
		t.Errorf("Provider.RatePerSecond: got %d, want 5", cfg.Provider.RatePerSecond)
	}

	// Chat defaults
	if !cfg.Chat.FallbackEnabled {
		t.Error("Chat.FallbackEnabled should be true by default")
	}
	if cfg.Chat.FallbackThreshold != 0.9 {
		t.Errorf("Chat.FallbackThreshold: got %f, want 0.9", cfg.Chat.FallbackThreshold)
	}

	// News defaults
	if cfg.News.Limit != 10 {
		t.Errorf("News.Limit: got %d, want 10", cfg.News.Limit)
	}

	// API defaults
	if cfg.API.Host != "0.0.0.0" {
		t.Errorf("API.Host: got %q, want %q", cfg.API.Host, "0.0.0.0")
	}
	if cfg.API.Port != 8080 {
		t.Errorf("API.Port: got %d, want 8080", cfg.API.Port)
	}

	// Logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level: got %q, want %q", cfg.Logging.Level, "info")
	}
	if cfg.Logging.Format != "text" {
		t.Errorf("Logging.Format: got %q, want %q", cfg.Logging.Format, "text")
	}
}

// ── LoadFromFile ──

func TestLoadFromFile(t *testing.T) {
	// Create a temp config file
	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "test_config.yaml")
	content := []byte(`
provider:
  base_url: "http://localhost:9999/api/v3"
  api_key: "CG-test-key-1234567890"
  cache_ttl_sec: 120
chat:
  fallback_enabled: false
portfolio:
  holdings: "bitcoin=0.5,ethereum=2"
api:
  port: 9090
logging:
  level: "debug"
  format: "json"
`)
	if err := os.WriteFile(cfgPath, content, 0644); err != nil {
		t.Fatalf("write temp config: %v", err)
	}

	// Unset env vars
	os.Unsetenv("CRYPTOBUDDY_PROVIDER_API_KEY")
	os.Unsetenv("COINGECKO_API_KEY")
	os.Unsetenv("CRYPTOBUDDY_PORTFOLIO_HOLDINGS")

	cfg, err := LoadFromFile(cfgPath)
	if err != nil {
		t.Fatalf("LoadFromFile() error: %v", err)
	}
	if cfg.Provider.BaseURL != "http://localhost:9999/api/v3" {
		t.Errorf("Provider.BaseURL: got %q", cfg.Provider.BaseURL)
	}
	if cfg.Provider.APIKey != "CG-test-key-1234567890" {
		t.Errorf("Provider.APIKey: got %q", cfg.Provider.APIKey)
	}
	if cfg.Provider.CacheTTLSec != 120 {
		t.Errorf("Provider.CacheTTLSec: got %d, want 120", cfg.Provider.CacheTTLSec)
	}
	// Unset sections keep their defaults
	if cfg.Provider.ChartTTLSec != 300 {
		t.Errorf("Provider.ChartTTLSec: got %d, want default 300", cfg.Provider.ChartTTLSec)
	}
	if cfg.Chat.FallbackEnabled {
		t.Error("Chat.FallbackEnabled should be false from file")
	}
	if cfg.Portfolio.Holdings != "bitcoin=0.5,ethereum=2" {
		t.Errorf("Portfolio.Holdings: got %q", cfg.Portfolio.Holdings)
	}
	if cfg.API.Port != 9090 {
		t.Errorf("API.Port: got %d, want 9090", cfg.API.Port)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level: got %q, want %q", cfg.Logging.Level, "debug")
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("Logging.Format: got %q, want %q", cfg.Logging.Format, "json")
	}
}

func TestLoadFromFileNotFound(t *testing.T) {
	_, err := LoadFromFile("/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("LoadFromFile() with nonexistent path should return error")
	}
}

// ── overrideFromEnv ──

func TestOverrideFromEnv(t *testing.T) {
	cfg := &Config{}

	os.Setenv("CRYPTOBUDDY_PROVIDER_API_KEY", "CG-prefixed-key-123")
	os.Setenv("CRYPTOBUDDY_PORTFOLIO_HOLDINGS", "cardano=100")
	os.Unsetenv("COINGECKO_API_KEY")
	defer func() {
		os.Unsetenv("CRYPTOBUDDY_PROVIDER_API_KEY")
		os.Unsetenv("CRYPTOBUDDY_PORTFOLIO_HOLDINGS")
	}()

	overrideFromEnv(cfg)

	if cfg.Provider.APIKey != "CG-prefixed-key-123" {
		t.Errorf("Provider.APIKey: got %q", cfg.Provider.APIKey)
	}
	if cfg.Portfolio.Holdings != "cardano=100" {
		t.Errorf("Portfolio.Holdings: got %q", cfg.Portfolio.Holdings)
	}
}

func TestOverrideFromEnvCoinGeckoNameWins(t *testing.T) {
	cfg := &Config{}

	os.Setenv("CRYPTOBUDDY_PROVIDER_API_KEY", "CG-prefixed-key-123")
	os.Setenv("COINGECKO_API_KEY", "CG-conventional-key-456")
	defer func() {
		os.Unsetenv("CRYPTOBUDDY_PROVIDER_API_KEY")
		os.Unsetenv("COINGECKO_API_KEY")
	}()

	overrideFromEnv(cfg)

	if cfg.Provider.APIKey != "CG-conventional-key-456" {
		t.Errorf("Provider.APIKey: got %q, conventional name should win", cfg.Provider.APIKey)
	}
}

func TestOverrideFromEnvNoEnvSet(t *testing.T) {
	os.Unsetenv("CRYPTOBUDDY_PROVIDER_API_KEY")
	os.Unsetenv("COINGECKO_API_KEY")
	os.Unsetenv("CRYPTOBUDDY_PORTFOLIO_HOLDINGS")

	cfg := &Config{
		Provider: ProviderConfig{APIKey: "from-config"},
	}
	overrideFromEnv(cfg)

	// Should retain the original value when env is not set
	if cfg.Provider.APIKey != "from-config" {
		t.Errorf("Provider.APIKey should stay as 'from-config' when env is unset, got %q", cfg.Provider.APIKey)
	}
}

// ── maskKey ──

func TestMaskKeyShort(t *testing.T) {
	// Keys with 8 or fewer characters should be fully masked
	tests := []struct {
		input string
		want  string
	}{
		{"", "***"},
		{"a", "***"},
		{"abcd", "***"},
		{"12345678", "***"},
	}
	for _, tc := range tests {
		got := maskKey(tc.input)
		if got != tc.want {
			t.Errorf("maskKey(%q): got %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestMaskKeyLong(t *testing.T) {
	// Keys with more than 8 characters show first 3 + ... + last 3
	got := maskKey("CG-test-key-1234567890")
	if got != "CG-...890" {
		t.Errorf("maskKey: got %q, want %q", got, "CG-...890")
	}
}

// ── CheckAPIKeys ──

func TestCheckAPIKeysNone(t *testing.T) {
	os.Unsetenv("CRYPTOBUDDY_PROVIDER_API_KEY")
	os.Unsetenv("COINGECKO_API_KEY")

	statuses := CheckAPIKeys(&Config{})
	if len(statuses) != 1 {
		t.Fatalf("expected 1 key status, got %d", len(statuses))
	}
	s := statuses[0]
	if s.IsSet || s.Source != KeySourceNone || s.Masked != "" {
		t.Errorf("expected unset key status, got %+v", s)
	}
}

func TestCheckAPIKeysFromConfig(t *testing.T) {
	os.Unsetenv("CRYPTOBUDDY_PROVIDER_API_KEY")
	os.Unsetenv("COINGECKO_API_KEY")

	cfg := &Config{Provider: ProviderConfig{APIKey: "CG-file-key-987654321"}}
	s := CheckAPIKeys(cfg)[0]
	if !s.IsSet || s.Source != KeySourceConfig {
		t.Errorf("expected config-sourced key, got %+v", s)
	}
	if s.Masked != "CG-...321" {
		t.Errorf("Masked: got %q", s.Masked)
	}
}

func TestCheckAPIKeysFromEnv(t *testing.T) {
	os.Setenv("COINGECKO_API_KEY", "CG-env-key-123456789")
	defer os.Unsetenv("COINGECKO_API_KEY")

	cfg := &Config{Provider: ProviderConfig{APIKey: "CG-env-key-123456789"}}
	s := CheckAPIKeys(cfg)[0]
	if !s.IsSet || s.Source != KeySourceEnv {
		t.Errorf("expected env-sourced key, got %+v", s)
	}
}
