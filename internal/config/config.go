// Package config handles configuration loading for CryptoBuddy.
// It supports YAML config files with environment variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the complete application configuration.
type Config struct {
	Provider  ProviderConfig  `mapstructure:"provider"  yaml:"provider"`
	Chat      ChatConfig      `mapstructure:"chat"      yaml:"chat"`
	Portfolio PortfolioConfig `mapstructure:"portfolio" yaml:"portfolio"`
	News      NewsConfig      `mapstructure:"news"      yaml:"news"`
	API       APIConfig       `mapstructure:"api"       yaml:"api"`
	Logging   LoggingConfig   `mapstructure:"logging"   yaml:"logging"`
}

// ProviderConfig holds market data provider settings.
type ProviderConfig struct {
	BaseURL       string `mapstructure:"base_url"        yaml:"base_url"`
	APIKey        string `mapstructure:"api_key"         yaml:"api_key"`
	CacheTTLSec   int    `mapstructure:"cache_ttl_sec"   yaml:"cache_ttl_sec"`
	ChartTTLSec   int    `mapstructure:"chart_ttl_sec"   yaml:"chart_ttl_sec"`
	RatePerSecond int    `mapstructure:"rate_per_second" yaml:"rate_per_second"`
}

// ChatConfig holds conversational mode settings.
type ChatConfig struct {
	FallbackEnabled   bool    `mapstructure:"fallback_enabled"   yaml:"fallback_enabled"`
	FallbackThreshold float64 `mapstructure:"fallback_threshold" yaml:"fallback_threshold"`
}

// PortfolioConfig holds the user's recorded holdings.
type PortfolioConfig struct {
	// Holdings is "id=amount,id=amount", e.g. "bitcoin=0.5,ethereum=2".
	Holdings string `mapstructure:"holdings" yaml:"holdings"`
}

// NewsConfig holds news feed settings.
type NewsConfig struct {
	Limit int `mapstructure:"limit" yaml:"limit"`
}

// APIConfig holds HTTP API server settings.
type APIConfig struct {
	Host        string   `mapstructure:"host"         yaml:"host"`
	Port        int      `mapstructure:"port"         yaml:"port"`
	CORSOrigins []string `mapstructure:"cors_origins" yaml:"cors_origins"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `mapstructure:"format" yaml:"format"` // "text" or "json"
}

// Load reads the configuration from file and environment variables.
// Config file search order:
//  1. ./config/config.yaml (project root)
//  2. ~/.cryptobuddy/config.yaml (home directory)
//  3. /etc/cryptobuddy/config.yaml (system)
//
// Environment variables override config file values.
// Format: CRYPTOBUDDY_<SECTION>_<KEY>, e.g., CRYPTOBUDDY_PROVIDER_API_KEY
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(filepath.Join(homeDir(), ".cryptobuddy"))
	v.AddConfigPath("/etc/cryptobuddy")

	v.SetEnvPrefix("CRYPTOBUDDY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Config file not existing is fine, defaults + env vars apply.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	overrideFromEnv(&cfg)

	return &cfg, nil
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetEnvPrefix("CRYPTOBUDDY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	overrideFromEnv(&cfg)
	return &cfg, nil
}

// setDefaults sets sensible defaults for all config values.
func setDefaults(v *viper.Viper) {
	// Provider defaults
	v.SetDefault("provider.base_url", "https://api.coingecko.com/api/v3")
	v.SetDefault("provider.cache_ttl_sec", 60)
	v.SetDefault("provider.chart_ttl_sec", 300)
	v.SetDefault("provider.rate_per_second", 5)

	// Chat defaults
	v.SetDefault("chat.fallback_enabled", true)
	v.SetDefault("chat.fallback_threshold", 0.9)

	// News defaults
	v.SetDefault("news.limit", 10)

	// API defaults
	v.SetDefault("api.host", "0.0.0.0")
	v.SetDefault("api.port", 8080)
	v.SetDefault("api.cors_origins", []string{"http://localhost:3000"})

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

// overrideFromEnv explicitly reads sensitive keys from environment
// variables. COINGECKO_API_KEY is the provider's conventional name and is
// honored alongside the prefixed form.
func overrideFromEnv(cfg *Config) {
	if key := os.Getenv("CRYPTOBUDDY_PROVIDER_API_KEY"); key != "" {
		cfg.Provider.APIKey = key
	}
	if key := os.Getenv("COINGECKO_API_KEY"); key != "" {
		cfg.Provider.APIKey = key
	}
	if holdings := os.Getenv("CRYPTOBUDDY_PORTFOLIO_HOLDINGS"); holdings != "" {
		cfg.Portfolio.Holdings = holdings
	}
}

// homeDir returns the user's home directory.
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
