// Package config provides configuration loading and validation for the
// oracle updater.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Default endpoints for the known feed plugins.
const (
	defaultPythBaseURL       = "https://hermes.pyth.network"
	defaultCoinGeckoBaseURL  = "https://api.coingecko.com"
	defaultCaviarNineBaseURL = "https://api.caviarnine.com"

	// XRD, the base currency sold in simulated AMM swaps.
	defaultBaseResource = "resource_rdx1tknxxxxxxxxxradxrdxxxxxxxxx009923554798xxxxxxxxxradxrd"
	defaultSwapAmount   = "100"

	defaultBadgeID = "#1#"
)

// KnownPlugins lists the plugin names the binary can construct.
var KnownPlugins = []string{"pyth", "caviarnine", "coingecko", "astrolescent"}

// Load loads configuration from a YAML file, expanding environment variables
// in it first.
func Load(path string) (*Config, error) {
	cleanPath := filepath.Clean(path)
	absPath, err := filepath.Abs(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("invalid config path: %w", err)
	}

	data, err := os.ReadFile(absPath) // #nosec G304 -- Path sanitized with filepath.Clean and filepath.Abs
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	applyDefaults(&cfg)

	return &cfg, nil
}

// applyDefaults sets default values for optional fields.
func applyDefaults(cfg *Config) {
	if len(cfg.Priority) == 0 {
		cfg.Priority = []string{"pyth", "caviarnine", "coingecko", "astrolescent"}
	}

	if cfg.Fetch.Timeout.ToDuration() == 0 {
		cfg.Fetch.Timeout = Duration(5 * time.Second)
	}

	if cfg.Plugins.Pyth.BaseURL == "" {
		cfg.Plugins.Pyth.BaseURL = defaultPythBaseURL
	}
	if cfg.Plugins.CoinGecko.BaseURL == "" {
		cfg.Plugins.CoinGecko.BaseURL = defaultCoinGeckoBaseURL
	}
	if cfg.Plugins.CaviarNine.BaseURL == "" {
		cfg.Plugins.CaviarNine.BaseURL = defaultCaviarNineBaseURL
	}
	if cfg.Plugins.CaviarNine.BaseResource == "" {
		cfg.Plugins.CaviarNine.BaseResource = defaultBaseResource
	}
	if cfg.Plugins.CaviarNine.SwapAmount == "" {
		cfg.Plugins.CaviarNine.SwapAmount = defaultSwapAmount
	}

	if cfg.Manifest.BadgeID == "" {
		cfg.Manifest.BadgeID = defaultBadgeID
	}

	if cfg.Metrics.Enabled {
		if cfg.Metrics.Addr == "" {
			cfg.Metrics.Addr = ":9091"
		}
		if cfg.Metrics.Path == "" {
			cfg.Metrics.Path = "/metrics"
		}
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stdout"
	}
}
