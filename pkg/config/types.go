package config

import (
	"time"

	"tc.com/oracle-updater/pkg/oracle/catalog"
)

// Config is the root configuration structure
type Config struct {
	Priority []string        `yaml:"priority"`
	Fetch    FetchConfig     `yaml:"fetch"`
	Plugins  PluginsConfig   `yaml:"plugins"`
	Catalog  catalog.Catalog `yaml:"catalog"`
	Manifest ManifestConfig  `yaml:"manifest"`
	Metrics  MetricsConfig   `yaml:"metrics"`
	Logging  LoggingConfig   `yaml:"logging"`
}

// FetchConfig bounds outbound feed requests
type FetchConfig struct {
	Timeout Duration `yaml:"timeout"`
	MaxAge  Duration `yaml:"max_age"`
}

// PluginsConfig configures the available feed plugins
type PluginsConfig struct {
	Pyth         PythConfig         `yaml:"pyth"`
	CoinGecko    CoinGeckoConfig    `yaml:"coingecko"`
	CaviarNine   CaviarNineConfig   `yaml:"caviarnine"`
	Astrolescent AstrolescentConfig `yaml:"astrolescent"`
}

// PythConfig configures the push-oracle plugin
type PythConfig struct {
	BaseURL string `yaml:"base_url"`
}

// CoinGeckoConfig configures the REST aggregator plugin
type CoinGeckoConfig struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`
}

// CaviarNineConfig configures the AMM quote plugin
type CaviarNineConfig struct {
	BaseURL      string `yaml:"base_url"`
	BaseResource string `yaml:"base_resource"`
	SwapAmount   string `yaml:"swap_amount"`
}

// AstrolescentConfig configures the partner aggregator plugin
type AstrolescentConfig struct {
	URL string `yaml:"url"`
}

// ManifestConfig configures the rendered transaction manifest
type ManifestConfig struct {
	AccountAddress   string `yaml:"account_address"`
	BadgeResource    string `yaml:"badge_resource"`
	BadgeID          string `yaml:"badge_id"`
	ComponentAddress string `yaml:"component_address"`
}

// MetricsConfig configures Prometheus metrics
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
	Path    string `yaml:"path"`
}

// LoggingConfig configures logging
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// Duration is a wrapper around time.Duration for YAML parsing
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler
func (d *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	td, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(td)
	return nil
}

// ToDuration converts Duration to time.Duration
func (d Duration) ToDuration() time.Duration {
	return time.Duration(d)
}
