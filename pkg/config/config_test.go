package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tc.com/oracle-updater/pkg/oracle/catalog"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	t.Setenv("COINGECKO_API_KEY", "cg-test-key")

	path := writeConfig(t, `
priority:
  - pyth
  - coingecko
fetch:
  timeout: 10s
  max_age: 2m
plugins:
  coingecko:
    api_key: ${COINGECKO_API_KEY}
manifest:
  account_address: account_abc
  badge_resource: resource_badge
  component_address: component_oracle
catalog:
  reference:
    symbol: XRD
    id: resource_xrd
    feeds:
      - plugin: pyth
        identifier: feed_xrd
  assets:
    - symbol: xUSDT
      id: resource_usdt
      feeds:
        - plugin: coingecko
          identifier: tether
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"pyth", "coingecko"}, cfg.Priority)
	assert.Equal(t, 10*time.Second, cfg.Fetch.Timeout.ToDuration())
	assert.Equal(t, 2*time.Minute, cfg.Fetch.MaxAge.ToDuration())

	// Environment variables are expanded before parsing.
	assert.Equal(t, "cg-test-key", cfg.Plugins.CoinGecko.APIKey)

	assert.Equal(t, "XRD", cfg.Catalog.Reference.Symbol)
	require.Len(t, cfg.Catalog.Assets, 1)
	assert.Equal(t, []catalog.FeedRef{{Plugin: "coingecko", Identifier: "tether"}}, cfg.Catalog.Assets[0].Feeds)

	require.NoError(t, Validate(cfg))
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, `
metrics:
  enabled: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"pyth", "caviarnine", "coingecko", "astrolescent"}, cfg.Priority)
	assert.Equal(t, 5*time.Second, cfg.Fetch.Timeout.ToDuration())
	assert.Equal(t, defaultPythBaseURL, cfg.Plugins.Pyth.BaseURL)
	assert.Equal(t, defaultCoinGeckoBaseURL, cfg.Plugins.CoinGecko.BaseURL)
	assert.Equal(t, defaultCaviarNineBaseURL, cfg.Plugins.CaviarNine.BaseURL)
	assert.Equal(t, defaultBaseResource, cfg.Plugins.CaviarNine.BaseResource)
	assert.Equal(t, defaultSwapAmount, cfg.Plugins.CaviarNine.SwapAmount)
	assert.Equal(t, defaultBadgeID, cfg.Manifest.BadgeID)
	assert.Equal(t, ":9091", cfg.Metrics.Addr)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "stdout", cfg.Logging.Output)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := writeConfig(t, "priority: [pyth\n")
	_, err := Load(path)
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Priority: []string{"pyth"},
			Fetch:    FetchConfig{Timeout: Duration(5 * time.Second)},
			Catalog: catalog.Catalog{
				Reference: catalog.Asset{
					Symbol: "XRD",
					ID:     "resource_xrd",
					Feeds:  []catalog.FeedRef{{Plugin: "pyth", Identifier: "feed_xrd"}},
				},
				Assets: []catalog.Asset{
					{Symbol: "A", ID: "resource_a", FixedPrice: "1"},
				},
			},
			Manifest: ManifestConfig{
				AccountAddress:   "account_abc",
				BadgeResource:    "resource_badge",
				BadgeID:          "#1#",
				ComponentAddress: "component_oracle",
			},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{
			name:   "valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "zero timeout",
			mutate:  func(c *Config) { c.Fetch.Timeout = 0 },
			wantErr: ErrInvalidTimeout,
		},
		{
			name:    "empty priority",
			mutate:  func(c *Config) { c.Priority = nil },
			wantErr: ErrEmptyPriority,
		},
		{
			name:    "unknown priority plugin",
			mutate:  func(c *Config) { c.Priority = []string{"binance"} },
			wantErr: ErrUnknownPriorityPlugin,
		},
		{
			name:    "no assets",
			mutate:  func(c *Config) { c.Catalog.Assets = nil },
			wantErr: ErrNoAssets,
		},
		{
			name:    "invalid catalog",
			mutate:  func(c *Config) { c.Catalog.Assets[0].FixedPrice = "one" },
			wantErr: catalog.ErrInvalidFixedPrice,
		},
		{
			name:    "missing account address",
			mutate:  func(c *Config) { c.Manifest.AccountAddress = "" },
			wantErr: ErrMissingManifestValue,
		},
		{
			name:    "missing badge resource",
			mutate:  func(c *Config) { c.Manifest.BadgeResource = "" },
			wantErr: ErrMissingManifestValue,
		},
		{
			name:    "missing component address",
			mutate:  func(c *Config) { c.Manifest.ComponentAddress = "" },
			wantErr: ErrMissingManifestValue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := Validate(cfg)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v, want %v", err, tt.wantErr)
		})
	}
}
