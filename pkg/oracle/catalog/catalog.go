// Package catalog holds the static table of assets to price.
package catalog

import (
	"fmt"

	"tc.com/oracle-updater/pkg/fixedpoint"
)

// FeedRef names a price feed plugin plus an optional plugin-specific lookup
// key. An empty Identifier defaults to the asset id.
type FeedRef struct {
	Plugin     string `yaml:"plugin" json:"plugin"`
	Identifier string `yaml:"identifier,omitempty" json:"identifier,omitempty"`
}

// LookupID returns the identifier this feed is queried under for an asset
// with the given id.
func (f FeedRef) LookupID(assetID string) string {
	if f.Identifier != "" {
		return f.Identifier
	}
	return assetID
}

// Asset is one catalog entry: either a fixed constant price, or an ordered
// list of feeds to try in priority order.
type Asset struct {
	Symbol     string    `yaml:"symbol" json:"symbol"`
	ID         string    `yaml:"id" json:"id"`
	FixedPrice string    `yaml:"fixed_price,omitempty" json:"fixed_price,omitempty"`
	Feeds      []FeedRef `yaml:"feeds,omitempty" json:"feeds,omitempty"`
}

// Fixed reports whether the asset carries a constant price.
func (a Asset) Fixed() bool {
	return a.FixedPrice != ""
}

// FeedPlugins returns the plugin names in the asset's feed list, in order.
func (a Asset) FeedPlugins() []string {
	names := make([]string, 0, len(a.Feeds))
	for _, f := range a.Feeds {
		names = append(names, f.Plugin)
	}
	return names
}

// Catalog is the static configuration supplied to the engine: the assets to
// price and the reference entry whose USD resolution establishes the
// reference rate.
type Catalog struct {
	Reference Asset   `yaml:"reference" json:"reference"`
	Assets    []Asset `yaml:"assets" json:"assets"`
}

// Entries returns the reference entry followed by the assets, in declared
// order. Prefetch iterates these.
func (c *Catalog) Entries() []Asset {
	entries := make([]Asset, 0, len(c.Assets)+1)
	entries = append(entries, c.Reference)
	entries = append(entries, c.Assets...)
	return entries
}

// Validate fails fast on configuration errors: an asset with neither a fixed
// price nor feeds, a fixed price that does not parse, a feed referencing an
// unknown plugin, or a missing or fixed reference entry. knownPlugin reports
// whether a plugin name is registered.
func (c *Catalog) Validate(knownPlugin func(string) bool) error {
	if c.Reference.Symbol == "" && c.Reference.ID == "" && len(c.Reference.Feeds) == 0 {
		return fmt.Errorf("%w", ErrMissingReference)
	}
	if c.Reference.Fixed() {
		return fmt.Errorf("%w: %s", ErrFixedReference, c.Reference.Symbol)
	}
	if err := validateAsset(c.Reference, knownPlugin); err != nil {
		return fmt.Errorf("reference: %w", err)
	}

	seen := make(map[string]bool, len(c.Assets))
	for i, asset := range c.Assets {
		if err := validateAsset(asset, knownPlugin); err != nil {
			return fmt.Errorf("asset %d (%s): %w", i, asset.Symbol, err)
		}
		if seen[asset.ID] {
			return fmt.Errorf("%w: %s", ErrDuplicateAssetID, asset.ID)
		}
		seen[asset.ID] = true
	}
	return nil
}

func validateAsset(a Asset, knownPlugin func(string) bool) error {
	if a.Symbol == "" {
		return fmt.Errorf("%w", ErrMissingSymbol)
	}
	if a.ID == "" {
		return fmt.Errorf("%w", ErrMissingID)
	}

	if a.Fixed() {
		// Feeds on a fixed-price asset are ignored, not rejected.
		if _, err := fixedpoint.Parse(a.FixedPrice, fixedpoint.Scale); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidFixedPrice, err)
		}
		return nil
	}

	if len(a.Feeds) == 0 {
		return fmt.Errorf("%w", ErrNoFeeds)
	}
	for _, f := range a.Feeds {
		if f.Plugin == "" || !knownPlugin(f.Plugin) {
			return fmt.Errorf("%w: %q", ErrUnknownFeedPlugin, f.Plugin)
		}
	}
	return nil
}
