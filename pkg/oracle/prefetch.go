package oracle

import (
	"context"

	"tc.com/oracle-updater/pkg/feed"
	"tc.com/oracle-updater/pkg/logging"
	"tc.com/oracle-updater/pkg/metrics"
	"tc.com/oracle-updater/pkg/oracle/catalog"
)

// Prefetch drives the plugins in priority order and fills the per-run cache.
// Each plugin receives one batched request covering the identifiers of every
// asset that lists it and is not already resolved by a strictly
// higher-priority plugin; a valid result marks its assets resolved so later
// tiers request less. Plugins are consulted strictly sequentially because
// tier k+1 eligibility depends on tier k results. A greedy single pass:
// plugins are never revisited after later tiers run.
//
// A failed batch is logged and contributes nothing; fallback entries in the
// assets' own feed lists are the retry mechanism.
func Prefetch(ctx context.Context, cat *catalog.Catalog, registry *feed.Registry, priority []string, opts feed.FetchOptions, logger *logging.Logger) Cache {
	cache := make(Cache)
	resolved := make(map[string]bool)
	entries := cat.Entries()

	for _, pluginName := range priority {
		plugin, ok := registry.Get(pluginName)
		if !ok {
			logger.Warn("plugin in priority order is not registered", "plugin", pluginName)
			continue
		}

		identifiers, identifierAssets := eligibleIdentifiers(entries, pluginName, resolved)
		if len(identifiers) == 0 {
			continue
		}

		logger.Info("prefetching batch",
			"plugin", pluginName, "identifiers", len(identifiers))

		results, err := plugin.FetchBatch(ctx, identifiers, opts)
		if err != nil {
			logger.Error("batch fetch failed",
				"plugin", pluginName, "identifiers", len(identifiers), "error", err)
			metrics.RecordPluginFailure(pluginName)
			continue
		}

		for identifier, result := range results {
			cache.put(pluginName, identifier, result)
			if !feed.Valid(plugin, result, opts) {
				continue
			}
			for _, assetID := range identifierAssets[identifier] {
				resolved[assetID] = true
			}
		}
		metrics.RecordPluginBatch(pluginName, len(results))
	}

	return cache
}

// eligibleIdentifiers collects, in catalog order, the lookup identifiers this
// plugin should fetch, and the asset ids behind each identifier.
func eligibleIdentifiers(entries []catalog.Asset, pluginName string, resolved map[string]bool) ([]string, map[string][]string) {
	var identifiers []string
	identifierAssets := make(map[string][]string)

	for _, asset := range entries {
		if asset.Fixed() || resolved[asset.ID] {
			continue
		}
		for _, f := range asset.Feeds {
			if f.Plugin != pluginName {
				continue
			}
			identifier := f.LookupID(asset.ID)
			if _, seen := identifierAssets[identifier]; !seen {
				identifiers = append(identifiers, identifier)
			}
			identifierAssets[identifier] = append(identifierAssets[identifier], asset.ID)
		}
	}

	return identifiers, identifierAssets
}
