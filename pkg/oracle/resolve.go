package oracle

import (
	"fmt"

	"tc.com/oracle-updater/pkg/feed"
	"tc.com/oracle-updater/pkg/fixedpoint"
	"tc.com/oracle-updater/pkg/logging"
	"tc.com/oracle-updater/pkg/metrics"
	"tc.com/oracle-updater/pkg/oracle/catalog"
)

// ResolveAsset walks the asset's feed list in declared order against the
// prefetched cache and selects the first present, valid result. First valid
// wins; later feeds are not consulted even if they would also be valid.
// Fixed-price assets never reach this function.
func ResolveAsset(asset catalog.Asset, registry *feed.Registry, cache Cache, opts feed.FetchOptions, logger *logging.Logger) (Quote, bool) {
	for _, f := range asset.Feeds {
		plugin, ok := registry.Get(f.Plugin)
		if !ok {
			logger.Error("feed references unregistered plugin",
				"symbol", asset.Symbol, "plugin", f.Plugin)
			continue
		}

		result, ok := cache.Lookup(f.Plugin, f.LookupID(asset.ID))
		if !ok {
			continue
		}
		if !feed.Valid(plugin, result, opts) {
			logger.Info("skipping stale result",
				"symbol", asset.Symbol, "source", f.Plugin)
			continue
		}

		logger.Info("price resolved",
			"symbol", asset.Symbol, "source", f.Plugin, "currency", result.Currency)

		return Quote{
			Price:       result.Price,
			Currency:    result.Currency,
			Source:      f.Plugin,
			PublishTime: result.PublishTime,
		}, true
	}

	logger.Error("no feed yielded a valid price",
		"symbol", asset.Symbol, "id", asset.ID, "tried", asset.FeedPlugins())
	metrics.RecordAssetFailed(asset.Symbol)

	return Quote{}, false
}

// resolveReferenceRate resolves the catalog's reference entry through the
// normal feed chain. Only USD-denominated results qualify; a missing or zero
// rate is fatal for the whole run.
func resolveReferenceRate(cat *catalog.Catalog, registry *feed.Registry, cache Cache, opts feed.FetchOptions, logger *logging.Logger) (string, string, error) {
	reference := cat.Reference

	for _, f := range reference.Feeds {
		plugin, ok := registry.Get(f.Plugin)
		if !ok {
			continue
		}
		result, ok := cache.Lookup(f.Plugin, f.LookupID(reference.ID))
		if !ok {
			continue
		}
		if result.Currency != feed.CurrencyUSD {
			logger.Warn("reference feed returned a non-USD result",
				"source", f.Plugin, "currency", result.Currency)
			continue
		}
		if !feed.Valid(plugin, result, opts) {
			logger.Info("skipping stale reference result", "source", f.Plugin)
			continue
		}

		rate, err := fixedpoint.Parse(result.Price, fixedpoint.Scale)
		if err != nil {
			logger.Error("reference rate does not parse",
				"source", f.Plugin, "price", result.Price, "error", err)
			continue
		}
		if rate.Sign() == 0 {
			return "", "", fmt.Errorf("%w: %s reported zero", ErrNoReferenceRate, f.Plugin)
		}

		logger.Info("reference rate established",
			"rate", result.Price, "source", f.Plugin)

		return result.Price, f.Plugin, nil
	}

	return "", "", fmt.Errorf("%w: tried %v", ErrNoReferenceRate, reference.FeedPlugins())
}
