package oracle

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"tc.com/oracle-updater/pkg/feed"
	"tc.com/oracle-updater/pkg/fixedpoint"
	"tc.com/oracle-updater/pkg/logging"
	"tc.com/oracle-updater/pkg/metrics"
	"tc.com/oracle-updater/pkg/oracle/catalog"
)

// Run performs one complete price resolution pass: prefetch all plugin data,
// establish the reference rate, resolve every asset through its fallback
// chain, normalize USD prices to base currency, and assemble the payload.
// Runs are fully independent; nothing survives between invocations.
func Run(ctx context.Context, cat *catalog.Catalog, registry *feed.Registry, opts Options, logger *logging.Logger) (*Result, error) {
	runID := uuid.NewString()
	started := time.Now()
	logger = logger.With("run_id", runID)

	logger.Info("starting oracle run",
		"assets", len(cat.Assets), "plugins", registry.Names(), "priority", opts.Priority)

	result, err := run(ctx, cat, registry, opts, runID, logger)
	if err != nil {
		metrics.RecordRun("error", time.Since(started))
		logger.Error("oracle run failed", "error", err)
		return nil, err
	}

	metrics.RecordRun("ok", time.Since(started))
	logger.Info("oracle run complete",
		"prices", len(result.Prices),
		"reference_rate", result.ReferenceRate,
		"reference_source", result.ReferenceSource,
		"source_breakdown", sourceBreakdown(result.Prices),
		"duration_ms", time.Since(started).Milliseconds())

	return result, nil
}

func run(ctx context.Context, cat *catalog.Catalog, registry *feed.Registry, opts Options, runID string, logger *logging.Logger) (*Result, error) {
	cache := Prefetch(ctx, cat, registry, opts.Priority, opts.Fetch, logger)

	referenceRate, referenceSource, err := resolveReferenceRate(cat, registry, cache, opts.Fetch, logger)
	if err != nil {
		return nil, err
	}
	if rate, err := decimal.NewFromString(referenceRate); err == nil {
		metrics.ReferenceRate.Set(rate.InexactFloat64())
	}

	prices := make([]ResolvedPrice, 0, len(cat.Assets))
	for _, asset := range cat.Assets {
		if asset.Fixed() {
			prices = append(prices, ResolvedPrice{
				Symbol: asset.Symbol,
				ID:     asset.ID,
				Price:  asset.FixedPrice,
				Source: SourceFixed,
			})
			metrics.RecordAssetResolved(SourceFixed)
			continue
		}

		quote, ok := ResolveAsset(asset, registry, cache, opts.Fetch, logger)
		if !ok {
			continue
		}

		price, err := normalizeQuote(asset, quote, referenceRate)
		if err != nil {
			logger.Error("price normalization failed",
				"symbol", asset.Symbol, "source", quote.Source, "error", err)
			metrics.RecordAssetFailed(asset.Symbol)
			continue
		}
		prices = append(prices, price)
		metrics.RecordAssetResolved(quote.Source)
	}

	return Assemble(runID, referenceRate, referenceSource, prices, opts.Manifest)
}

// normalizeQuote converts a selected quote into the final base-denominated
// record. Base-denominated quotes pass through untouched; USD quotes are
// divided by the reference rate with truncation toward zero.
func normalizeQuote(asset catalog.Asset, quote Quote, referenceRate string) (ResolvedPrice, error) {
	if quote.Currency == feed.CurrencyBase {
		return ResolvedPrice{
			Symbol:      asset.Symbol,
			ID:          asset.ID,
			Price:       quote.Price,
			Source:      quote.Source,
			PublishTime: quote.PublishTime,
		}, nil
	}

	converted, err := fixedpoint.Convert(quote.Price, referenceRate, fixedpoint.Scale)
	if err != nil {
		return ResolvedPrice{}, fmt.Errorf("converting %s: %w", quote.Price, err)
	}
	return ResolvedPrice{
		Symbol:        asset.Symbol,
		ID:            asset.ID,
		Price:         converted,
		Source:        quote.Source,
		PublishTime:   quote.PublishTime,
		USDPrice:      quote.Price,
		ReferenceRate: referenceRate,
	}, nil
}

func sourceBreakdown(prices []ResolvedPrice) map[string]int {
	breakdown := make(map[string]int)
	for _, price := range prices {
		breakdown[price.Source]++
	}
	return breakdown
}
