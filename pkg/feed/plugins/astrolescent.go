package plugins

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"tc.com/oracle-updater/pkg/feed"
	"tc.com/oracle-updater/pkg/logging"
)

// Astrolescent fetches base-denominated prices from a partner aggregator.
// The endpoint takes no per-identifier parameters and returns one large
// id-keyed object per request; requested identifiers are picked out of it.
type Astrolescent struct {
	url    string
	client *http.Client
	logger *logging.Logger
}

// NewAstrolescent creates a new partner aggregator plugin. url is the full
// partner endpoint, including any embedded partner key.
func NewAstrolescent(url string, client *http.Client, logger *logging.Logger) *Astrolescent {
	return &Astrolescent{
		url:    url,
		client: client,
		logger: logger,
	}
}

// Name returns the plugin name
func (a *Astrolescent) Name() string {
	return "astrolescent"
}

// Currency returns the denomination of reported prices
func (a *Astrolescent) Currency() feed.Currency {
	return feed.CurrencyBase
}

type astrolescentEntry struct {
	Symbol        string     `json:"symbol"`
	Name          string     `json:"name"`
	TokenPriceXRD flexNumber `json:"tokenPriceXRD"`
	UpdatedAt     string     `json:"updatedAt"`
}

// FetchBatch fetches the full partner price table once and selects the
// requested identifiers from it.
func (a *Astrolescent) FetchBatch(ctx context.Context, identifiers []string, opts feed.FetchOptions) (map[string]feed.Result, error) {
	results := make(map[string]feed.Result)
	if len(identifiers) == 0 {
		return results, nil
	}

	var payload map[string]astrolescentEntry
	if err := fetchJSON(ctx, a.client, a.url, opts.Timeout, &payload); err != nil {
		return nil, fmt.Errorf("astrolescent batch: %w", err)
	}

	for _, id := range identifiers {
		entry, ok := payload[id]
		if !ok || entry.TokenPriceXRD == "" {
			continue
		}
		price := entry.TokenPriceXRD.String()
		if err := feed.ValidatePrice(price); err != nil {
			a.logger.Warn("skipping invalid astrolescent price", "identifier", id, "error", err)
			continue
		}

		var publishTime int64
		if entry.UpdatedAt != "" {
			if t, err := time.Parse(time.RFC3339, entry.UpdatedAt); err == nil {
				publishTime = t.Unix()
			}
		}

		results[id] = feed.Result{
			Price:       price,
			Currency:    feed.CurrencyBase,
			PublishTime: publishTime,
			Metadata: map[string]string{
				"symbol": entry.Symbol,
				"name":   entry.Name,
			},
		}
	}

	a.logger.Info("astrolescent batch complete",
		"requested", len(identifiers), "returned", len(results))

	return results, nil
}
