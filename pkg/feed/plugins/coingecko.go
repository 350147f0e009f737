package plugins

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"tc.com/oracle-updater/pkg/feed"
	"tc.com/oracle-updater/pkg/logging"
)

// CoinGecko fetches USD prices from a CoinGecko-style REST aggregator.
// Identifiers are CoinGecko coin ids; one request covers the whole batch.
type CoinGecko struct {
	baseURL string
	apiKey  string
	client  *http.Client
	logger  *logging.Logger
}

// NewCoinGecko creates a new REST aggregator plugin. apiKey may be empty.
func NewCoinGecko(baseURL, apiKey string, client *http.Client, logger *logging.Logger) *CoinGecko {
	return &CoinGecko{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  client,
		logger:  logger,
	}
}

// Name returns the plugin name
func (c *CoinGecko) Name() string {
	return "coingecko"
}

// Currency returns the denomination of reported prices
func (c *CoinGecko) Currency() feed.Currency {
	return feed.CurrencyUSD
}

// FetchBatch fetches USD prices for all identifiers in one request.
// Duplicate identifiers are requested once.
func (c *CoinGecko) FetchBatch(ctx context.Context, identifiers []string, opts feed.FetchOptions) (map[string]feed.Result, error) {
	results := make(map[string]feed.Result)

	unique := make([]string, 0, len(identifiers))
	seen := make(map[string]bool, len(identifiers))
	for _, id := range identifiers {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		unique = append(unique, id)
	}
	if len(unique) == 0 {
		return results, nil
	}

	query := url.Values{}
	query.Set("ids", strings.Join(unique, ","))
	query.Set("vs_currencies", "usd")
	if c.apiKey != "" {
		query.Set("x_cg_pro_api_key", c.apiKey)
	}
	endpoint := c.baseURL + "/api/v3/simple/price?" + query.Encode()

	var payload map[string]map[string]flexNumber
	if err := fetchJSON(ctx, c.client, endpoint, opts.Timeout, &payload); err != nil {
		return nil, fmt.Errorf("coingecko batch: %w", err)
	}

	for _, id := range unique {
		entry, ok := payload[id]
		if !ok {
			continue
		}
		usd, ok := entry["usd"]
		if !ok || usd == "" {
			continue
		}
		price := usd.String()
		if err := feed.ValidatePrice(price); err != nil {
			c.logger.Warn("skipping invalid coingecko price", "id", id, "error", err)
			continue
		}
		results[id] = feed.Result{
			Price:    price,
			Currency: feed.CurrencyUSD,
		}
	}

	c.logger.Info("coingecko batch complete",
		"requested", len(unique), "returned", len(results))

	return results, nil
}
