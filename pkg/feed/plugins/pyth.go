// Package plugins contains the concrete price feed plugins.
package plugins

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"tc.com/oracle-updater/pkg/feed"
	"tc.com/oracle-updater/pkg/fixedpoint"
	"tc.com/oracle-updater/pkg/logging"
)

// Pyth fetches prices from a Hermes-style push oracle. Prices arrive as
// (mantissa, exponent) pairs and are decoded to exact decimal strings
// without going through binary floating point.
type Pyth struct {
	baseURL string
	client  *http.Client
	logger  *logging.Logger
	now     func() time.Time
}

// NewPyth creates a new push-oracle plugin.
func NewPyth(baseURL string, client *http.Client, logger *logging.Logger) *Pyth {
	return &Pyth{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		logger:  logger,
		now:     time.Now,
	}
}

// Name returns the plugin name
func (p *Pyth) Name() string {
	return "pyth"
}

// Currency returns the denomination of reported prices
func (p *Pyth) Currency() feed.Currency {
	return feed.CurrencyUSD
}

type pythPriceRecord struct {
	Price       flexNumber `json:"price"`
	Expo        int        `json:"expo"`
	PublishTime int64      `json:"publish_time"`
}

type pythFeed struct {
	ID    string          `json:"id"`
	Price pythPriceRecord `json:"price"`
}

type pythResponse struct {
	Parsed []pythFeed `json:"parsed"`
}

// FetchBatch fetches the latest price update for every identifier in one
// request. Feed ids in the response have any leading 0x stripped before
// they are used as cache keys.
func (p *Pyth) FetchBatch(ctx context.Context, identifiers []string, opts feed.FetchOptions) (map[string]feed.Result, error) {
	results := make(map[string]feed.Result)
	if len(identifiers) == 0 {
		return results, nil
	}

	query := url.Values{}
	for _, id := range identifiers {
		query.Add("ids[]", id)
	}
	endpoint := p.baseURL + "/v2/updates/price/latest?" + query.Encode()

	var payload pythResponse
	if err := fetchJSON(ctx, p.client, endpoint, opts.Timeout, &payload); err != nil {
		return nil, fmt.Errorf("pyth batch: %w", err)
	}

	for _, f := range payload.Parsed {
		if f.ID == "" || f.Price.Price == "" {
			continue
		}

		price, err := fixedpoint.FormatScaled(f.Price.Price.String(), f.Price.Expo)
		if err != nil {
			p.logger.Warn("skipping undecodable pyth price",
				"feed_id", f.ID, "mantissa", f.Price.Price.String(), "expo", f.Price.Expo, "error", err)
			continue
		}
		if err := feed.ValidatePrice(price); err != nil {
			p.logger.Warn("skipping invalid pyth price", "feed_id", f.ID, "error", err)
			continue
		}

		id := strings.TrimPrefix(f.ID, "0x")
		results[id] = feed.Result{
			Price:       price,
			Currency:    feed.CurrencyUSD,
			PublishTime: f.Price.PublishTime,
			Metadata:    map[string]string{"expo": strconv.Itoa(f.Price.Expo)},
		}
	}

	p.logger.Info("pyth batch complete",
		"requested", len(identifiers), "returned", len(results))

	return results, nil
}

// IsResultValid rejects results whose publish time is older than the
// configured maximum age. Results without a publish time pass.
func (p *Pyth) IsResultValid(result feed.Result, opts feed.FetchOptions) bool {
	if opts.MaxAge <= 0 || result.PublishTime == 0 {
		return true
	}
	age := p.now().Sub(time.Unix(result.PublishTime, 0))
	return age <= opts.MaxAge
}
