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

// CaviarNine derives base-denominated prices from an AMM aggregator by
// simulating a fixed-size swap of the base currency into each target asset.
// The quote endpoint prices one asset per request, so the batch is walked
// sequentially; individual quote failures only drop that identifier.
type CaviarNine struct {
	baseURL      string
	baseResource string
	swapAmount   string
	client       *http.Client
	logger       *logging.Logger
}

// NewCaviarNine creates a new AMM quote plugin. baseResource is the resource
// address of the base currency sold in the simulated swap; swapAmount is the
// reference amount sold per quote.
func NewCaviarNine(baseURL, baseResource, swapAmount string, client *http.Client, logger *logging.Logger) *CaviarNine {
	return &CaviarNine{
		baseURL:      strings.TrimRight(baseURL, "/"),
		baseResource: baseResource,
		swapAmount:   swapAmount,
		client:       client,
		logger:       logger,
	}
}

// Name returns the plugin name
func (c *CaviarNine) Name() string {
	return "caviarnine"
}

// Currency returns the denomination of reported prices
func (c *CaviarNine) Currency() feed.Currency {
	return feed.CurrencyBase
}

type caviarNineDetails struct {
	MidPriceBuyToSell flexNumber `json:"mid_price_buy_to_sell"`
}

type caviarNineHeader struct {
	UnixTimestampMS int64 `json:"unix_timestamp_ms"`
}

type caviarNineResult struct {
	Status       string            `json:"status"`
	ErrorMessage string            `json:"error_message"`
	Details      caviarNineDetails `json:"details"`
	Header       caviarNineHeader  `json:"header"`
}

type caviarNineResponse struct {
	Result *caviarNineResult `json:"result"`
}

// FetchBatch quotes each identifier against the base-currency reserve.
func (c *CaviarNine) FetchBatch(ctx context.Context, identifiers []string, opts feed.FetchOptions) (map[string]feed.Result, error) {
	results := make(map[string]feed.Result)

	for _, id := range identifiers {
		result, err := c.fetchQuote(ctx, id, opts)
		if err != nil {
			c.logger.Error("caviarnine quote failed", "identifier", id, "error", err)
			continue
		}
		results[id] = result
	}

	c.logger.Info("caviarnine batch complete",
		"requested", len(identifiers), "returned", len(results))

	return results, nil
}

func (c *CaviarNine) fetchQuote(ctx context.Context, buyResource string, opts feed.FetchOptions) (feed.Result, error) {
	query := url.Values{}
	query.Set("sell_resource_amount", c.swapAmount)
	query.Set("sell_resource_address", c.baseResource)
	query.Set("buy_resource_address", buyResource)
	endpoint := c.baseURL + "/v1.0/aggregator/solve?" + query.Encode()

	var payload caviarNineResponse
	if err := fetchJSON(ctx, c.client, endpoint, opts.Timeout, &payload); err != nil {
		return feed.Result{}, err
	}

	result := payload.Result
	if result == nil {
		return feed.Result{}, fmt.Errorf("%w: missing result", feed.ErrInvalidResponse)
	}
	if result.Status != "Succeeded" {
		return feed.Result{}, fmt.Errorf("%w: status %q (%s)", feed.ErrQuoteFailed, result.Status, result.ErrorMessage)
	}

	price := result.Details.MidPriceBuyToSell.String()
	if err := feed.ValidatePrice(price); err != nil {
		return feed.Result{}, err
	}

	var publishTime int64
	if result.Header.UnixTimestampMS > 0 {
		publishTime = result.Header.UnixTimestampMS / 1000
	}

	return feed.Result{
		Price:       price,
		Currency:    feed.CurrencyBase,
		PublishTime: publishTime,
	}, nil
}
