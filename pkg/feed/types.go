package feed

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Currency tags the denomination of a price value
type Currency string

const (
	// CurrencyUSD marks prices denominated in US dollars.
	CurrencyUSD Currency = "USD"
	// CurrencyBase marks prices already denominated in the base currency.
	CurrencyBase Currency = "BASE"
)

// Result is one price produced by a plugin for one identifier. Results are
// immutable after creation and owned by the per-run plugin cache.
type Result struct {
	Price       string            `json:"price"`
	Currency    Currency          `json:"currency"`
	PublishTime int64             `json:"publish_time,omitempty"` // unix seconds, 0 = unknown
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// FetchOptions bounds a batch fetch.
type FetchOptions struct {
	// Timeout bounds each outbound batch request.
	Timeout time.Duration
	// MaxAge is the staleness threshold for plugins that track publish
	// times. Zero means no limit.
	MaxAge time.Duration
}

// Plugin is the capability every price feed implements. FetchBatch must not
// fail for individual identifiers it cannot price; it omits them from the
// result map. An error return means the whole batch failed (transport,
// timeout) and callers treat it as zero results for this plugin in this run.
type Plugin interface {
	// Name returns the unique name of this plugin.
	Name() string

	// Currency returns the denomination of every price this plugin reports.
	Currency() Currency

	// FetchBatch fetches prices for a set of identifiers in one pass.
	FetchBatch(ctx context.Context, identifiers []string, opts FetchOptions) (map[string]Result, error)
}

// Validator is an optional plugin refinement applying source-specific
// validity rules, e.g. rejecting results older than opts.MaxAge. Plugins
// without it are treated as always valid once a result is present.
type Validator interface {
	IsResultValid(result Result, opts FetchOptions) bool
}

// Valid reports whether the plugin considers result usable.
func Valid(p Plugin, result Result, opts FetchOptions) bool {
	if v, ok := p.(Validator); ok {
		return v.IsResultValid(result, opts)
	}
	return true
}

// ValidatePrice checks that a price string parses as a positive decimal.
// Plugins run every externally sourced value through this before emitting it.
func ValidatePrice(price string) error {
	d, err := decimal.NewFromString(price)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidPrice, price)
	}
	if d.Sign() <= 0 {
		return fmt.Errorf("%w: %q", ErrNonPositivePrice, price)
	}
	return nil
}
