// Package oracle implements the multi-source price resolution engine: the
// batched priority prefetch, the per-asset fallback resolution, reference
// rate discovery, and assembly of the final payload.
package oracle

import (
	"tc.com/oracle-updater/pkg/feed"
)

// SourceFixed is the source tag for assets priced by a configured constant.
const SourceFixed = "fixed"

// Cache maps plugin name -> identifier -> fetched result. It is built once
// during prefetch, read-only during resolution, and discarded at the end of
// the run.
type Cache map[string]map[string]feed.Result

// Lookup returns the cached result for an identifier under a plugin.
func (c Cache) Lookup(plugin, identifier string) (feed.Result, bool) {
	results, ok := c[plugin]
	if !ok {
		return feed.Result{}, false
	}
	result, ok := results[identifier]
	return result, ok
}

// put stores a result, creating the per-plugin map on first use.
func (c Cache) put(plugin, identifier string, result feed.Result) {
	results, ok := c[plugin]
	if !ok {
		results = make(map[string]feed.Result)
		c[plugin] = results
	}
	results[identifier] = result
}

// Quote is a price selected for an asset before currency normalization.
type Quote struct {
	Price       string
	Currency    feed.Currency
	Source      string
	PublishTime int64
}

// ResolvedPrice is one priced asset, in base currency, ready for the
// assembler. USDPrice and ReferenceRate are set when a conversion occurred.
type ResolvedPrice struct {
	Symbol        string `json:"symbol"`
	ID            string `json:"id"`
	Price         string `json:"price"`
	Source        string `json:"source"`
	PublishTime   int64  `json:"publish_time,omitempty"`
	USDPrice      string `json:"usd_price,omitempty"`
	ReferenceRate string `json:"reference_rate,omitempty"`
}

// Result is the outcome of one run, handed to the transaction layer.
type Result struct {
	RunID           string          `json:"run_id"`
	ReferenceRate   string          `json:"reference_rate"`
	ReferenceSource string          `json:"reference_source"`
	Prices          []ResolvedPrice `json:"prices"`
	Manifest        string          `json:"manifest"`
}

// Options carries everything a run needs beyond the catalog and registry.
type Options struct {
	// Fetch bounds every plugin batch call.
	Fetch feed.FetchOptions
	// Priority is the fixed order plugins are consulted in during prefetch.
	Priority []string
	// Manifest configures the rendered transaction manifest.
	Manifest ManifestParams
}
