package plugins

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tc.com/oracle-updater/pkg/feed"
	"tc.com/oracle-updater/pkg/logging"
)

func TestAstrolescentFetchBatch(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"resource_abc": {"symbol": "ABC", "name": "Alphabet Coin", "tokenPriceXRD": 12.5, "updatedAt": "2023-11-14T22:13:20Z"},
			"resource_def": {"symbol": "DEF", "name": "Deaf Coin", "tokenPriceXRD": "0", "updatedAt": "bogus"},
			"resource_ghi": {"symbol": "GHI", "name": "Ghillie Coin", "tokenPriceXRD": "0.0004"}
		}`))
	}))
	defer server.Close()

	plugin := NewAstrolescent(server.URL, server.Client(), logging.NewNoopLogger())
	results, err := plugin.FetchBatch(context.Background(),
		[]string{"resource_abc", "resource_def", "resource_ghi", "resource_gone"},
		feed.FetchOptions{Timeout: 2 * time.Second})
	require.NoError(t, err)

	// The full table is fetched once regardless of batch size.
	assert.Equal(t, 1, requests)

	got, ok := results["resource_abc"]
	require.True(t, ok)
	assert.Equal(t, "12.5", got.Price)
	assert.Equal(t, feed.CurrencyBase, got.Currency)
	assert.Equal(t, int64(1700000000), got.PublishTime)
	assert.Equal(t, "ABC", got.Metadata["symbol"])
	assert.Equal(t, "Alphabet Coin", got.Metadata["name"])

	got, ok = results["resource_ghi"]
	require.True(t, ok)
	assert.Equal(t, "0.0004", got.Price)
	assert.Zero(t, got.PublishTime, "missing timestamp leaves publish time unset")

	// Zero prices and identifiers absent from the table are dropped.
	_, ok = results["resource_def"]
	assert.False(t, ok)
	_, ok = results["resource_gone"]
	assert.False(t, ok)
}

func TestAstrolescentFetchBatchEmpty(t *testing.T) {
	plugin := NewAstrolescent("http://localhost:0", http.DefaultClient, logging.NewNoopLogger())
	results, err := plugin.FetchBatch(context.Background(), nil, feed.FetchOptions{})
	require.NoError(t, err)
	assert.Empty(t, results)
}
