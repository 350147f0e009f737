package plugins

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tc.com/oracle-updater/pkg/feed"
	"tc.com/oracle-updater/pkg/logging"
)

func TestCaviarNineFetchBatch(t *testing.T) {
	var queries []url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		queries = append(queries, r.URL.Query())
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Query().Get("buy_resource_address") {
		case "resource_good":
			_, _ = w.Write([]byte(`{
				"result": {
					"status": "Succeeded",
					"details": {"mid_price_buy_to_sell": "0.01633"},
					"header": {"unix_timestamp_ms": 1700000000123}
				}
			}`))
		case "resource_dry":
			_, _ = w.Write([]byte(`{
				"result": {"status": "Failed", "error_message": "no route found"}
			}`))
		default:
			_, _ = w.Write([]byte(`{}`))
		}
	}))
	defer server.Close()

	plugin := NewCaviarNine(server.URL, "resource_base", "100", server.Client(), logging.NewNoopLogger())
	results, err := plugin.FetchBatch(context.Background(),
		[]string{"resource_good", "resource_dry", "resource_odd"},
		feed.FetchOptions{Timeout: 2 * time.Second})
	require.NoError(t, err)

	// One quote request per identifier, each selling the same base amount.
	require.Len(t, queries, 3)
	for _, q := range queries {
		assert.Equal(t, "100", q.Get("sell_resource_amount"))
		assert.Equal(t, "resource_base", q.Get("sell_resource_address"))
	}
	assert.Equal(t, "resource_good", queries[0].Get("buy_resource_address"))
	assert.Equal(t, "resource_dry", queries[1].Get("buy_resource_address"))

	got, ok := results["resource_good"]
	require.True(t, ok)
	assert.Equal(t, "0.01633", got.Price)
	assert.Equal(t, feed.CurrencyBase, got.Currency)
	assert.Equal(t, int64(1700000000), got.PublishTime, "millisecond timestamp is reduced to seconds")

	// Failed and malformed quotes drop only their own identifier.
	_, ok = results["resource_dry"]
	assert.False(t, ok)
	_, ok = results["resource_odd"]
	assert.False(t, ok)
}

func TestCaviarNineFetchBatchEmpty(t *testing.T) {
	plugin := NewCaviarNine("http://localhost:0", "resource_base", "100", http.DefaultClient, logging.NewNoopLogger())
	results, err := plugin.FetchBatch(context.Background(), nil, feed.FetchOptions{})
	require.NoError(t, err)
	assert.Empty(t, results)
}
