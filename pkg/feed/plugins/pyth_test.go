package plugins

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tc.com/oracle-updater/pkg/feed"
	"tc.com/oracle-updater/pkg/logging"
)

func TestPythFetchBatch(t *testing.T) {
	var requestedIDs []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestedIDs = r.URL.Query()["ids[]"]
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"parsed": [
				{"id": "0xaabbcc", "price": {"price": "123456789", "expo": -8, "publish_time": 1700000000}},
				{"id": "ddeeff", "price": {"price": "500", "expo": -2, "publish_time": 1700000001}},
				{"id": "badfeed", "price": {"price": "oops", "expo": -2}}
			]
		}`))
	}))
	defer server.Close()

	plugin := NewPyth(server.URL, server.Client(), logging.NewNoopLogger())
	results, err := plugin.FetchBatch(context.Background(), []string{"aabbcc", "ddeeff", "badfeed"}, feed.FetchOptions{Timeout: 2 * time.Second})
	require.NoError(t, err)

	assert.Equal(t, []string{"aabbcc", "ddeeff", "badfeed"}, requestedIDs)

	// 0x prefix stripped, mantissa/exponent decoded exactly.
	got, ok := results["aabbcc"]
	require.True(t, ok, "expected a result for aabbcc")
	assert.Equal(t, "1.23456789", got.Price)
	assert.Equal(t, feed.CurrencyUSD, got.Currency)
	assert.Equal(t, int64(1700000000), got.PublishTime)
	assert.Equal(t, "-8", got.Metadata["expo"])

	got, ok = results["ddeeff"]
	require.True(t, ok)
	assert.Equal(t, "5.00", got.Price)

	// Malformed entries are omitted, not fatal.
	_, ok = results["badfeed"]
	assert.False(t, ok)
}

func TestPythFetchBatchTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	plugin := NewPyth(server.URL, server.Client(), logging.NewNoopLogger())
	_, err := plugin.FetchBatch(context.Background(), []string{"aabbcc"}, feed.FetchOptions{Timeout: 2 * time.Second})
	require.Error(t, err)
	assert.True(t, errors.Is(err, feed.ErrUnexpectedStatus))
}

func TestPythFetchBatchEmpty(t *testing.T) {
	plugin := NewPyth("http://localhost:0", http.DefaultClient, logging.NewNoopLogger())
	results, err := plugin.FetchBatch(context.Background(), nil, feed.FetchOptions{})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestPythIsResultValid(t *testing.T) {
	plugin := NewPyth("http://unused", http.DefaultClient, logging.NewNoopLogger())
	now := time.Unix(1700000100, 0)
	plugin.now = func() time.Time { return now }

	fresh := feed.Result{Price: "1", PublishTime: 1700000090}
	stale := feed.Result{Price: "1", PublishTime: 1700000000}
	unknown := feed.Result{Price: "1"}

	opts := feed.FetchOptions{MaxAge: 60 * time.Second}
	assert.True(t, plugin.IsResultValid(fresh, opts))
	assert.False(t, plugin.IsResultValid(stale, opts))
	assert.True(t, plugin.IsResultValid(unknown, opts), "results without publish time pass")

	// No MaxAge configured means no staleness limit.
	assert.True(t, plugin.IsResultValid(stale, feed.FetchOptions{}))
}
