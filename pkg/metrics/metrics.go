// Package metrics provides Prometheus metrics for the oracle updater.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// PluginBatchesTotal is a counter of batch fetches issued per plugin.
	PluginBatchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "plugin_batches_total",
			Help: "Total number of batch fetches issued to feed plugins",
		},
		[]string{"plugin", "status"},
	)

	// PluginResultsTotal is a counter of results returned per plugin.
	PluginResultsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "plugin_results_total",
			Help: "Total number of price results returned by feed plugins",
		},
		[]string{"plugin"},
	)

	// AssetsResolvedTotal is a counter of resolved assets by winning source.
	AssetsResolvedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assets_resolved_total",
			Help: "Total number of assets resolved, by winning source",
		},
		[]string{"source"},
	)

	// AssetsFailedTotal is a counter of assets that exhausted their feed list.
	AssetsFailedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assets_failed_total",
			Help: "Total number of assets whose feed list yielded no valid price",
		},
		[]string{"symbol"},
	)

	// RunsTotal is a counter of oracle runs by outcome.
	RunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "oracle_runs_total",
			Help: "Total number of oracle runs",
		},
		[]string{"status"},
	)

	// RunDuration is a histogram of oracle run durations.
	RunDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "oracle_run_duration_seconds",
			Help:    "Duration of oracle runs",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10, 20, 30},
		},
	)

	// ReferenceRate is a gauge of the last established reference rate.
	ReferenceRate = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "reference_rate_usd",
			Help: "Last established USD price of one base-currency unit",
		},
	)
)

// Init registers all metrics with the default Prometheus registry.
func Init() {
	prometheus.MustRegister(
		PluginBatchesTotal,
		PluginResultsTotal,
		AssetsResolvedTotal,
		AssetsFailedTotal,
		RunsTotal,
		RunDuration,
		ReferenceRate,
	)
}

// ServeHTTP serves Prometheus metrics on the specified address and path.
func ServeHTTP(addr, path string) error {
	mux := http.NewServeMux()
	mux.Handle(path, promhttp.Handler())
	server := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return server.ListenAndServe()
}

// RecordPluginBatch records a completed batch fetch.
func RecordPluginBatch(plugin string, returned int) {
	PluginBatchesTotal.WithLabelValues(plugin, "ok").Inc()
	PluginResultsTotal.WithLabelValues(plugin).Add(float64(returned))
}

// RecordPluginFailure records a whole-batch fetch failure.
func RecordPluginFailure(plugin string) {
	PluginBatchesTotal.WithLabelValues(plugin, "error").Inc()
}

// RecordAssetResolved records an asset resolved by the given source.
func RecordAssetResolved(source string) {
	AssetsResolvedTotal.WithLabelValues(source).Inc()
}

// RecordAssetFailed records an asset that no feed could price.
func RecordAssetFailed(symbol string) {
	AssetsFailedTotal.WithLabelValues(symbol).Inc()
}

// RecordRun records the outcome and duration of a run.
func RecordRun(status string, duration time.Duration) {
	RunsTotal.WithLabelValues(status).Inc()
	RunDuration.Observe(duration.Seconds())
}
