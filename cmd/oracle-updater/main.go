package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tc.com/oracle-updater/pkg/config"
	"tc.com/oracle-updater/pkg/feed"
	"tc.com/oracle-updater/pkg/feed/plugins"
	"tc.com/oracle-updater/pkg/logging"
	"tc.com/oracle-updater/pkg/metrics"
	"tc.com/oracle-updater/pkg/oracle"
	"tc.com/oracle-updater/pkg/version"
)

var (
	configFile = flag.String("config", "config/config.yaml", "Path to configuration file")
	showVer    = flag.Bool("version", false, "Show version and exit")
	interval   = flag.Duration("interval", 0, "Run continuously at this interval (0 = run once)")
)

func main() {
	flag.Parse()

	if *showVer {
		fmt.Printf("oracle-updater version %s\n", version.Version)
		os.Exit(0)
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.Init(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	logging.SetGlobal(logger)

	logger.Info("Starting oracle-updater", "version", version.Version)

	metrics.Init()
	if cfg.Metrics.Enabled {
		go func() {
			logger.Info("Serving metrics", "addr", cfg.Metrics.Addr, "path", cfg.Metrics.Path)
			if err := metrics.ServeHTTP(cfg.Metrics.Addr, cfg.Metrics.Path); err != nil {
				logger.Error("Metrics server stopped", "error", err)
			}
		}()
	}

	registry := buildRegistry(cfg, logger)
	opts := oracle.Options{
		Fetch: feed.FetchOptions{
			Timeout: cfg.Fetch.Timeout.ToDuration(),
			MaxAge:  cfg.Fetch.MaxAge.ToDuration(),
		},
		Priority: cfg.Priority,
		Manifest: oracle.ManifestParams{
			AccountAddress:   cfg.Manifest.AccountAddress,
			BadgeResource:    cfg.Manifest.BadgeResource,
			BadgeID:          cfg.Manifest.BadgeID,
			ComponentAddress: cfg.Manifest.ComponentAddress,
		},
	}

	if *interval <= 0 {
		if err := runOnce(context.Background(), cfg, registry, opts, logger); err != nil {
			os.Exit(1)
		}
		return
	}

	runLoop(cfg, registry, opts, logger)
}

func buildRegistry(cfg *config.Config, logger *logging.Logger) *feed.Registry {
	client := &http.Client{}

	registry := feed.NewRegistry()
	registry.Register(plugins.NewPyth(cfg.Plugins.Pyth.BaseURL, client, logger))
	registry.Register(plugins.NewCoinGecko(cfg.Plugins.CoinGecko.BaseURL, cfg.Plugins.CoinGecko.APIKey, client, logger))
	registry.Register(plugins.NewCaviarNine(
		cfg.Plugins.CaviarNine.BaseURL,
		cfg.Plugins.CaviarNine.BaseResource,
		cfg.Plugins.CaviarNine.SwapAmount,
		client, logger))
	registry.Register(plugins.NewAstrolescent(cfg.Plugins.Astrolescent.URL, client, logger))
	return registry
}

func runOnce(ctx context.Context, cfg *config.Config, registry *feed.Registry, opts oracle.Options, logger *logging.Logger) error {
	result, err := oracle.Run(ctx, &cfg.Catalog, registry, opts, logger)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(result); err != nil {
		logger.Error("Failed to encode run result", "error", err)
		return err
	}
	return nil
}

func runLoop(cfg *config.Config, registry *feed.Registry, opts oracle.Options, logger *logging.Logger) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(*interval)
	defer ticker.Stop()

	logger.Info("Running on interval", "interval", interval.String())

	// First run immediately, then on every tick. Failed runs are logged by
	// the engine and retried on the next tick.
	_ = runOnce(ctx, cfg, registry, opts, logger)

	for {
		select {
		case sig := <-sigChan:
			logger.Info("Received signal, shutting down", "signal", sig.String())
			return
		case <-ticker.C:
			_ = runOnce(ctx, cfg, registry, opts, logger)
		}
	}
}
