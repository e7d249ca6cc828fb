// Package main is the entry point for the arbitrage engine.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/karb/arbitrage-engine/business/engine"
	"github.com/karb/arbitrage-engine/business/execution"
	"github.com/karb/arbitrage-engine/business/orderbook"
	"github.com/karb/arbitrage-engine/business/risk"
	"github.com/karb/arbitrage-engine/business/venue"
	"github.com/karb/arbitrage-engine/internal/apm"
	"github.com/karb/arbitrage-engine/internal/config"
	"github.com/karb/arbitrage-engine/internal/health"
	"github.com/karb/arbitrage-engine/internal/logger"
	"github.com/karb/arbitrage-engine/internal/metrics"
	"github.com/karb/arbitrage-engine/internal/monolith"
)

var (
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

func main() {
	_ = godotenv.Load()

	configPath := flag.String("config", "", "Path to configuration file")
	pairsPath := flag.String("pairs", "", "Path to a pairs file (overrides trading.pairs)")
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Parse()

	if *showVersion {
		fmt.Printf("arbitrage-engine %s (commit: %s, built: %s)\n", version, commit, buildDate)
		os.Exit(0)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	if err := run(ctx, *configPath, *pairsPath); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configPath, pairsPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if pairsPath != "" {
		cfg.Trading.Pairs = config.LoadPairs(pairsPath, cfg)
	}

	log := logger.New(os.Stderr, logger.ParseLevel(cfg.App.LogLevel))
	log.Info(ctx, "starting arbitrage engine", "version", version, "dry_run", cfg.DryRun)

	var traceProvider apm.TraceProvider
	if cfg.Telemetry.Enabled {
		if cfg.Telemetry.ServiceName != "" {
			os.Setenv("OTEL_SERVICE_NAME", cfg.Telemetry.ServiceName)
		}
		if cfg.Telemetry.OTLPEndpoint != "" {
			os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", cfg.Telemetry.OTLPEndpoint)
		}

		traceProvider = apm.NewTraceProvider(log, apm.WithProvider(apm.ZipkinProvider, log))
		log.Info(ctx, "tracing initialized", "provider", "zipkin", "endpoint", cfg.Telemetry.OTLPEndpoint)

		metrics.NewMetricProvider(
			metrics.WithServiceName(cfg.Telemetry.ServiceName),
			metrics.WithProviderConfig(metrics.ProviderCfg{Provider: metrics.PrometheusProvider}),
		)

		port := cfg.Telemetry.PrometheusPort
		if port == 0 {
			port = 9090
		}
		go metrics.ServePrometheusMetrics(metrics.WithPort(strconv.Itoa(port)))
		log.Info(ctx, "prometheus metrics server started", "port", port)
	}
	defer func() {
		if traceProvider != nil {
			traceProvider.Stop()
		}
	}()

	healthServer := health.NewServer(8081, version)
	if err := healthServer.Start(); err != nil {
		log.Warn(ctx, "failed to start health server", "error", err)
	} else {
		log.Info(ctx, "health server started", "port", 8081)
	}
	defer healthServer.Stop(ctx)

	mono, err := monolith.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to create monolith: %w", err)
	}
	defer mono.Close()

	modules := []monolith.Module{
		&venue.Module{},     // gateways/wrappers for both venues
		&orderbook.Module{}, // default pair's live books, fed by venue wrappers
		&risk.Module{},      // circuit breaker / position limiter / balance checker
		&execution.Module{}, // order dispatch
		&engine.Module{},    // tick loop tying all of the above together
	}

	if err := mono.RegisterModules(modules...); err != nil {
		return fmt.Errorf("failed to register modules: %w", err)
	}
	if err := mono.StartModules(ctx, modules...); err != nil {
		return fmt.Errorf("failed to start modules: %w", err)
	}

	log.Info(ctx, "all modules started")
	<-ctx.Done()
	log.Info(ctx, "shutting down")
	return nil
}
