package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/maximewewer/chrony-exporter/internal/collector"
	"github.com/maximewewer/chrony-exporter/internal/config"
	"github.com/maximewewer/chrony-exporter/internal/server"
	"github.com/maximewewer/chrony-exporter/pkg/chrony"
	"github.com/maximewewer/chrony-exporter/pkg/logger"
	"github.com/maximewewer/chrony-exporter/pkg/metrics"
)

var (
	// Build information
	version = "dev"
	commit  = ""
)

func main() {
	// Parse command-line flags
	configFile := flag.String("config", "", "Path to configuration file")
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Parse()

	// Show version and exit if requested
	if *showVersion {
		// Use println for version output (user-facing, not logging)
		println("chrony-exporter version", version)
		os.Exit(0)
	}

	// Load configuration (before logger is initialized)
	cfg, err := loadConfig(*configFile)
	if err != nil {
		// Cannot use logger yet, write to stderr
		os.Stderr.WriteString("Failed to load configuration: " + err.Error() + "\n")
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.InitLogger(logger.Config{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		Output:     cfg.Logging.Output,
		FilePath:   cfg.Logging.FilePath,
		Component:  "chrony-exporter",
		EnableFile: cfg.Logging.EnableFile,
	}); err != nil {
		os.Stderr.WriteString("Failed to initialize logger: " + err.Error() + "\n")
		os.Exit(1)
	}

	// Log startup information
	logger.Startup(version, "", map[string]interface{}{
		"go_version": runtime.Version(),
		"config":     cfg,
	})

	// A missing transport means every query will fail; say so up front
	if !chrony.TransportAvailable() {
		logger.Warn("main", "No chrony transport registered, chronyd queries will report unavailable")
	}

	// Create metrics registry with custom namespace and subsystem from config
	registry := metrics.NewRegistryWithConfig(cfg.Metrics.Namespace, cfg.Metrics.Subsystem)
	if err := registry.Register(); err != nil {
		logger.Fatal("main", "Failed to register metrics", err)
	}

	// Get metrics instance
	m := registry.GetMetrics()

	// Set build info metric
	m.ExporterBuildInfo.WithLabelValues(version, commit, runtime.Version()).Set(1)

	// Create the chronyd client and register collectors
	client := collector.NewChronyClient(cfg)

	collectorRegistry := collector.NewRegistry()
	collectorRegistry.Register(collector.NewTrackingCollector(cfg, client, m))
	collectorRegistry.Register(collector.NewSourcesCollector(cfg, client, m))
	collectorRegistry.Register(collector.NewRTCCollector(cfg, client, m))
	collectorRegistry.Register(collector.NewCrosscheckCollector(cfg, client, m))

	logger.SafeInfo("main", "Registered collectors", map[string]interface{}{
		"total":      collectorRegistry.Count(),
		"enabled":    collectorRegistry.EnabledCount(),
		"crosscheck": cfg.Crosscheck.Enabled,
	})

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start HTTP server
	srv := server.New(cfg, registry.GetRegistry())
	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- srv.Start(ctx)
	}()

	// Start collection loop
	collectorErrChan := make(chan error, 1)
	go func() {
		collectorErrChan <- runCollectionLoop(ctx, cfg, collectorRegistry, m)
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.SafeInfo("main", "Received shutdown signal", map[string]interface{}{"signal": sig.String()})
		cancel()
	case err := <-serverErrChan:
		if err != nil {
			logger.Error("main", "Server error", err)
		}
		cancel()
	case err := <-collectorErrChan:
		if err != nil {
			logger.Error("main", "Collector error", err)
		}
		cancel()
	}

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("main", "Server shutdown error", err)
	}

	logger.Shutdown("graceful")
}

// loadConfig loads configuration based on whether a config file is specified
func loadConfig(configFile string) (*config.Config, error) {
	if configFile != "" {
		// Load from YAML file with environment variable overrides
		// Priority: Environment Variables > YAML File > Defaults
		return config.LoadFromYamlWithEnvOverrides(configFile)
	}
	// No config file specified, use environment variables only
	// Priority: Environment Variables > Defaults
	return config.LoadFromEnvVarsOnly()
}

// runCollectionLoop runs the metrics collection loop
func runCollectionLoop(
	ctx context.Context,
	cfg *config.Config,
	collectorRegistry *collector.Registry,
	m *metrics.ChronyMetrics,
) error {
	// Initial collection
	collectOnce(ctx, cfg, collectorRegistry, m)

	// Collection interval using configured scrape_interval
	ticker := time.NewTicker(cfg.Chrony.ScrapeInterval)
	defer ticker.Stop()

	logger.SafeInfo("main", "Collection loop started", map[string]interface{}{
		"scrape_interval": cfg.Chrony.ScrapeInterval,
	})

	for {
		select {
		case <-ctx.Done():
			logger.Info("main", "Collection loop stopped")
			return nil
		case <-ticker.C:
			collectOnce(ctx, cfg, collectorRegistry, m)
		}
	}
}

// collectOnce runs all collectors and records the scrape outcome
func collectOnce(
	ctx context.Context,
	cfg *config.Config,
	collectorRegistry *collector.Registry,
	m *metrics.ChronyMetrics,
) {
	start := time.Now()
	err := collectorRegistry.CollectAll(ctx)
	duration := time.Since(start)

	m.ExporterScrapeDuration.Observe(duration.Seconds())
	if err != nil {
		m.ExporterScrapesTotal.WithLabelValues("failure").Inc()
		logger.Warn("main", "Collection failed")
	} else {
		m.ExporterScrapesTotal.WithLabelValues("success").Inc()
	}

	logger.Metric("collection", cfg.Chrony.SocketPath, duration, err == nil)
}
