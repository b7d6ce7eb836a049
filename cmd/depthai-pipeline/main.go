// Package main implements depthai-pipeline, a command that builds a camera
// pipeline topology from configuration against the configured device profile
// and prints the resulting graph.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"gopkg.in/yaml.v3"

	"github.com/contoroinc/depthai-ros/config"
	"github.com/contoroinc/depthai-ros/device"
	pkgerrors "github.com/contoroinc/depthai-ros/errors"
	"github.com/contoroinc/depthai-ros/health"
	"github.com/contoroinc/depthai-ros/metric"
	"github.com/contoroinc/depthai-ros/node"
	"github.com/contoroinc/depthai-ros/pipeline"
	"github.com/contoroinc/depthai-ros/pipelineregistry"
	"github.com/contoroinc/depthai-ros/pkg/retry"
)

// Build information constants
const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "depthai-pipeline"
)

func main() {
	// Add panic recovery
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		code := exitCode(err)
		slog.Error("Application failed", "error", err, "exit_code", code)
		cancel()
		os.Exit(code)
	}
}

// Exit codes by error class
const (
	exitFatal     = 1
	exitUsage     = 64
	exitTransient = 75
)

// exitCode maps a run error to the process exit status by its class
func exitCode(err error) int {
	switch pkgerrors.Classify(err) {
	case pkgerrors.ErrorInvalid:
		return exitUsage
	case pkgerrors.ErrorTransient:
		return exitTransient
	default:
		return exitFatal
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// Parse and validate CLI flags
	cliCfg, logger, shouldExit, err := initializeCLI(args, stdout, stderr)
	if shouldExit || err != nil {
		return err
	}

	// Load and validate configuration
	cfg, err := initializeConfiguration(cliCfg)
	if err != nil {
		return err
	}

	if cliCfg.Validate {
		logger.Info("Configuration is valid",
			"pipeline_type", cfg.Camera.PipelineType,
			"nn_type", cfg.Camera.NNType)
		return nil
	}

	registry := pipeline.NewRegistry()
	if err := pipelineregistry.Register(registry); err != nil {
		return fmt.Errorf("register pipeline types: %w", err)
	}
	logger.Debug("Pipeline types registered", "types", registry.Names())

	if cliCfg.List {
		return render(stdout, registry.ListVariants(), cliCfg.Output)
	}

	metricsRegistry := metric.NewMetricsRegistry()
	dev, err := setupDevice(cfg, metricsRegistry)
	if err != nil {
		return err
	}

	monitor := health.NewMonitor()
	host := node.NewHost(cfg, logger, metricsRegistry)
	host.Health = monitor
	pl := device.NewPipeline()

	graph, err := pipeline.Assemble(ctx, registry, cfg.Camera.PipelineType, host, dev, pl, cfg.Camera.NNType)
	if err != nil {
		return fmt.Errorf("build pipeline: %w", err)
	}
	defer func() {
		if err := graph.Release(); err != nil {
			logger.Warn("Pipeline release failed", "error", err)
		}
	}()

	if status, ok := monitor.Get(graph.Variant); ok && status.IsDegraded() {
		logger.Warn("Pipeline built degraded", "status", status.Message, "issues", status.Build.Issues)
	}

	if err := render(stdout, graph.Summary(), cliCfg.Output); err != nil {
		return err
	}

	if cliCfg.MetricsAddr == "" {
		return nil
	}
	return serveMetrics(ctx, cliCfg, metricsRegistry, monitor, logger)
}

// initializeCLI parses flags and sets up logging
func initializeCLI(args []string, stdout, stderr io.Writer) (*CLIConfig, *slog.Logger, bool, error) {
	cliCfg, err := parseFlags(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, nil, true, err
		}
		return nil, nil, true, pkgerrors.WrapInvalid(err, "CLI", "initializeCLI", "flag parsing")
	}
	if err := validateFlags(cliCfg); err != nil {
		return nil, nil, false, pkgerrors.WrapInvalid(err, "CLI", "initializeCLI", "flag validation")
	}

	if cliCfg.ShowVersion {
		_, _ = fmt.Fprintf(stdout, "%s version %s\n", appName, Version)
		return nil, nil, true, nil
	}

	if cliCfg.ShowHelp {
		printHelp(stdout)
		return nil, nil, true, nil
	}

	logger := setupLogger(stderr, cliCfg.LogLevel, cliCfg.LogFormat)
	slog.SetDefault(logger)

	logger.Debug("Starting depthai-pipeline",
		"version", Version,
		"build_time", BuildTime,
		"config_path", cliCfg.ConfigPath)

	return cliCfg, logger, false, nil
}

// initializeConfiguration loads the configuration and applies flag overrides
func initializeConfiguration(cliCfg *CLIConfig) (*config.Config, error) {
	cfg, err := loadConfig(cliCfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if cliCfg.Pipeline != "" {
		cfg.Camera.PipelineType = cliCfg.Pipeline
	}
	if cliCfg.NNType != "" {
		cfg.Camera.NNType = cliCfg.NNType
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// loadConfig loads configuration from path, or the built-in defaults when path is empty
func loadConfig(path string) (*config.Config, error) {
	loader := config.NewLoader()
	if path != "" {
		loader.AddLayer(path)
	}
	cfg, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// setupDevice creates the device from the configured profile and records its camera count
func setupDevice(cfg *config.Config, metricsRegistry *metric.MetricsRegistry) (device.Device, error) {
	profile, err := cfg.Device.Profile()
	if err != nil {
		return nil, fmt.Errorf("device profile: %w", err)
	}

	cameras := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "depthai",
		Subsystem: "device",
		Name:      "cameras",
		Help:      "Number of cameras the device reports",
	}, []string{"device"})
	if err := metricsRegistry.RegisterGaugeVec(appName, "device_cameras", cameras); err != nil {
		return nil, fmt.Errorf("register device metrics: %w", err)
	}
	cameras.WithLabelValues(cfg.Device.Name).Set(float64(len(profile)))

	dev := device.NewStaticDevice(cfg.Device.Name, profile...)
	return device.NewRetrying(dev, retry.DefaultConfig().WithAttempts(cfg.Device.Attempts())), nil
}

// serveMetrics exposes the build metrics until ctx is cancelled
func serveMetrics(ctx context.Context, cliCfg *CLIConfig, metricsRegistry *metric.MetricsRegistry,
	monitor *health.Monitor, logger *slog.Logger) error {
	server := metric.NewServer(cliCfg.MetricsAddr, "/metrics", metricsRegistry).WithHealth(appName, monitor)
	if err := server.Start(); err != nil {
		return fmt.Errorf("start metrics server: %w", err)
	}
	logger.Info("Serving metrics, interrupt to exit", "address", server.Address())

	<-ctx.Done()
	logger.Info("Received shutdown signal")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cliCfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

// render writes v to w as JSON or YAML
func render(w io.Writer, v any, format string) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	}
}
