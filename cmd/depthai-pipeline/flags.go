package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"time"
)

// CLIConfig holds command-line configuration
type CLIConfig struct {
	ConfigPath      string
	Pipeline        string
	NNType          string
	Output          string
	LogLevel        string
	LogFormat       string
	Debug           bool
	MetricsAddr     string
	ShutdownTimeout time.Duration
	ShowVersion     bool
	ShowHelp        bool
	Validate        bool
	List            bool
}

func parseFlags(args []string) (*CLIConfig, error) {
	cfg := &CLIConfig{}
	fs := newFlagSet(cfg)

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	// Override log level if debug is set
	if cfg.Debug {
		cfg.LogLevel = "debug"
	}

	return cfg, nil
}

func newFlagSet(cfg *CLIConfig) *flag.FlagSet {
	fs := flag.NewFlagSet(appName, flag.ContinueOnError)

	// Define flags with environment variable fallback
	fs.StringVar(&cfg.ConfigPath, "config",
		getEnv("DEPTHAI_CONFIG", ""),
		"Path to a JSON or YAML configuration file, built-in defaults when empty (env: DEPTHAI_CONFIG)")

	fs.StringVar(&cfg.ConfigPath, "c",
		getEnv("DEPTHAI_CONFIG", ""),
		"Path to a JSON or YAML configuration file (env: DEPTHAI_CONFIG)")

	fs.StringVar(&cfg.Pipeline, "pipeline", "",
		"Pipeline type, overrides camera.pipeline_type (e.g. RGBD, Rae)")

	fs.StringVar(&cfg.NNType, "nn-type", "",
		"NN type, overrides camera.nn_type: none, rgb, spatial")

	fs.StringVar(&cfg.Output, "output",
		getEnv("DEPTHAI_OUTPUT", "json"),
		"Output format: json, yaml (env: DEPTHAI_OUTPUT)")

	fs.StringVar(&cfg.LogLevel, "log-level",
		getEnv("DEPTHAI_LOG_LEVEL", "info"),
		"Log level: debug, info, warn, error (env: DEPTHAI_LOG_LEVEL)")

	fs.StringVar(&cfg.LogFormat, "log-format",
		getEnv("DEPTHAI_LOG_FORMAT", "text"),
		"Log format: json, text (env: DEPTHAI_LOG_FORMAT)")

	fs.BoolVar(&cfg.Debug, "debug",
		getEnvBool("DEPTHAI_DEBUG", false),
		"Enable debug logging (env: DEPTHAI_DEBUG)")

	fs.StringVar(&cfg.MetricsAddr, "metrics-addr",
		getEnv("DEPTHAI_METRICS_ADDR", ""),
		"Serve Prometheus metrics on this address and hold the pipeline until interrupted (env: DEPTHAI_METRICS_ADDR)")

	fs.DurationVar(&cfg.ShutdownTimeout, "shutdown-timeout",
		getEnvDuration("DEPTHAI_SHUTDOWN_TIMEOUT", 5*time.Second),
		"Metrics server shutdown timeout (env: DEPTHAI_SHUTDOWN_TIMEOUT)")

	fs.BoolVar(&cfg.ShowVersion, "version", false, "Show version information")
	fs.BoolVar(&cfg.ShowVersion, "v", false, "Show version information")
	fs.BoolVar(&cfg.ShowHelp, "help", false, "Show help information")
	fs.BoolVar(&cfg.ShowHelp, "h", false, "Show help information")
	fs.BoolVar(&cfg.Validate, "validate", false, "Validate configuration and exit")
	fs.BoolVar(&cfg.List, "list", false, "List the registered pipeline types and exit")

	// Custom usage
	fs.Usage = func() {
		printDetailedHelp(fs.Output(), fs)
	}

	return fs
}

func validateFlags(cfg *CLIConfig) error {
	// Skip validation for special flags
	if cfg.ShowVersion || cfg.ShowHelp {
		return nil
	}

	if cfg.ConfigPath != "" {
		if _, err := os.Stat(cfg.ConfigPath); err != nil {
			return fmt.Errorf("config file not found: %s", cfg.ConfigPath)
		}
	}

	if !slices.Contains([]string{"debug", "info", "warn", "error"}, cfg.LogLevel) {
		return fmt.Errorf("invalid log level: %s", cfg.LogLevel)
	}

	if !slices.Contains([]string{"json", "text"}, cfg.LogFormat) {
		return fmt.Errorf("invalid log format: %s", cfg.LogFormat)
	}

	if !slices.Contains([]string{"json", "yaml"}, cfg.Output) {
		return fmt.Errorf("invalid output format: %s", cfg.Output)
	}

	if cfg.ShutdownTimeout <= 0 {
		return fmt.Errorf("invalid shutdown timeout: %s", cfg.ShutdownTimeout)
	}

	return nil
}

func printHelp(w io.Writer) {
	printDetailedHelp(w, newFlagSet(&CLIConfig{}))
}

func printDetailedHelp(w io.Writer, fs *flag.FlagSet) {
	_, _ = fmt.Fprintf(w, `%s - camera pipeline topology builder

Usage: %s [options]

Options:
`, appName, appName)
	fs.SetOutput(w)
	fs.PrintDefaults()
	_, _ = fmt.Fprintf(w, `
Examples:
  # Build the default RGBD pipeline and print it
  %s

  # Build a spatial network on the Rae layout as YAML
  %s --config=configs/rae.yaml --pipeline=Rae --nn-type=spatial --output=yaml

  # Run with environment variables
  export DEPTHAI_PIPELINE_TYPE=CamArray
  export DEPTHAI_LOG_LEVEL=debug
  %s

  # Validate configuration only
  %s --config=configs/oak-d.json --validate

Version: %s
Build: %s
`, appName, appName, appName, appName, Version, BuildTime)
}

// Environment variable helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
