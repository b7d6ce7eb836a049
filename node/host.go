package node

import (
	"log/slog"

	"github.com/contoroinc/depthai-ros/config"
	"github.com/contoroinc/depthai-ros/health"
	"github.com/contoroinc/depthai-ros/metric"
)

// Host carries what the hosting process provides to a build: logging, metrics,
// build health and per-node parameters. A nil *Host is valid and uses defaults
// throughout.
type Host struct {
	Logger  *slog.Logger            // Structured logger (can be nil, defaults to slog.Default())
	Metrics *metric.MetricsRegistry // Metrics registry (can be nil)
	Health  *health.Monitor         // Build health (can be nil)
	Params  map[string]config.NodeConfig
}

// NewHost creates a host from a loaded configuration
func NewHost(cfg *config.Config, logger *slog.Logger, metrics *metric.MetricsRegistry) *Host {
	h := &Host{
		Logger:  logger,
		Metrics: metrics,
	}
	if cfg != nil {
		h.Params = cfg.Nodes
	}
	return h
}

// GetLogger returns the configured logger or a default logger if none is provided
func (h *Host) GetLogger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// GetLoggerWithNode returns a logger configured with node context
func (h *Host) GetLoggerWithNode(name string) *slog.Logger {
	return h.GetLogger().With("node", name)
}

// CoreMetrics returns the build metrics, nil when metrics are disabled
func (h *Host) CoreMetrics() *metric.Metrics {
	if h == nil {
		return nil
	}
	return h.Metrics.CoreMetrics()
}

// HealthMonitor returns the build health monitor, nil when not tracked
func (h *Host) HealthMonitor() *health.Monitor {
	if h == nil {
		return nil
	}
	return h.Health
}

// NodeParams returns the parameters for a node name with defaults applied
func (h *Host) NodeParams(name string) config.NodeConfig {
	if h == nil {
		return config.NodeConfig{}.WithDefaults()
	}
	return h.Params[name].WithDefaults()
}
