package metric

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Build result labels
const (
	ResultOK      = "ok"
	ResultInvalid = "invalid"
	ResultFatal   = "fatal"
)

// Metrics contains the pipeline build metrics every host records
type Metrics struct {
	BuildsTotal   *prometheus.CounterVec
	BuildDuration *prometheus.HistogramVec
	NodesCreated  *prometheus.CounterVec
	LinksTotal    *prometheus.CounterVec
	WarningsTotal *prometheus.CounterVec
}

// NewMetrics creates a new Metrics instance with all build metrics
func NewMetrics() *Metrics {
	return &Metrics{
		BuildsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "depthai",
				Subsystem: "pipeline",
				Name:      "builds_total",
				Help:      "Total number of pipeline builds by result (ok, invalid, fatal)",
			},
			[]string{"variant", "result"},
		),

		BuildDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "depthai",
				Subsystem: "pipeline",
				Name:      "build_duration_seconds",
				Help:      "Pipeline build duration in seconds",
				Buckets:   []float64{.0005, .001, .005, .01, .05, .1, .5, 1, 5},
			},
			[]string{"variant"},
		),

		NodesCreated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "depthai",
				Subsystem: "pipeline",
				Name:      "nodes_created_total",
				Help:      "Total number of nodes handed to the caller by successful builds",
			},
			[]string{"variant", "kind"},
		),

		LinksTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "depthai",
				Subsystem: "pipeline",
				Name:      "links_total",
				Help:      "Total number of link directives emitted by successful builds",
			},
			[]string{"variant"},
		),

		WarningsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "depthai",
				Subsystem: "pipeline",
				Name:      "warnings_total",
				Help:      "Total number of non-fatal build warnings",
			},
			[]string{"variant", "reason"},
		),
	}
}

// RecordBuild increments the build counter for a result
func (c *Metrics) RecordBuild(variant, result string) {
	if c == nil {
		return
	}
	c.BuildsTotal.WithLabelValues(variant, result).Inc()
}

// RecordBuildDuration records how long a build took
func (c *Metrics) RecordBuildDuration(variant string, duration time.Duration) {
	if c == nil {
		return
	}
	c.BuildDuration.WithLabelValues(variant).Observe(duration.Seconds())
}

// RecordNodeCreated increments the node counter for a node kind
func (c *Metrics) RecordNodeCreated(variant, kind string) {
	if c == nil {
		return
	}
	c.NodesCreated.WithLabelValues(variant, kind).Inc()
}

// RecordLinks adds n emitted link directives
func (c *Metrics) RecordLinks(variant string, n int) {
	if c == nil {
		return
	}
	c.LinksTotal.WithLabelValues(variant).Add(float64(n))
}

// RecordWarning increments the warning counter
func (c *Metrics) RecordWarning(variant, reason string) {
	if c == nil {
		return
	}
	c.WarningsTotal.WithLabelValues(variant, reason).Inc()
}
