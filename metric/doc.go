// Package metric provides Prometheus-based metrics for pipeline builds.
//
// A MetricsRegistry wraps a private prometheus.Registry. It always carries the
// core build metrics (Metrics) and accepts host-specific collectors through the
// MetricsRegistrar interface. Server exposes the registry over HTTP for as long
// as a host keeps a built pipeline open.
//
// # Core Metrics
//
// All core metrics use the namespace "depthai" and subsystem "pipeline":
//
//   - builds_total{variant,result}: one increment per build, result is ok, invalid or fatal
//   - build_duration_seconds{variant}: wall time of each build
//   - nodes_created_total{variant,kind}: nodes handed to the caller
//   - links_total{variant}: link directives emitted
//   - warnings_total{variant,reason}: absorbed warnings such as an unsupported NN type
//
// Recording goes through the Record methods:
//
//	registry := metric.NewMetricsRegistry()
//	core := registry.CoreMetrics()
//	core.RecordBuild("RGBD", metric.ResultOK)
//	core.RecordBuildDuration("RGBD", time.Since(start))
//
// # Nil Registries
//
// A nil *MetricsRegistry returns nil from CoreMetrics, and every Record method
// on a nil *Metrics is a no-op. Library callers that do not care about metrics
// can leave the field unset.
//
// # Host Metrics
//
// Hosts register their own collectors under an owner name:
//
//	cameras := prometheus.NewGaugeVec(prometheus.GaugeOpts{
//	    Namespace: "depthai",
//	    Name:      "device_cameras",
//	    Help:      "Cameras reported by the device",
//	}, []string{"device"})
//	err := registry.RegisterGaugeVec("cli", "device_cameras", cameras)
//
// Registering the same owner and name twice returns an invalid classified error.
//
// # Thread Safety
//
// MetricsRegistry is safe for concurrent use. Prometheus collectors are
// themselves safe for concurrent updates.
package metric
