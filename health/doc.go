// Package health tracks the outcome of pipeline builds as health statuses.
//
// Every build ends in one of three states:
//   - Healthy: every node is wired into one graph
//   - Degraded: the build succeeded with warnings, such as disconnected nodes
//     or a requested network the topology could not wire
//   - Unhealthy: the build failed and no pipeline exists
//
// A Monitor keeps the latest status per pipeline type and aggregates them for
// the process health endpoint:
//
//	monitor := health.NewMonitor()
//	monitor.Update("RGBD", health.NewHealthy("RGBD", "Pipeline built"))
//	monitor.Update("Rae", health.FromBuildError("Rae", err))
//
//	system := monitor.AggregateHealth("depthai")
//	if system.IsUnhealthy() {
//		// at least one build failed
//	}
//
// Error messages are sanitized before they are stored, since configuration
// errors often carry file paths.
package health
