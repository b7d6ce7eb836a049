// Package depthairos builds camera-device pipeline topologies: the set of
// sensor, stereo-depth and neural-network nodes a DepthAI device runs, and the
// links between their ports.
//
// # Layout
//
// A build is driven by three inputs: a pipeline type, an NN operating mode and
// the hardware profile the device reports.
//
//   - pipeline: the seven topology variants (RGB, RGBD, RGBStereo, Stereo,
//     Depth, CamArray, Rae), the variant registry and Assemble, which runs a
//     variant and validates the resulting graph
//   - pipelineregistry: registers the built-in variants
//   - node: processing nodes, their indexed ports and the build host carrying
//     logger, metrics and health
//   - device: camera features, sockets, the node-allocating pipeline and device
//     wrappers (static profiles, per-build snapshots, retrying queries)
//   - nnmode: parsing of the NN operating mode (None, RGB, Spatial)
//   - flowgraph: connectivity analysis and wiring validation
//   - config: JSON/YAML configuration with schema validation and env overrides
//   - metric, health: Prometheus metrics and build health reporting
//   - errors: classified errors (transient, invalid, fatal)
//
// # Builds
//
// Builds are all-or-nothing. A variant that fails part way releases every node
// it created, in reverse order, before returning the error:
//
//	registry := pipeline.NewRegistry()
//	if err := pipelineregistry.Register(registry); err != nil {
//	    return err
//	}
//	graph, err := pipeline.Assemble(ctx, registry, "RGBD", host, dev, device.NewPipeline(), "spatial")
//	if err != nil {
//	    return err
//	}
//	defer graph.Release()
//
// Requesting a spatial network from a variant without a depth source logs a
// warning and builds the topology without the network.
//
// The depthai-pipeline command under cmd/ wraps this for offline planning
// against a configured device profile.
package depthairos
