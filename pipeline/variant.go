// Package pipeline builds camera pipeline topologies.
//
// A Variant is one named topology strategy. Given the host context, a device
// handle, the hardware pipeline and a requested NN type, it constructs the
// sensor and stereo nodes of its fixed layout, optionally attaches a detection
// network and returns every node it created in a significant order: the
// network first when there is one, then the primary sensor, then the rest.
//
// Variants are registered by name in a Registry; Assemble looks one up, runs
// it and validates the result:
//
//	registry := pipeline.NewRegistry()
//	if err := pipelineregistry.Register(registry); err != nil {
//		return err
//	}
//	graph, err := pipeline.Assemble(ctx, registry, "RGBD", host, dev, pl, "spatial")
//	if err != nil {
//		return err
//	}
//	defer graph.Release()
//
// A build is all or nothing. When any step fails, every node the variant
// created is closed again before the error is returned, so the hardware
// pipeline holds no records from the failed build.
package pipeline

import (
	"context"

	"github.com/contoroinc/depthai-ros/device"
	"github.com/contoroinc/depthai-ros/node"
)

// Node names shared by the variants
const (
	NameNN          = "nn"
	NameRGB         = "rgb"
	NameStereo      = "stereo"
	NameLeft        = "left"
	NameRight       = "right"
	NameStereoFront = "stereo_front"
	NameStereoBack  = "stereo_back"
)

// Variant is a named topology strategy.
type Variant interface {
	// Name returns the registered variant name, e.g. "RGBD".
	Name() string

	// CreatePipeline constructs the variant's nodes in pl and returns them in
	// order. Ownership of the nodes passes to the caller.
	CreatePipeline(ctx context.Context, host *node.Host, dev device.Device,
		pl *device.Pipeline, nnType string) ([]node.Node, error)
}

// Factory creates a variant instance
type Factory func() Variant
