package pipeline

import (
	"context"

	"github.com/contoroinc/depthai-ros/device"
	"github.com/contoroinc/depthai-ros/node"
)

// Stereo is the two mono stereo-source cameras. It never reads the NN type.
type Stereo struct{}

// NewStereo creates the Stereo variant
func NewStereo() Variant {
	return &Stereo{}
}

// Name returns the registered variant name
func (v *Stereo) Name() string {
	return "Stereo"
}

// CreatePipeline returns left, right
func (v *Stereo) CreatePipeline(ctx context.Context, host *node.Host, dev device.Device,
	pl *device.Pipeline, _ string) ([]node.Node, error) {
	b := newBuild(v.Name(), host, dev, pl)

	left, err := b.sensor(ctx, NameLeft, device.CamB)
	if err != nil {
		return nil, b.fail(err)
	}
	right, err := b.sensor(ctx, NameRight, device.CamC)
	if err != nil {
		return nil, b.fail(err)
	}

	return b.result(nil, left, right), nil
}
