package pipeline

import (
	"context"

	"github.com/contoroinc/depthai-ros/device"
	"github.com/contoroinc/depthai-ros/node"
)

// Depth is a single stereo depth node. It never reads the NN type.
type Depth struct{}

// NewDepth creates the Depth variant
func NewDepth() Variant {
	return &Depth{}
}

// Name returns the registered variant name
func (v *Depth) Name() string {
	return "Depth"
}

// CreatePipeline returns stereo
func (v *Depth) CreatePipeline(ctx context.Context, host *node.Host, dev device.Device,
	pl *device.Pipeline, _ string) ([]node.Node, error) {
	b := newBuild(v.Name(), host, dev, pl)

	stereo, err := b.stereo(ctx, NameStereo, device.CamB, device.CamC)
	if err != nil {
		return nil, b.fail(err)
	}

	return b.result(nil, stereo), nil
}
