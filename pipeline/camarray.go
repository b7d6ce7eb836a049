package pipeline

import (
	"context"
	"fmt"

	"github.com/contoroinc/depthai-ros/device"
	"github.com/contoroinc/depthai-ros/errors"
	"github.com/contoroinc/depthai-ros/node"
)

// CamArray creates one sensor per connected camera, in the order the device
// reports them. It is the only variant whose layout depends on the hardware.
// The NN type is never read.
type CamArray struct{}

// NewCamArray creates the CamArray variant
func NewCamArray() Variant {
	return &CamArray{}
}

// Name returns the registered variant name
func (v *CamArray) Name() string {
	return "CamArray"
}

// CreatePipeline returns one sensor per reported camera, named after its socket
func (v *CamArray) CreatePipeline(ctx context.Context, host *node.Host, dev device.Device,
	pl *device.Pipeline, _ string) ([]node.Node, error) {
	if dev == nil {
		return nil, errors.WrapFatal(
			fmt.Errorf("%w: nil device", errors.ErrHardwareQuery),
			v.Name(), "CreatePipeline", "camera feature query")
	}

	b := newBuild(v.Name(), host, dev, pl)

	features, err := b.dev.ConnectedCameraFeatures(ctx)
	if err != nil {
		return nil, errors.WrapFatal(
			fmt.Errorf("%w: %w", errors.ErrHardwareQuery, err),
			v.Name(), "CreatePipeline", "camera feature query")
	}

	if len(features) == 0 {
		host.GetLogger().Warn("Device reports no cameras", "variant", v.Name())
	}

	nodes := make([]node.Node, 0, len(features))
	for _, f := range features {
		s, err := b.sensor(ctx, device.SocketName(f.Socket), f.Socket)
		if err != nil {
			return nil, b.fail(err)
		}
		nodes = append(nodes, s)
	}

	return b.result(nil, nodes...), nil
}
