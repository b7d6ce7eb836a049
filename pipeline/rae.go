package pipeline

import (
	"context"

	"github.com/contoroinc/depthai-ros/device"
	"github.com/contoroinc/depthai-ros/nnmode"
	"github.com/contoroinc/depthai-ros/node"
)

// Rae is two stereo pairs, front and back. A network always runs on the front
// pair and is spatial in both NN modes; only the spatial mode feeds it depth.
// The back pair is never wired to the network.
type Rae struct{}

// NewRae creates the Rae variant
func NewRae() Variant {
	return &Rae{}
}

// Name returns the registered variant name
func (v *Rae) Name() string {
	return "Rae"
}

// CreatePipeline returns [nn], stereo_front, stereo_back
func (v *Rae) CreatePipeline(ctx context.Context, host *node.Host, dev device.Device,
	pl *device.Pipeline, nnType string) ([]node.Node, error) {
	mode, err := resolveMode(v.Name(), nnType)
	if err != nil {
		return nil, err
	}

	b := newBuild(v.Name(), host, dev, pl)

	front, err := b.stereo(ctx, NameStereoFront, device.CamB, device.CamC)
	if err != nil {
		return nil, b.fail(err)
	}
	back, err := b.stereo(ctx, NameStereoBack, device.CamD, device.CamE)
	if err != nil {
		return nil, b.fail(err)
	}

	var nn node.Node
	switch mode {
	case nnmode.RGB:
		nn, err = b.attachSpatialNN(front, node.StereoLeftPreview, nil)
	case nnmode.Spatial:
		nn, err = b.attachSpatialNN(front, node.StereoLeftPreview, front)
	}
	if err != nil {
		return nil, b.fail(err)
	}

	return b.result(nn, front, back), nil
}
