package pipeline

import (
	"context"

	"github.com/contoroinc/depthai-ros/device"
	"github.com/contoroinc/depthai-ros/nnmode"
	"github.com/contoroinc/depthai-ros/node"
)

// RGBD is a color camera plus a stereo depth pair. A spatial network takes the
// color preview and the stereo depth map.
type RGBD struct{}

// NewRGBD creates the RGBD variant
func NewRGBD() Variant {
	return &RGBD{}
}

// Name returns the registered variant name
func (v *RGBD) Name() string {
	return "RGBD"
}

// CreatePipeline returns [nn], rgb, stereo
func (v *RGBD) CreatePipeline(ctx context.Context, host *node.Host, dev device.Device,
	pl *device.Pipeline, nnType string) ([]node.Node, error) {
	mode, err := resolveMode(v.Name(), nnType)
	if err != nil {
		return nil, err
	}

	b := newBuild(v.Name(), host, dev, pl)

	rgb, err := b.sensor(ctx, NameRGB, device.CamA)
	if err != nil {
		return nil, b.fail(err)
	}
	stereo, err := b.stereo(ctx, NameStereo, device.CamB, device.CamC)
	if err != nil {
		return nil, b.fail(err)
	}

	var nn node.Node
	switch mode {
	case nnmode.RGB:
		nn, err = b.attachNN(rgb, node.SensorPreview)
	case nnmode.Spatial:
		nn, err = b.attachSpatialNN(rgb, node.SensorPreview, stereo)
	}
	if err != nil {
		return nil, b.fail(err)
	}

	return b.result(nn, rgb, stereo), nil
}
