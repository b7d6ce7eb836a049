package pipeline

import (
	"context"

	"github.com/contoroinc/depthai-ros/device"
	"github.com/contoroinc/depthai-ros/nnmode"
	"github.com/contoroinc/depthai-ros/node"
)

// RGBStereo is a color camera and the raw stereo pair without depth computation.
type RGBStereo struct{}

// NewRGBStereo creates the RGBStereo variant
func NewRGBStereo() Variant {
	return &RGBStereo{}
}

// Name returns the registered variant name
func (v *RGBStereo) Name() string {
	return "RGBStereo"
}

// CreatePipeline returns [nn], rgb, left, right
func (v *RGBStereo) CreatePipeline(ctx context.Context, host *node.Host, dev device.Device,
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
	left, err := b.sensor(ctx, NameLeft, device.CamB)
	if err != nil {
		return nil, b.fail(err)
	}
	right, err := b.sensor(ctx, NameRight, device.CamC)
	if err != nil {
		return nil, b.fail(err)
	}

	var nn node.Node
	switch mode {
	case nnmode.RGB:
		if nn, err = b.attachNN(rgb, node.SensorPreview); err != nil {
			return nil, b.fail(err)
		}
	case nnmode.Spatial:
		b.warnUnsupported(mode)
	}

	return b.result(nn, rgb, left, right), nil
}
