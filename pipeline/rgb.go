package pipeline

import (
	"context"

	"github.com/contoroinc/depthai-ros/device"
	"github.com/contoroinc/depthai-ros/nnmode"
	"github.com/contoroinc/depthai-ros/node"
)

// RGB is a single color camera, optionally with a detection network on its preview.
// There is no depth source, so a spatial network is skipped with a warning.
type RGB struct{}

// NewRGB creates the RGB variant
func NewRGB() Variant {
	return &RGB{}
}

// Name returns the registered variant name
func (v *RGB) Name() string {
	return "RGB"
}

// CreatePipeline returns [nn], rgb
func (v *RGB) CreatePipeline(ctx context.Context, host *node.Host, dev device.Device,
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

	var nn node.Node
	switch mode {
	case nnmode.RGB:
		if nn, err = b.attachNN(rgb, node.SensorPreview); err != nil {
			return nil, b.fail(err)
		}
	case nnmode.Spatial:
		b.warnUnsupported(mode)
	}

	return b.result(nn, rgb), nil
}
