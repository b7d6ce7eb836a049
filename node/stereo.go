package node

import (
	"context"
	"fmt"

	"github.com/contoroinc/depthai-ros/device"
	"github.com/contoroinc/depthai-ros/errors"
)

// Stereo output ports
const (
	StereoDepth = iota
	StereoLeft
	StereoRight
	StereoLeftPreview
)

// Stereo computes a depth map from a camera pair. The pair's sensors are
// internal to the node, so it has no inputs.
type Stereo struct {
	*base
	left  device.CameraFeature
	right device.CameraFeature
}

// NewStereo creates a depth node over the cameras on left and right
func NewStereo(ctx context.Context, name string, host *Host, pl *device.Pipeline,
	dev device.Device, left, right device.CameraSocket) (*Stereo, error) {
	if left == right {
		return nil, errors.WrapInvalid(
			fmt.Errorf("%w: stereo pair uses %s twice", errors.ErrInvalidConfig, left),
			"Stereo", "New", "socket check")
	}

	features, err := queryFeatures(ctx, dev, "Stereo")
	if err != nil {
		return nil, err
	}
	leftFeature, err := lookupFeature(features, left, "Stereo")
	if err != nil {
		return nil, err
	}
	rightFeature, err := lookupFeature(features, right, "Stereo")
	if err != nil {
		return nil, err
	}

	params := host.NodeParams(name)
	alignSocket := defaultAlignSocket(features, leftFeature.Socket)
	if params.AlignSocket != "" {
		alignSocket, err = device.ParseSocket(params.AlignSocket)
		if err != nil {
			return nil, errors.WrapInvalid(err, "Stereo", "New", "align socket check")
		}
	}
	align := alignSocket.String()

	props := map[string]any{
		"left_socket":  leftFeature.Socket.String(),
		"right_socket": rightFeature.Socket.String(),
		"fps":          params.FPS,
		"subpixel":     params.Subpixel,
		"lr_check":     params.LRCheckEnabled(),
		"align_socket": align,
	}

	outputs := []Port{
		outputPort("depth", StereoDepth, RoleDepth, "Depth map aligned to align_socket"),
		outputPort("left", StereoLeft, roleOf(leftFeature), "Rectified left frames"),
		outputPort("right", StereoRight, roleOf(rightFeature), "Rectified right frames"),
		outputPort("left_preview", StereoLeftPreview, roleOf(leftFeature), "Downscaled left preview for NN input"),
	}

	meta := Metadata{
		Name:    name,
		Kind:    KindStereo,
		Sockets: []device.CameraSocket{leftFeature.Socket, rightFeature.Socket},
	}

	b, err := newBase(meta, pl, props, nil, outputs, host.GetLoggerWithNode(name))
	if err != nil {
		return nil, err
	}
	return &Stereo{base: b, left: leftFeature, right: rightFeature}, nil
}

// Sockets returns the left and right board sockets
func (s *Stereo) Sockets() (device.CameraSocket, device.CameraSocket) {
	return s.left.Socket, s.right.Socket
}

// defaultAlignSocket aligns depth to the center color camera when there is one
func defaultAlignSocket(features []device.CameraFeature, left device.CameraSocket) device.CameraSocket {
	if f, ok := device.FindFeature(features, device.CamA); ok && f.IsColor() {
		return device.CamA
	}
	return left
}
