package node

import (
	"context"

	"github.com/contoroinc/depthai-ros/device"
)

// Sensor output ports
const (
	SensorVideo = iota
	SensorISP
	SensorPreview
)

// Sensor input ports
const (
	SensorControl = 0
)

// Sensor is a single camera on one board socket
type Sensor struct {
	*base
	feature device.CameraFeature
}

// NewSensor creates a camera node for socket. The socket must be among the
// cameras the device reports.
func NewSensor(ctx context.Context, name string, host *Host, pl *device.Pipeline,
	dev device.Device, socket device.CameraSocket) (*Sensor, error) {
	features, err := queryFeatures(ctx, dev, "Sensor")
	if err != nil {
		return nil, err
	}
	feature, err := lookupFeature(features, socket, "Sensor")
	if err != nil {
		return nil, err
	}

	params := host.NodeParams(name)
	role := roleOf(feature)

	props := map[string]any{
		"socket":         feature.Socket.String(),
		"sensor":         feature.SensorName,
		"color":          feature.IsColor(),
		"width":          feature.Width,
		"height":         feature.Height,
		"fps":            params.FPS,
		"preview_width":  params.PreviewWidth,
		"preview_height": params.PreviewHeight,
	}

	inputs := []Port{
		inputPort("control", SensorControl, false, "Camera control commands", RoleControl),
	}
	outputs := []Port{
		outputPort("video", SensorVideo, role, "Full resolution video stream"),
		outputPort("isp", SensorISP, role, "Processed ISP frames"),
		outputPort("preview", SensorPreview, role, "Downscaled preview for NN input"),
	}

	meta := Metadata{
		Name:    name,
		Kind:    KindSensor,
		Sockets: []device.CameraSocket{feature.Socket},
	}

	b, err := newBase(meta, pl, props, inputs, outputs, host.GetLoggerWithNode(name))
	if err != nil {
		return nil, err
	}
	return &Sensor{base: b, feature: feature}, nil
}

// Socket returns the board socket the camera is connected to
func (s *Sensor) Socket() device.CameraSocket {
	return s.feature.Socket
}

// Feature returns the camera feature the sensor was built from
func (s *Sensor) Feature() device.CameraFeature {
	return s.feature
}
