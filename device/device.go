// Package device models the hardware side of a pipeline build: the camera features a
// device reports and the hardware pipeline that processing nodes are allocated in.
package device

import (
	"context"
	"slices"
)

// SensorType is a capability a camera sensor reports.
type SensorType string

// Sensor capabilities
const (
	SensorColor   SensorType = "color"
	SensorMono    SensorType = "mono"
	SensorTOF     SensorType = "tof"
	SensorThermal SensorType = "thermal"
)

// CameraFeature describes one connected camera as reported by the device
type CameraFeature struct {
	Socket         CameraSocket `json:"socket"          yaml:"socket"`
	SensorName     string       `json:"sensor_name"     yaml:"sensor_name"`
	Width          int          `json:"width"           yaml:"width"`
	Height         int          `json:"height"          yaml:"height"`
	SupportedTypes []SensorType `json:"supported_types" yaml:"supported_types"`
}

// IsColor reports whether the sensor can produce color frames
func (f CameraFeature) IsColor() bool {
	return slices.Contains(f.SupportedTypes, SensorColor)
}

// Device is the hardware query surface a build consumes.
type Device interface {
	// ConnectedCameraFeatures returns the connected cameras in device order.
	// The call blocks until the device answers.
	ConnectedCameraFeatures(ctx context.Context) ([]CameraFeature, error)
}

// FindFeature returns the feature reported for socket, if any
func FindFeature(features []CameraFeature, socket CameraSocket) (CameraFeature, bool) {
	for _, f := range features {
		if f.Socket == socket {
			return f, true
		}
	}
	return CameraFeature{}, false
}
