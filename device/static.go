package device

import (
	"context"
	"slices"
)

// StaticDevice reports a fixed hardware profile. It stands in for a real device
// when planning a topology offline and in tests.
type StaticDevice struct {
	Name     string
	Features []CameraFeature
	// Err, when set, is returned from every feature query.
	Err error
}

// NewStaticDevice creates a device reporting features in the given order
func NewStaticDevice(name string, features ...CameraFeature) *StaticDevice {
	return &StaticDevice{
		Name:     name,
		Features: features,
	}
}

// ConnectedCameraFeatures returns a copy of the configured profile
func (d *StaticDevice) ConnectedCameraFeatures(ctx context.Context) ([]CameraFeature, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if d.Err != nil {
		return nil, d.Err
	}
	return slices.Clone(d.Features), nil
}

// ColorCamera describes a color camera on socket with common defaults
func ColorCamera(socket CameraSocket, sensor string) CameraFeature {
	return CameraFeature{
		Socket:         socket,
		SensorName:     sensor,
		Width:          1920,
		Height:         1080,
		SupportedTypes: []SensorType{SensorColor},
	}
}

// MonoCamera describes a monochrome camera on socket with common defaults
func MonoCamera(socket CameraSocket, sensor string) CameraFeature {
	return CameraFeature{
		Socket:         socket,
		SensorName:     sensor,
		Width:          1280,
		Height:         800,
		SupportedTypes: []SensorType{SensorMono},
	}
}

// OAKDProfile is the classic three-camera layout: color center, mono stereo pair.
func OAKDProfile() []CameraFeature {
	return []CameraFeature{
		ColorCamera(CamA, "IMX378"),
		MonoCamera(CamB, "OV9282"),
		MonoCamera(CamC, "OV9282"),
	}
}

// RaeProfile is the four-camera robot layout: front and back color stereo pairs
// plus a center color camera.
func RaeProfile() []CameraFeature {
	return []CameraFeature{
		ColorCamera(CamA, "IMX214"),
		ColorCamera(CamB, "AR0234"),
		ColorCamera(CamC, "AR0234"),
		ColorCamera(CamD, "AR0234"),
		ColorCamera(CamE, "AR0234"),
	}
}

// Snapshot caches the first successful feature query of a device for the
// lifetime of one build. Failed queries are not cached.
type Snapshot struct {
	dev      Device
	features []CameraFeature
	loaded   bool
}

// NewSnapshot wraps dev. Wrapping a Snapshot returns it unchanged.
func NewSnapshot(dev Device) *Snapshot {
	if s, ok := dev.(*Snapshot); ok {
		return s
	}
	return &Snapshot{dev: dev}
}

// ConnectedCameraFeatures returns the cached profile, querying the device once
func (s *Snapshot) ConnectedCameraFeatures(ctx context.Context) ([]CameraFeature, error) {
	if !s.loaded {
		features, err := s.dev.ConnectedCameraFeatures(ctx)
		if err != nil {
			return nil, err
		}
		s.features = features
		s.loaded = true
	}
	return slices.Clone(s.features), nil
}
