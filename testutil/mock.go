package testutil

import (
	"context"
	"slices"
	"sync"

	"github.com/contoroinc/depthai-ros/device"
)

// MockDevice is a device for testing that reports a fixed camera profile.
type MockDevice struct {
	mu sync.Mutex

	Features []device.CameraFeature

	// QueryFunc, when set, replaces the profile lookup.
	QueryFunc func(ctx context.Context) ([]device.CameraFeature, error)

	// Err, when set, is returned from every query.
	Err error

	// Calls counts feature queries
	Calls int
}

// NewMockDevice creates a mock device reporting features in order.
func NewMockDevice(features ...device.CameraFeature) *MockDevice {
	return &MockDevice{Features: features}
}

// ConnectedCameraFeatures returns the configured profile.
func (m *MockDevice) ConnectedCameraFeatures(ctx context.Context) ([]device.CameraFeature, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls++

	if m.QueryFunc != nil {
		return m.QueryFunc(ctx)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return slices.Clone(m.Features), nil
}

// CallCount returns the number of feature queries so far.
func (m *MockDevice) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Calls
}

// ColorArray returns k color cameras on consecutive sockets starting at CAM_A.
func ColorArray(k int) []device.CameraFeature {
	features := make([]device.CameraFeature, 0, k)
	for i := 0; i < k; i++ {
		features = append(features, device.ColorCamera(device.CamA+device.CameraSocket(i), "IMX378"))
	}
	return features
}
