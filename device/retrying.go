package device

import (
	"context"

	"github.com/contoroinc/depthai-ros/pkg/retry"
)

// Retrying re-issues feature queries that fail transiently, such as a device
// still enumerating its sensors after boot.
type Retrying struct {
	dev Device
	cfg retry.Config
}

// NewRetrying wraps dev. A nil dev is returned unchanged.
func NewRetrying(dev Device, cfg retry.Config) Device {
	if dev == nil {
		return nil
	}
	return &Retrying{dev: dev, cfg: cfg}
}

// ConnectedCameraFeatures queries the wrapped device until it answers or fails
// with a non-transient error
func (r *Retrying) ConnectedCameraFeatures(ctx context.Context) ([]CameraFeature, error) {
	return retry.DoWithResult(ctx, r.cfg, func() ([]CameraFeature, error) {
		return r.dev.ConnectedCameraFeatures(ctx)
	})
}
