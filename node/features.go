package node

import (
	"context"
	"fmt"

	"github.com/contoroinc/depthai-ros/device"
	"github.com/contoroinc/depthai-ros/errors"
)

// queryFeatures asks the device for its connected cameras
func queryFeatures(ctx context.Context, dev device.Device, component string) ([]device.CameraFeature, error) {
	if dev == nil {
		return nil, errors.WrapFatal(
			fmt.Errorf("%w: nil device", errors.ErrHardwareQuery),
			component, "New", "camera feature query")
	}
	features, err := dev.ConnectedCameraFeatures(ctx)
	if err != nil {
		return nil, errors.WrapFatal(
			fmt.Errorf("%w: %w", errors.ErrHardwareQuery, err),
			component, "New", "camera feature query")
	}
	return features, nil
}

// lookupFeature finds the camera on socket. Auto picks CAM_A when connected,
// then the first color camera, then the first camera.
func lookupFeature(features []device.CameraFeature, socket device.CameraSocket,
	component string) (device.CameraFeature, error) {
	if socket == device.Auto {
		if f, ok := device.FindFeature(features, device.CamA); ok {
			return f, nil
		}
		for _, f := range features {
			if f.IsColor() {
				return f, nil
			}
		}
		if len(features) > 0 {
			return features[0], nil
		}
	} else if f, ok := device.FindFeature(features, socket); ok {
		return f, nil
	}

	return device.CameraFeature{}, errors.WrapFatal(
		fmt.Errorf("%w: %s", errors.ErrSocketNotConnected, socket),
		component, "New", "socket lookup")
}

func roleOf(f device.CameraFeature) StreamRole {
	if f.IsColor() {
		return RoleColor
	}
	return RoleMono
}
