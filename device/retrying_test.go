package device

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contoroinc/depthai-ros/errors"
	"github.com/contoroinc/depthai-ros/pkg/retry"
)

// flakyDevice fails its first failures queries with err
type flakyDevice struct {
	failures int
	err      error
	calls    int
}

func (d *flakyDevice) ConnectedCameraFeatures(context.Context) ([]CameraFeature, error) {
	d.calls++
	if d.calls <= d.failures {
		return nil, d.err
	}
	return OAKDProfile(), nil
}

func quickRetry(attempts int) retry.Config {
	return retry.Config{
		MaxAttempts:  attempts,
		InitialDelay: time.Millisecond,
		MaxDelay:     2 * time.Millisecond,
		Multiplier:   2.0,
	}
}

func TestRetrying_RecoversFromTransientFailures(t *testing.T) {
	flaky := &flakyDevice{
		failures: 2,
		err:      errors.WrapTransient(fmt.Errorf("usb reset"), "Device", "ConnectedCameraFeatures", "read"),
	}
	dev := NewRetrying(flaky, quickRetry(3))

	features, err := dev.ConnectedCameraFeatures(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OAKDProfile(), features)
	assert.Equal(t, 3, flaky.calls)
}

func TestRetrying_DoesNotRetryFatalQueries(t *testing.T) {
	flaky := &flakyDevice{
		failures: 5,
		err:      fmt.Errorf("%w: firmware crashed", errors.ErrHardwareQuery),
	}
	dev := NewRetrying(flaky, quickRetry(3))

	_, err := dev.ConnectedCameraFeatures(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrHardwareQuery)
	assert.Equal(t, 1, flaky.calls)
}

func TestRetrying_GivesUp(t *testing.T) {
	flaky := &flakyDevice{
		failures: 10,
		err:      errors.WrapTransient(fmt.Errorf("usb reset"), "Device", "ConnectedCameraFeatures", "read"),
	}
	dev := NewRetrying(flaky, quickRetry(2))

	_, err := dev.ConnectedCameraFeatures(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed after 2 attempts")
	assert.Equal(t, 2, flaky.calls)
}

func TestRetrying_SnapshotQueriesOnce(t *testing.T) {
	flaky := &flakyDevice{
		failures: 1,
		err:      errors.WrapTransient(fmt.Errorf("usb reset"), "Device", "ConnectedCameraFeatures", "read"),
	}
	snap := NewSnapshot(NewRetrying(flaky, quickRetry(3)))

	for range 3 {
		_, err := snap.ConnectedCameraFeatures(context.Background())
		require.NoError(t, err)
	}
	assert.Equal(t, 2, flaky.calls)
}

func TestNewRetrying_NilDevice(t *testing.T) {
	assert.Nil(t, NewRetrying(nil, retry.DefaultConfig()))
}
