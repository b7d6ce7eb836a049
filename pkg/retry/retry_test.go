package retry

import (
	"context"
	stderrors "errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contoroinc/depthai-ros/errors"
)

func fastConfig(attempts int) Config {
	return Config{
		MaxAttempts:  attempts,
		InitialDelay: time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
		Multiplier:   2.0,
		AddJitter:    false,
	}
}

func transient(msg string) error {
	return errors.WrapTransient(fmt.Errorf("%s", msg), "Device", "ConnectedCameraFeatures", "usb read")
}

// attempt adapts a result-less operation for the retry tests
func attempt(ctx context.Context, cfg Config, fn func() error) error {
	_, err := DoWithResult(ctx, cfg, func() (struct{}, error) {
		return struct{}{}, fn()
	})
	return err
}

func TestDoWithResult_SucceedsAfterTransientFailures(t *testing.T) {
	attempts := 0
	err := attempt(context.Background(), fastConfig(3), func() error {
		attempts++
		if attempts < 3 {
			return transient("device booting")
		}
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestDoWithResult_AllAttemptsFail(t *testing.T) {
	attempts := 0
	err := attempt(context.Background(), fastConfig(3), func() error {
		attempts++
		return transient("device booting")
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed after 3 attempts")
	assert.Contains(t, err.Error(), "device booting")
	assert.True(t, errors.IsTransient(err))
	assert.Equal(t, 3, attempts)
}

func TestDoWithResult_StopsOnNonRetryableError(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
	}{
		{
			name:  "invalid",
			err:   errors.WrapInvalid(errors.ErrSocketNotConnected, "Build", "sensor", "socket lookup"),
			check: errors.IsInvalid,
		},
		{
			name:  "fatal",
			err:   errors.WrapFatal(errors.ErrHardwareQuery, "Build", "query", "feature query"),
			check: errors.IsFatal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attempts := 0
			err := attempt(context.Background(), fastConfig(5), func() error {
				attempts++
				return tt.err
			})

			assert.Equal(t, 1, attempts)
			assert.Equal(t, tt.err, err)
			assert.True(t, tt.check(err))
		})
	}
}

func TestDoWithResult_CustomRetryable(t *testing.T) {
	sentinel := stderrors.New("busy")
	cfg := fastConfig(4)
	cfg.Retryable = func(err error) bool { return stderrors.Is(err, sentinel) }

	attempts := 0
	err := attempt(context.Background(), cfg, func() error {
		attempts++
		return sentinel
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, sentinel)
	assert.Equal(t, 4, attempts)
}

func TestDoWithResult_ContextCancelledDuringBackoff(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cfg := fastConfig(5)
	cfg.InitialDelay = time.Second

	attempts := 0
	err := attempt(ctx, cfg, func() error {
		attempts++
		cancel()
		return transient("device booting")
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, attempts)
}

func TestDoWithResult_ContextCancelledBeforeStart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := attempt(ctx, fastConfig(3), func() error {
		called = true
		return nil
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestDoWithResult(t *testing.T) {
	attempts := 0
	got, err := DoWithResult(context.Background(), fastConfig(3), func() (int, error) {
		attempts++
		if attempts == 1 {
			return 0, transient("device booting")
		}
		return 4, nil
	})

	require.NoError(t, err)
	assert.Equal(t, 4, got)
	assert.Equal(t, 2, attempts)
}

func TestDoWithResult_ZeroAttemptsRunsOnce(t *testing.T) {
	attempts := 0
	err := attempt(context.Background(), fastConfig(0), func() error {
		attempts++
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 1, attempts)
}

func TestConfig_Backoff(t *testing.T) {
	cfg := Config{InitialDelay: 10 * time.Millisecond, MaxDelay: 25 * time.Millisecond, Multiplier: 2.0}

	assert.Equal(t, 20*time.Millisecond, cfg.next(10*time.Millisecond))
	assert.Equal(t, 25*time.Millisecond, cfg.next(20*time.Millisecond))
	assert.Equal(t, 10*time.Millisecond, cfg.wait(10*time.Millisecond))

	cfg.AddJitter = true
	for range 50 {
		d := cfg.wait(100 * time.Millisecond)
		assert.GreaterOrEqual(t, d, 75*time.Millisecond)
		assert.Less(t, d, 125*time.Millisecond)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 3, cfg.MaxAttempts)
	assert.True(t, cfg.AddJitter)
	assert.Equal(t, 7, cfg.WithAttempts(7).MaxAttempts)
	assert.Equal(t, 3, cfg.MaxAttempts)
}
