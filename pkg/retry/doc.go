// Package retry runs an operation with exponential backoff until it succeeds,
// fails with a non-retryable error, or runs out of attempts.
//
// By default only errors classified transient by the errors package are
// retried, so a missing camera socket fails immediately while a device that
// is still booting gets another chance:
//
//	features, err := retry.DoWithResult(ctx, retry.DefaultConfig(), func() ([]device.CameraFeature, error) {
//	    return dev.ConnectedCameraFeatures(ctx)
//	})
//
// Context cancellation stops retrying both during the operation and while
// waiting between attempts.
package retry
