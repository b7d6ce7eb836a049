package retry

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/contoroinc/depthai-ros/errors"
)

// Config controls backoff between attempts
type Config struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
	AddJitter    bool
	// Retryable decides whether a failed attempt is tried again.
	// Nil means errors.IsTransient.
	Retryable func(error) bool
}

// DefaultConfig suits hardware queries: 3 attempts, 50ms-1s delay
func DefaultConfig() Config {
	return Config{
		MaxAttempts:  3,
		InitialDelay: 50 * time.Millisecond,
		MaxDelay:     time.Second,
		Multiplier:   2.0,
		AddJitter:    true,
	}
}

// WithAttempts returns a copy of c allowing n attempts
func (c Config) WithAttempts(n int) Config {
	c.MaxAttempts = n
	return c
}

func (c Config) retryable(err error) bool {
	if c.Retryable != nil {
		return c.Retryable(err)
	}
	return errors.IsTransient(err)
}

// DoWithResult runs fn until it succeeds or retrying stops. The error of the
// last attempt is returned unchanged when it is not retryable, so callers
// keep its classification.
func DoWithResult[T any](ctx context.Context, cfg Config, fn func() (T, error)) (T, error) {
	var zero T
	attempts := max(cfg.MaxAttempts, 1)
	delay := cfg.InitialDelay

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return zero, contextError(err, lastErr)
		}

		result, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err

		if ctx.Err() != nil || !cfg.retryable(err) {
			return zero, err
		}
		if attempt == attempts {
			break
		}

		timer := time.NewTimer(cfg.wait(delay))
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, contextError(ctx.Err(), lastErr)
		case <-timer.C:
		}
		delay = cfg.next(delay)
	}

	return zero, errors.WrapTransient(
		fmt.Errorf("failed after %d attempts: %w", attempts, lastErr),
		"Retry", "DoWithResult", "attempt operation")
}

func (c Config) wait(delay time.Duration) time.Duration {
	if !c.AddJitter || delay <= 0 {
		return delay
	}
	// up to 25% either side
	spread := int64(delay) / 2
	if spread == 0 {
		return delay
	}
	return delay - time.Duration(spread/2) + time.Duration(rand.Int64N(spread))
}

func (c Config) next(delay time.Duration) time.Duration {
	if c.Multiplier > 0 {
		delay = time.Duration(float64(delay) * c.Multiplier)
	}
	if c.MaxDelay > 0 && delay > c.MaxDelay {
		delay = c.MaxDelay
	}
	return delay
}

func contextError(ctxErr, lastErr error) error {
	if lastErr == nil {
		return ctxErr
	}
	return fmt.Errorf("%w (last error: %w)", ctxErr, lastErr)
}
