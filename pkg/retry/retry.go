package retry

import (
	"context"
	"time"
)

const defaultDelay = 200 * time.Millisecond

// Config controls how Do re-runs a failing call.
type Config struct {
	MaxAttempts int
	Delay       time.Duration
	ShouldRetry func(error) bool
}

func (c *Config) normalize() {
	if c.MaxAttempts < 1 {
		c.MaxAttempts = 1
	}
	if c.Delay <= 0 {
		c.Delay = defaultDelay
	}
	if c.ShouldRetry == nil {
		c.ShouldRetry = func(error) bool { return true }
	}
}

// Do runs fn up to MaxAttempts times, doubling the delay between attempts.
// It returns the first success, or the last error once attempts are spent or
// ShouldRetry declines the error.
func Do[T any](ctx context.Context, c Config, fn func() (T, error)) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	c.normalize()
	delay := c.Delay
	var (
		result T
		err    error
	)
	for attempt := 1; attempt <= c.MaxAttempts; attempt++ {
		result, err = fn()
		if err == nil || !c.ShouldRetry(err) {
			return result, err
		}
		if attempt == c.MaxAttempts {
			break
		}
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, ctx.Err()
		case <-timer.C:
		}
		delay *= 2
	}
	return zero, err
}
