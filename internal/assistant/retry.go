package assistant

import (
	"context"
	"time"
)

// RetryPolicy bounds repeated model invocations. One policy instance is
// shared by every call site instead of ad-hoc per-call loops.
type RetryPolicy struct {
	// MaxAttempts is the total number of attempts (first try included).
	MaxAttempts int

	// BackoffBase is the initial pause before the first retry.
	BackoffBase time.Duration

	// BackoffMultiplier is applied to the pause on each further retry.
	BackoffMultiplier float64

	// MaxBackoff caps the pause duration.
	MaxBackoff time.Duration
}

// DefaultRetryPolicy allows two retries (three attempts total) with a
// short exponential backoff.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:       3,
		BackoffBase:       2 * time.Second,
		BackoffMultiplier: 2.0,
		MaxBackoff:        30 * time.Second,
	}
}

// Backoff returns the pause before the given retry (1-based).
func (p RetryPolicy) Backoff(retry int) time.Duration {
	d := p.BackoffBase
	for i := 1; i < retry; i++ {
		d = time.Duration(float64(d) * p.BackoffMultiplier)
		if d >= p.MaxBackoff {
			return p.MaxBackoff
		}
	}
	if p.MaxBackoff > 0 && d > p.MaxBackoff {
		return p.MaxBackoff
	}
	return d
}

// sleep pauses for d unless the context ends first.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
