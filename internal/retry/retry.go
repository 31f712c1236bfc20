package retry

import (
	"context"
	"time"
)

// Policy is a bounded exponential backoff applied to transient remote
// calls. Delay starts at MinDelay, doubles between attempts, and is
// capped at MaxDelay.
type Policy struct {
	Attempts int
	MinDelay time.Duration
	MaxDelay time.Duration
}

// DefaultPolicy mirrors the provider-call policy used across the
// service: three attempts with 4s..10s backoff.
func DefaultPolicy() Policy {
	return Policy{Attempts: 3, MinDelay: 4 * time.Second, MaxDelay: 10 * time.Second}
}

// Do runs fn until it succeeds or attempts are exhausted, waiting
// between attempts. The last error is returned once attempts run out.
// A cancelled context cuts the wait short.
func (p Policy) Do(ctx context.Context, fn func() error) error {
	attempts := p.Attempts
	if attempts <= 0 {
		attempts = 1
	}
	delay := p.MinDelay
	var err error
	for attempt := 0; attempt < attempts; attempt++ {
		if err = fn(); err == nil {
			return nil
		}
		if attempt == attempts-1 {
			break
		}
		timer := time.NewTimer(delay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		}
		delay *= 2
		if p.MaxDelay > 0 && delay > p.MaxDelay {
			delay = p.MaxDelay
		}
	}
	return err
}
