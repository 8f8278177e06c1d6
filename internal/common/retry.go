package common

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/shopimpact/internal/service"
)

// Retry errors.
var (
	ErrRateLimit  = errors.New("rate limit exceeded")
	ErrMaxRetries = errors.New("max retries exceeded")
)

// RetryableError overrides the default classification of Err.
type RetryableError struct {
	Err       error
	Retryable bool
}

func (e *RetryableError) Error() string {
	return e.Err.Error()
}

func (e *RetryableError) Unwrap() error {
	return e.Err
}

// Permanent wraps err so WithRetry gives up immediately.
func Permanent(err error) error {
	return &RetryableError{Err: err, Retryable: false}
}

// DefaultRetryOptions returns the backoff used for remote export calls.
func DefaultRetryOptions() service.RetryOptions {
	return service.RetryOptions{
		MaxAttempts:  3,
		InitialDelay: 100 * time.Millisecond,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
	}
}

func withDefaults(opts service.RetryOptions) service.RetryOptions {
	d := DefaultRetryOptions()
	if opts.MaxAttempts < 1 {
		opts.MaxAttempts = d.MaxAttempts
	}
	if opts.InitialDelay <= 0 {
		opts.InitialDelay = d.InitialDelay
	}
	if opts.MaxDelay <= 0 {
		opts.MaxDelay = d.MaxDelay
	}
	if opts.Multiplier <= 0 {
		opts.Multiplier = d.Multiplier
	}
	return opts
}

// backoff yields the wait before each retry: geometric growth capped at
// MaxDelay, or MaxDelay straight away after a rate limit.
type backoff struct {
	opts service.RetryOptions
	next time.Duration
}

func (b *backoff) wait(err error) time.Duration {
	if errors.Is(err, ErrRateLimit) {
		return b.opts.MaxDelay
	}
	d := b.next
	b.next = min(time.Duration(float64(b.next)*b.opts.Multiplier), b.opts.MaxDelay)
	return d
}

// WithRetry runs operation up to opts.MaxAttempts times. Errors IsRetryable
// rejects are returned as-is; running out of attempts returns ErrMaxRetries
// wrapping the last failure.
func WithRetry(ctx context.Context, operation func() error, opts service.RetryOptions) error {
	opts = withDefaults(opts)
	b := &backoff{opts: opts, next: opts.InitialDelay}

	var last error
	for attempt := 1; attempt <= opts.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		last = operation()
		if last == nil {
			return nil
		}
		if !IsRetryable(last) {
			return last
		}
		if attempt == opts.MaxAttempts {
			break
		}

		delay := b.wait(last)
		slog.Warn("Retrying after error", "attempt", attempt, "of", opts.MaxAttempts, "delay", delay, "error", last)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}

	return fmt.Errorf("%w (%d attempts): %w", ErrMaxRetries, opts.MaxAttempts, last)
}
