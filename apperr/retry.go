package apperr

import (
	"context"
	"time"
)

// BackoffStrategy defines the interface for calculating retry delays.
type BackoffStrategy interface {
	// Backoff returns the delay for a given attempt based on the base delay.
	Backoff(attempt int, baseDelay time.Duration) time.Duration
}

// ConstantBackoff provides a fixed delay for each retry attempt.
type ConstantBackoff struct{}

// Backoff returns the base delay regardless of the attempt number.
func (c ConstantBackoff) Backoff(_ int, baseDelay time.Duration) time.Duration {
	return baseDelay
}

// LinearBackoff scales the delay with the attempt number.
type LinearBackoff struct{}

func (l LinearBackoff) Backoff(attempt int, baseDelay time.Duration) time.Duration {
	return baseDelay * time.Duration(attempt)
}

// ExponentialBackoff doubles the delay with each attempt.
type ExponentialBackoff struct{}

func (e ExponentialBackoff) Backoff(attempt int, baseDelay time.Duration) time.Duration {
	if attempt <= 1 {
		return baseDelay
	}
	return baseDelay * time.Duration(1<<uint(attempt-1))
}

// Retry represents a retryable operation with configurable backoff. Only
// recoverable failures are retried: a non-retryable error returns
// immediately, regardless of remaining attempts.
type Retry struct {
	maxAttempts int
	delay       time.Duration    // Base delay for backoff
	maxDelay    time.Duration    // Maximum delay cap
	retryIf     func(error) bool // Condition to determine if retry should occur
	onRetry     func(int, error) // Callback after each failed attempt
	backoff     BackoffStrategy  // Strategy for calculating retry delays
	ctx         context.Context  // Context for cancellation and deadlines
}

// NewRetry creates a Retry with the given options. Defaults: 3 attempts,
// 1s base delay, linear backoff, and IsRetryable as the retry condition.
func NewRetry(options ...RetryOption) *Retry {
	r := &Retry{
		maxAttempts: 3,
		delay:       time.Second,
		maxDelay:    30 * time.Second,
		retryIf:     IsRetryable,
		backoff:     LinearBackoff{},
		ctx:         context.Background(),
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

// RetryOption configures a Retry instance.
type RetryOption func(*Retry)

// WithMaxAttempts sets the maximum number of attempts, including the first.
func WithMaxAttempts(maxAttempts int) RetryOption {
	return func(r *Retry) {
		if maxAttempts > 0 {
			r.maxAttempts = maxAttempts
		}
	}
}

// WithDelay sets the base delay between attempts.
func WithDelay(delay time.Duration) RetryOption {
	return func(r *Retry) { r.delay = delay }
}

// WithMaxDelay sets the maximum delay between attempts.
func WithMaxDelay(maxDelay time.Duration) RetryOption {
	return func(r *Retry) { r.maxDelay = maxDelay }
}

// WithRetryIf sets the condition under which to retry.
func WithRetryIf(retryIf func(error) bool) RetryOption {
	return func(r *Retry) { r.retryIf = retryIf }
}

// WithOnRetry sets a callback to execute after each failed attempt.
func WithOnRetry(onRetry func(attempt int, err error)) RetryOption {
	return func(r *Retry) { r.onRetry = onRetry }
}

// WithBackoff sets the backoff strategy.
func WithBackoff(strategy BackoffStrategy) RetryOption {
	return func(r *Retry) { r.backoff = strategy }
}

// WithContext sets the context used to cancel waits between attempts.
func WithContext(ctx context.Context) RetryOption {
	return func(r *Retry) { r.ctx = ctx }
}

// Execute runs fn with the configured retry logic. It returns nil on the
// first success, the error unchanged when it is not retryable, or the last
// error once attempts are exhausted.
func (r *Retry) Execute(fn func() error) error {
	var lastErr error

	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}

		if r.retryIf != nil && !r.retryIf(err) {
			return err
		}

		lastErr = err
		if r.onRetry != nil {
			r.onRetry(attempt, err)
		}

		if attempt == r.maxAttempts {
			break
		}

		currentDelay := r.backoff.Backoff(attempt, r.delay)
		if currentDelay > r.maxDelay {
			currentDelay = r.maxDelay
		}

		select {
		case <-r.ctx.Done():
			return r.ctx.Err()
		case <-time.After(currentDelay):
		}
	}
	return lastErr
}

// RetryValue runs fn with r's retry logic and returns its result. The zero
// value of T accompanies a non-nil error.
func RetryValue[T any](r *Retry, fn func() (T, error)) (T, error) {
	var result T
	err := r.Execute(func() error {
		var ferr error
		result, ferr = fn()
		return ferr
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return result, nil
}
