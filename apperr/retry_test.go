package apperr

import (
	"context"
	"testing"
	"time"
)

// TestRetryExhaustsAttempts verifies a persistently failing retryable
// operation runs exactly maxAttempts times and returns the last error.
func TestRetryExhaustsAttempts(t *testing.T) {
	calls := 0
	r := NewRetry(WithMaxAttempts(3), WithDelay(time.Millisecond))
	err := r.Execute(func() error {
		calls++
		return Network("down").WithCode(CodeConnectionTimeout)
	})
	if calls != 3 {
		t.Errorf("Execute() calls = %d, want 3", calls)
	}
	if err == nil || CodeOf(err) != CodeConnectionTimeout {
		t.Errorf("Execute() should return the last error, got %v", err)
	}
}

// TestRetryNonRetryable verifies a validation failure is never retried.
func TestRetryNonRetryable(t *testing.T) {
	calls := 0
	r := NewRetry(WithMaxAttempts(3), WithDelay(time.Millisecond))
	err := r.Execute(func() error {
		calls++
		return Validation("bad input")
	})
	if calls != 1 {
		t.Errorf("Execute() calls = %d, want 1", calls)
	}
	if KindOf(err) != KindValidation {
		t.Errorf("Execute() error = %v, want the validation failure", err)
	}
}

// TestRetryEventualSuccess verifies retries stop at the first success.
func TestRetryEventualSuccess(t *testing.T) {
	calls := 0
	r := NewRetry(WithMaxAttempts(5), WithDelay(time.Millisecond))
	err := r.Execute(func() error {
		calls++
		if calls < 3 {
			return Server("flaky")
		}
		return nil
	})
	if err != nil {
		t.Errorf("Execute() = %v, want nil", err)
	}
	if calls != 3 {
		t.Errorf("Execute() calls = %d, want 3", calls)
	}
}

// TestRetryOnRetryCallback verifies the callback fires after each failed
// attempt.
func TestRetryOnRetryCallback(t *testing.T) {
	var attempts []int
	r := NewRetry(
		WithMaxAttempts(3),
		WithDelay(time.Millisecond),
		WithOnRetry(func(attempt int, _ error) { attempts = append(attempts, attempt) }),
	)
	_ = r.Execute(func() error { return Server("boom") })
	if len(attempts) != 3 || attempts[0] != 1 || attempts[2] != 3 {
		t.Errorf("onRetry attempts = %v, want [1 2 3]", attempts)
	}
}

// TestRetryContextCancel verifies cancellation interrupts the wait between
// attempts.
func TestRetryContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	r := NewRetry(
		WithMaxAttempts(3),
		WithDelay(time.Minute),
		WithContext(ctx),
	)
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()
	err := r.Execute(func() error {
		calls++
		return Server("boom")
	})
	if err != context.Canceled {
		t.Errorf("Execute() = %v, want context.Canceled", err)
	}
	if calls != 1 {
		t.Errorf("Execute() calls = %d, want 1", calls)
	}
}

// TestBackoffStrategies checks the delay math of each strategy.
func TestBackoffStrategies(t *testing.T) {
	base := time.Second
	tests := []struct {
		name     string
		strategy BackoffStrategy
		attempt  int
		want     time.Duration
	}{
		{"constant", ConstantBackoff{}, 3, time.Second},
		{"linear attempt 1", LinearBackoff{}, 1, time.Second},
		{"linear attempt 3", LinearBackoff{}, 3, 3 * time.Second},
		{"exponential attempt 1", ExponentialBackoff{}, 1, time.Second},
		{"exponential attempt 4", ExponentialBackoff{}, 4, 8 * time.Second},
	}
	for _, tt := range tests {
		if got := tt.strategy.Backoff(tt.attempt, base); got != tt.want {
			t.Errorf("%s: Backoff() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

// TestRetryValue verifies the generic wrapper returns the operation result.
func TestRetryValue(t *testing.T) {
	calls := 0
	r := NewRetry(WithMaxAttempts(3), WithDelay(time.Millisecond))
	got, err := RetryValue(r, func() (string, error) {
		calls++
		if calls < 2 {
			return "", Server("flaky")
		}
		return "ok", nil
	})
	if err != nil || got != "ok" {
		t.Errorf("RetryValue() = %q, %v, want ok, nil", got, err)
	}

	_, err = RetryValue(r, func() (string, error) {
		return "ignored", Validation("no")
	})
	if err == nil {
		t.Errorf("RetryValue() should propagate the failure")
	}
}
