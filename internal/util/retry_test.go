// ABOUTME: Tests for retry utilities including exponential backoff
// ABOUTME: Validates backoff calculation, bounds, and jitter behavior
package util

import (
	"errors"
	"testing"
	"time"
)

func TestBackoff_ZeroAttempt(t *testing.T) {
	if result := Backoff(time.Second, 0); result != 0 {
		t.Errorf("expected 0 for attempt 0, got %v", result)
	}
}

func TestBackoff_FirstAttempt(t *testing.T) {
	baseDelay := 100 * time.Millisecond
	result := Backoff(baseDelay, 1)

	// First retry: 2^1 * 100ms = 200ms, with ±25% jitter = 150ms to 250ms
	minExpected := 150 * time.Millisecond
	maxExpected := 250 * time.Millisecond

	if result < minExpected || result > maxExpected {
		t.Errorf("expected backoff between %v and %v, got %v", minExpected, maxExpected, result)
	}
}

func TestBackoff_ExponentialGrowth(t *testing.T) {
	baseDelay := 100 * time.Millisecond

	for attempt := 1; attempt <= 5; attempt++ {
		expectedBase := baseDelay * time.Duration(1<<uint(attempt))
		minExpected := expectedBase * 3 / 4
		maxExpected := expectedBase * 5 / 4

		result := Backoff(baseDelay, attempt)

		if result < minExpected || result > maxExpected {
			t.Errorf("attempt %d: expected backoff between %v and %v, got %v",
				attempt, minExpected, maxExpected, result)
		}
	}
}

func TestBackoff_CapsAt30Seconds(t *testing.T) {
	// 2^20 seconds is far past the cap; jitter can add up to 25%.
	result := Backoff(time.Second, 20)
	maxExpected := 30 * time.Second * 5 / 4

	if result > maxExpected {
		t.Errorf("expected backoff capped near 30s, got %v", result)
	}
}

func TestBackoff_HugeAttemptDoesNotOverflow(t *testing.T) {
	result := Backoff(time.Second, 1000)
	if result <= 0 || result > 30*time.Second*5/4 {
		t.Errorf("huge attempt produced %v", result)
	}
}

func TestRetry_SucceedsFirstTry(t *testing.T) {
	calls := 0
	err := Retry(3, time.Millisecond, func() error {
		calls++
		return nil
	})

	if err != nil {
		t.Errorf("Retry() error = %v", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestRetry_EventualSuccess(t *testing.T) {
	calls := 0
	err := Retry(3, time.Millisecond, func() error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})

	if err != nil {
		t.Errorf("Retry() error = %v", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestRetry_Exhausted(t *testing.T) {
	wantErr := errors.New("permanent")
	calls := 0
	err := Retry(2, time.Millisecond, func() error {
		calls++
		return wantErr
	})

	if !errors.Is(err, wantErr) {
		t.Errorf("Retry() error = %v, want %v", err, wantErr)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3 (initial try plus 2 retries)", calls)
	}
}
