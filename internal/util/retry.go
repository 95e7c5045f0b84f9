// ABOUTME: Retry helper with exponential backoff for API calls
// ABOUTME: Shared by the enrichment client for consistent retry behavior
package util

import (
	"math/rand/v2"
	"time"
)

// Backoff returns the delay before the given retry attempt: exponential
// from baseDelay, capped at 30 seconds, with up to 25% jitter either way.
// Attempt 0 (the first try) waits nothing.
func Backoff(baseDelay time.Duration, attempt int) time.Duration {
	if attempt <= 0 {
		return 0
	}
	if attempt > 30 {
		attempt = 30
	}
	d := baseDelay * time.Duration(1<<uint(attempt))
	if d > 30*time.Second {
		d = 30 * time.Second
	}
	jitter := time.Duration(rand.Int64N(int64(d)/2)) - d/4
	return d + jitter
}

// Retry runs fn up to maxRetries+1 times, sleeping Backoff(baseDelay, n)
// before retry n. It returns nil on the first success, otherwise the last
// error.
func Retry(maxRetries int, baseDelay time.Duration, fn func() error) error {
	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		time.Sleep(Backoff(baseDelay, attempt))
		if lastErr = fn(); lastErr == nil {
			return nil
		}
	}
	return lastErr
}
