// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package llm

import (
	"context"
	"fmt"
	"math"
	"time"
)

// backoffBase controls the base duration for exponential backoff. Tests
// override this to avoid real sleeps.
var backoffBase = time.Second

// RetryingBackend wraps a Backend with exponential backoff on failure. The
// workflow core never retries; bounded retry lives here at the capability
// boundary.
type RetryingBackend struct {
	inner      Backend
	maxRetries int
}

// WithRetry wraps inner with up to maxRetries retry attempts. Values below 1
// fall back to 3.
func WithRetry(inner Backend, maxRetries int) *RetryingBackend {
	if maxRetries < 1 {
		maxRetries = 3
	}
	return &RetryingBackend{inner: inner, maxRetries: maxRetries}
}

// Generate calls the wrapped backend, backing off 1s, 2s, 4s, ... between
// attempts. A context cancellation during backoff returns ctx.Err().
func (r *RetryingBackend) Generate(ctx context.Context, prompt string) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= r.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(math.Pow(2, float64(attempt-1))) * backoffBase
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(backoff):
			}
		}

		resp, err := r.inner.Generate(ctx, prompt)
		if err == nil {
			return resp, nil
		}
		lastErr = err
	}
	return "", fmt.Errorf("after %d retries: %w", r.maxRetries, lastErr)
}
