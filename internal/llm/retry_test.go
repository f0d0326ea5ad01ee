// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package llm

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	backoffBase = time.Millisecond
	os.Exit(m.Run())
}

// failNTimesBackend fails the first N calls, then succeeds.
type failNTimesBackend struct {
	failures  int
	callCount int
	response  string
}

func (f *failNTimesBackend) Generate(_ context.Context, _ string) (string, error) {
	f.callCount++
	if f.callCount <= f.failures {
		return "", fmt.Errorf("transient error (call %d)", f.callCount)
	}
	return f.response, nil
}

func TestWithRetrySucceedsAfterTransientFailures(t *testing.T) {
	backend := &failNTimesBackend{failures: 2, response: "ok"}
	r := WithRetry(backend, 3)

	got, err := r.Generate(context.Background(), "prompt")
	require.NoError(t, err)
	assert.Equal(t, "ok", got)
	assert.Equal(t, 3, backend.callCount)
}

func TestWithRetryExhaustsAttempts(t *testing.T) {
	backend := &failNTimesBackend{failures: 10}
	r := WithRetry(backend, 2)

	_, err := r.Generate(context.Background(), "prompt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "after 2 retries")
	// Initial attempt plus two retries.
	assert.Equal(t, 3, backend.callCount)
}

func TestWithRetryNoRetryOnSuccess(t *testing.T) {
	backend := &failNTimesBackend{response: "first"}
	r := WithRetry(backend, 5)

	got, err := r.Generate(context.Background(), "prompt")
	require.NoError(t, err)
	assert.Equal(t, "first", got)
	assert.Equal(t, 1, backend.callCount)
}

func TestWithRetryContextCancelledDuringBackoff(t *testing.T) {
	backoffBase = time.Hour
	defer func() { backoffBase = time.Millisecond }()

	backend := &failNTimesBackend{failures: 10}
	r := WithRetry(backend, 3)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err := r.Generate(ctx, "prompt")
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestWithRetryDefaultsMaxRetries(t *testing.T) {
	backend := &failNTimesBackend{failures: 10}
	r := WithRetry(backend, 0)

	_, err := r.Generate(context.Background(), "prompt")
	require.Error(t, err)
	assert.Equal(t, 4, backend.callCount)
}
