package retry

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedBackoff returns a constant tiny delay to keep tests fast.
type fixedBackoff struct {
	attempts int
}

func (b fixedBackoff) NextDelay(int) time.Duration { return time.Millisecond }
func (b fixedBackoff) MaxAttempts() int            { return b.attempts }

func transientErr() error {
	return &azcore.ResponseError{StatusCode: http.StatusServiceUnavailable}
}

func TestExecutor_SuccessFirstAttempt(t *testing.T) {
	executor := NewExecutor(NewARMErrorClassifier(), fixedBackoff{attempts: 3})

	calls := 0
	err := executor.Execute(context.Background(), func(ctx context.Context) error {
		calls++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestExecutor_RetriesTransientThenSucceeds(t *testing.T) {
	executor := NewExecutor(NewARMErrorClassifier(), fixedBackoff{attempts: 3})

	calls := 0
	err := executor.Execute(context.Background(), func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return transientErr()
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestExecutor_FatalErrorNotRetried(t *testing.T) {
	executor := NewExecutor(NewARMErrorClassifier(), fixedBackoff{attempts: 3})

	calls := 0
	fatal := &azcore.ResponseError{StatusCode: http.StatusForbidden}
	err := executor.Execute(context.Background(), func(ctx context.Context) error {
		calls++
		return fatal
	})

	assert.ErrorIs(t, err, fatal)
	assert.Equal(t, 1, calls)
}

func TestExecutor_ExhaustsAttempts(t *testing.T) {
	executor := NewExecutor(NewARMErrorClassifier(), fixedBackoff{attempts: 2})

	calls := 0
	err := executor.Execute(context.Background(), func(ctx context.Context) error {
		calls++
		return transientErr()
	})

	require.Error(t, err)
	// Initial attempt plus two retries.
	assert.Equal(t, 3, calls)
}

func TestExecutor_OnRetryCallback(t *testing.T) {
	var attempts []int
	executor := NewExecutor(NewARMErrorClassifier(), fixedBackoff{attempts: 2}).
		WithOnRetry(func(attempt int, err error, delay time.Duration) {
			attempts = append(attempts, attempt)
		})

	_ = executor.Execute(context.Background(), func(ctx context.Context) error {
		return transientErr()
	})

	assert.Equal(t, []int{0, 1}, attempts)
}

func TestExecutor_WithOnRetryDoesNotMutateOriginal(t *testing.T) {
	original := NewExecutor(NewARMErrorClassifier(), fixedBackoff{attempts: 1})
	configured := original.WithOnRetry(func(int, error, time.Duration) {})

	assert.NotSame(t, original, configured)
	assert.Nil(t, original.onRetry)
}

func TestExecutor_ContextCancellationStopsRetries(t *testing.T) {
	executor := NewExecutor(NewARMErrorClassifier(), fixedBackoff{attempts: 100})

	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := executor.Execute(ctx, func(ctx context.Context) error {
		calls++
		cancel()
		return transientErr()
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestNewExecutor_PanicsOnNilDependencies(t *testing.T) {
	assert.Panics(t, func() { NewExecutor(nil, fixedBackoff{}) })
	assert.Panics(t, func() { NewExecutor(NewARMErrorClassifier(), nil) })
}

func TestNewARMExecutor_RetriesThrottling(t *testing.T) {
	executor := NewARMExecutor()

	// Only classification is exercised here; delays are not awaited.
	calls := 0
	err := executor.Execute(context.Background(), func(ctx context.Context) error {
		calls++
		if calls == 1 {
			return errors.New("hard failure")
		}
		return nil
	})

	assert.Error(t, err)
	assert.Equal(t, 1, calls)
}
