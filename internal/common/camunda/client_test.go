package camunda

import (
	"context"
	"errors"
	"testing"
	"time"

	"trip-suggestions/internal/common/logger"

	"github.com/stretchr/testify/assert"
)

func fastRetry(n int) RetryConfig {
	return RetryConfig{MaxRetries: n, BaseDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond}
}

func TestRetry_SucceedsAfterTransientFailures(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), fastRetry(5), logger.NewTestLogger(t), "postgres", func() error {
		calls++
		if calls < 3 {
			return errors.New("dial tcp: connection refused")
		}
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetry_GivesUpAfterMaxRetries(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), fastRetry(4), logger.NewTestLogger(t), "redis", func() error {
		calls++
		return errors.New("i/o timeout")
	})

	assert.ErrorContains(t, err, "redis failed")
	assert.Equal(t, 4, calls)
}

func TestRetry_StopsOnPermanentError(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), fastRetry(5), logger.NewTestLogger(t), "zeebe", func() error {
		calls++
		return errors.New("permission denied")
	})

	assert.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestRetry_HonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := RetryConfig{MaxRetries: 5, BaseDelay: time.Hour}
	err := Retry(ctx, cfg, logger.NewTestLogger(t), "elasticsearch", func() error {
		return errors.New("service unavailable")
	})

	assert.ErrorIs(t, err, context.Canceled)
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		msg  string
		want bool
	}{
		{"rpc error: code = Unavailable", true},
		{"context deadline exceeded", true},
		{"dial tcp: lookup zeebe: no such host", true},
		{"already exists", false},
		{"invalid argument", false},
	}
	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRetryable(errors.New(tt.msg)))
		})
	}
}
