package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastConfig() *Config {
	return &Config{
		MaxAttempts:  3,
		InitialDelay: time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
		Multiplier:   2.0,
	}
}

func TestDo_SucceedsFirstAttempt(t *testing.T) {
	calls := 0
	err := Do(context.Background(), fastConfig(), "connect", func(ctx context.Context) error {
		calls++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestDo_SucceedsAfterFailures(t *testing.T) {
	calls := 0
	err := Do(context.Background(), fastConfig(), "connect", func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("not ready")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestDo_ExhaustsAttempts(t *testing.T) {
	calls := 0
	err := Do(context.Background(), fastConfig(), "connect", func(ctx context.Context) error {
		calls++
		return errors.New("still down")
	})
	require.Error(t, err)
	assert.Equal(t, 3, calls)
	assert.Contains(t, err.Error(), "failed after 3 attempts")
}

func TestDo_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	err := Do(ctx, &Config{
		MaxAttempts:  5,
		InitialDelay: time.Hour,
		MaxDelay:     time.Hour,
		Multiplier:   2.0,
	}, "connect", func(ctx context.Context) error {
		cancel()
		return errors.New("not ready")
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBackoffDelay_CappedAtMax(t *testing.T) {
	cfg := &Config{
		InitialDelay: time.Second,
		MaxDelay:     4 * time.Second,
		Multiplier:   2.0,
	}

	assert.Equal(t, time.Second, backoffDelay(cfg, 1))
	assert.Equal(t, 2*time.Second, backoffDelay(cfg, 2))
	assert.Equal(t, 4*time.Second, backoffDelay(cfg, 3))
	assert.Equal(t, 4*time.Second, backoffDelay(cfg, 10))
}
