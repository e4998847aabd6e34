// Package retry provides exponential-backoff retry for startup dependencies.
// Request-path lookups never retry; this is for connecting to Postgres and
// Redis while they come up.
package retry

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/stockfolio/stockfolio/internal/logging"
)

// Config configures retry behavior.
type Config struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}

// DefaultConfig returns the default backoff schedule: 1s, 2s, 4s, 8s, 16s.
func DefaultConfig() *Config {
	return &Config{
		MaxAttempts:  5,
		InitialDelay: 1 * time.Second,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
	}
}

// Do runs fn until it succeeds, attempts are exhausted, or the context is
// cancelled. The last error is returned on failure.
func Do(ctx context.Context, cfg *Config, name string, fn func(ctx context.Context) error) error {
	logger := logging.FromContext(ctx)

	var lastErr error
	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		if err := fn(ctx); err == nil {
			if attempt > 1 {
				logger.WithFields(map[string]interface{}{
					"operation": name,
					"attempts":  attempt,
				}).Info("Operation succeeded after retry")
			}
			return nil
		} else {
			lastErr = err
		}

		if attempt == cfg.MaxAttempts {
			break
		}

		delay := backoffDelay(cfg, attempt)
		logger.WithFields(map[string]interface{}{
			"operation": name,
			"attempt":   attempt,
			"delay":     delay.String(),
			"error":     lastErr.Error(),
		}).Warn("Operation failed, retrying")

		select {
		case <-ctx.Done():
			return fmt.Errorf("%s: retry cancelled: %w", name, ctx.Err())
		case <-time.After(delay):
		}
	}

	return fmt.Errorf("%s: failed after %d attempts: %w", name, cfg.MaxAttempts, lastErr)
}

// backoffDelay computes the delay before the next attempt.
func backoffDelay(cfg *Config, attempt int) time.Duration {
	delay := float64(cfg.InitialDelay) * math.Pow(cfg.Multiplier, float64(attempt-1))
	if delay > float64(cfg.MaxDelay) {
		return cfg.MaxDelay
	}
	return time.Duration(delay)
}
