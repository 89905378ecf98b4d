/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package retry wraps an operation with bounded retries and exponential
// backoff. It is used to absorb transient model-endpoint failures; the wrapped
// operation is treated as idempotent, which holds for read-style generation
// requests but means there is no compensation logic on retry.
package retry

import (
	"context"
	"crypto/rand"
	"errors"
	"math/big"
	"time"

	"github.com/chainguard-dev/clog"
)

// Config controls retry behavior.
type Config struct {
	// MaxAttempts is the total number of attempts, including the first
	// (default: 3). Values below 1 are rejected by Validate.
	MaxAttempts int
	// BaseDelay is the delay before the second attempt (default: 1s).
	// The delay doubles after each subsequent failure.
	BaseDelay time.Duration
	// MaxDelay caps the computed backoff (default: 60s).
	MaxDelay time.Duration
	// MaxJitter is the maximum random jitter added to each backoff.
	// The default is zero so the delay sequence is deterministic and
	// reproducible in tests; production callers sharing a quota may want to
	// set it to spread load.
	MaxJitter time.Duration
	// Sleep waits out a backoff delay, returning early with the context
	// error if the context is cancelled. Nil means a real timer; tests
	// inject a recorder.
	Sleep func(ctx context.Context, d time.Duration) error
}

// Validate checks the configuration for usable values.
func (c Config) Validate() error {
	if c.MaxAttempts < 1 {
		return errors.New("max attempts must be at least 1")
	}
	if c.BaseDelay < 0 {
		return errors.New("base delay cannot be negative")
	}
	if c.MaxDelay < 0 {
		return errors.New("max delay cannot be negative")
	}
	if c.MaxJitter < 0 {
		return errors.New("max jitter cannot be negative")
	}
	return nil
}

// DefaultConfig returns the retry configuration used for model calls.
func DefaultConfig() Config {
	return Config{
		MaxAttempts: 3,
		BaseDelay:   1 * time.Second,
		MaxDelay:    60 * time.Second,
	}
}

// Do executes fn up to cfg.MaxAttempts times, backing off exponentially
// between attempts. Only errors accepted by retryable are retried; other
// errors return immediately. On success the result is returned at once with
// no further attempts. When the final attempt fails, the last error is
// returned unchanged so callers can classify it without unwrapping.
func Do[T any](ctx context.Context, cfg Config, operation string, retryable func(error) bool, fn func() (T, error)) (T, error) {
	var result T
	var lastErr error

	sleep := cfg.Sleep
	if sleep == nil {
		sleep = wait
	}

	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		result, lastErr = fn()
		if lastErr == nil {
			return result, nil
		}

		if !retryable(lastErr) || attempt == cfg.MaxAttempts {
			return result, lastErr
		}

		// BaseDelay * 2^(attempt-1), capped at MaxDelay.
		backoff := min(cfg.BaseDelay<<(attempt-1), cfg.MaxDelay)

		var jitter time.Duration
		if cfg.MaxJitter > 0 {
			if n, err := rand.Int(rand.Reader, big.NewInt(int64(cfg.MaxJitter))); err == nil {
				jitter = time.Duration(n.Int64())
			}
		}

		clog.FromContext(ctx).With("operation", operation).
			With("attempt", attempt).
			With("max_attempts", cfg.MaxAttempts).
			With("backoff", backoff+jitter).
			With("error", lastErr.Error()).
			Warn("Attempt failed, retrying")

		if err := sleep(ctx, backoff+jitter); err != nil {
			return result, err
		}
	}

	return result, lastErr
}

func wait(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
