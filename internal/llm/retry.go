package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"time"

	"google.golang.org/genai"
)

// RetryConfig controls the Retrying decorator.
type RetryConfig struct {
	MaxAttempts int           // total attempts including the first, default 3
	BaseDelay   time.Duration // delay before the first retry, doubled each retry
	Timeout     time.Duration // per-attempt timeout, zero disables it
}

// Retrying wraps a Generator with a per-attempt timeout and exponential
// backoff with jitter on transient failures.
type Retrying struct {
	inner  Generator
	cfg    RetryConfig
	logger *slog.Logger
	sleep  func(ctx context.Context, d time.Duration) error
}

// NewRetrying wraps inner. Zero config fields fall back to defaults.
func NewRetrying(inner Generator, cfg RetryConfig, logger *slog.Logger) *Retrying {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 3
	}
	if cfg.BaseDelay <= 0 {
		cfg.BaseDelay = 500 * time.Millisecond
	}
	return &Retrying{inner: inner, cfg: cfg, logger: logger, sleep: sleepContext}
}

func (r *Retrying) Generate(ctx context.Context, prompt string) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= r.cfg.MaxAttempts; attempt++ {
		if attempt > 1 {
			delay := r.backoffDelay(attempt - 1)
			r.logger.Warn("retrying model call after transient error",
				"attempt", attempt,
				"max_attempts", r.cfg.MaxAttempts,
				"delay", delay,
				"error", lastErr,
			)
			if err := r.sleep(ctx, delay); err != nil {
				return "", fmt.Errorf("retry cancelled: %w", err)
			}
		}

		text, err := r.attempt(ctx, prompt)
		if err == nil {
			return text, nil
		}
		lastErr = err

		// The caller's context is done; further attempts cannot succeed.
		if ctx.Err() != nil || !isRetryable(err) {
			return "", err
		}
	}
	return "", fmt.Errorf("after %d attempts: %w", r.cfg.MaxAttempts, lastErr)
}

func (r *Retrying) attempt(ctx context.Context, prompt string) (string, error) {
	if r.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.cfg.Timeout)
		defer cancel()
	}
	return r.inner.Generate(ctx, prompt)
}

// backoffDelay computes BaseDelay * 2^(retry-1) with ±30% jitter.
func (r *Retrying) backoffDelay(retry int) time.Duration {
	delay := r.cfg.BaseDelay
	for i := 1; i < retry; i++ {
		delay *= 2
	}
	jitter := float64(delay) * 0.3
	return time.Duration(float64(delay) + (rand.Float64()*2-1)*jitter)
}

// isRetryable reports whether err is worth another attempt. A per-attempt
// timeout is retryable; cancellation is not.
func isRetryable(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return retryableStatus(apiErr.Code)
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) {
		return retryableStatus(apiErrPtr.Code)
	}

	// Network errors, empty responses and attempt timeouts.
	return true
}

func retryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= 500
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
