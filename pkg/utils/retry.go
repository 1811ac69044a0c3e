// Package utils provides small shared helpers for the debate engine.
package utils

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// RetryConfig defines the configuration for retry logic using backoff/v4
type RetryConfig struct {
	MaxRetries   int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
	Jitter       bool
}

// DefaultRetryConfig returns a standard retry configuration
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:   3,
		InitialDelay: 1 * time.Second,
		MaxDelay:     10 * time.Second,
		Multiplier:   2.0,
		Jitter:       true,
	}
}

// NewExponentialBackOff creates a backoff.ExponentialBackOff from RetryConfig
func (rc RetryConfig) NewExponentialBackOff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = rc.InitialDelay
	b.MaxInterval = rc.MaxDelay
	b.Multiplier = rc.Multiplier
	if !rc.Jitter {
		b.RandomizationFactor = 0
	}
	return b
}

// ExecuteWithRetry executes a function with exponential backoff using backoff/v4
func ExecuteWithRetry(operation func() error, config RetryConfig) error {
	backoffConfig := config.NewExponentialBackOff()

	// Cap total elapsed time at the sum of the expected delays so a
	// permanently failing operation cannot retry forever.
	maxElapsedTime := time.Duration(0)
	currentDelay := config.InitialDelay
	for i := 0; i <= config.MaxRetries; i++ {
		maxElapsedTime += currentDelay
		currentDelay = time.Duration(float64(currentDelay) * config.Multiplier)
		if currentDelay > config.MaxDelay {
			currentDelay = config.MaxDelay
		}
	}
	backoffConfig.MaxElapsedTime = maxElapsedTime

	if err := backoff.Retry(operation, backoffConfig); err != nil {
		return fmt.Errorf("operation failed after retries: %w", err)
	}

	return nil
}

// ExecuteWithRetryContext executes a function with exponential backoff,
// giving up after MaxRetries attempts or as soon as ctx is cancelled.
func ExecuteWithRetryContext(ctx context.Context, operation func() error, config RetryConfig) error {
	backoffConfig := config.NewExponentialBackOff()
	backoffConfig.MaxElapsedTime = 0 // retry count and context bound us instead

	operationWithContext := func() error {
		select {
		case <-ctx.Done():
			return backoff.Permanent(ctx.Err())
		default:
			return operation()
		}
	}

	bounded := backoff.WithMaxRetries(backoffConfig, uint64(config.MaxRetries))
	if err := backoff.Retry(operationWithContext, backoff.WithContext(bounded, ctx)); err != nil {
		return fmt.Errorf("operation failed after retries: %w", err)
	}

	return nil
}

// IsRetryableError determines if an HTTP status code is retryable (429 or 5xx)
func IsRetryableError(statusCode int) bool {
	return statusCode == http.StatusTooManyRequests || (statusCode >= 500 && statusCode <= 599)
}
