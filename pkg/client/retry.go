package client

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"
)

// Prometheus metrics for retry operations.
var (
	apiRetriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "yango_api_retries_total",
		Help: "Total number of retry attempts by error kind",
	}, []string{"error_kind"})

	apiRetryBackoffSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "yango_api_retry_backoff_seconds",
		Help:    "Backoff duration for retries by error kind",
		Buckets: []float64{0.5, 1, 2, 5, 10, 30, 60},
	}, []string{"error_kind"})

	apiRetryExhaustedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "yango_api_retry_exhausted_total",
		Help: "Total number of times retry attempts were exhausted by error kind",
	}, []string{"error_kind"})
)

// RetryConfig holds the configuration for retry logic.
type RetryConfig struct {
	// MaxAttempts is the maximum number of attempts (including the initial request).
	MaxAttempts int

	// InitialBackoff is the initial backoff duration.
	InitialBackoff time.Duration

	// MaxBackoff is the maximum backoff duration.
	MaxBackoff time.Duration

	// BackoffMultiplier is the multiplier for exponential backoff.
	BackoffMultiplier float64
}

// DefaultRetryConfig returns the default retry configuration.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:       3,
		InitialBackoff:    1 * time.Second,
		MaxBackoff:        30 * time.Second,
		BackoffMultiplier: 2.0,
	}
}

// retryConfigForKind returns the backoff profile for an error kind.
// Rate-limited responses wait the longest before a retry.
func retryConfigForKind(kind ErrorKind, maxAttempts int) RetryConfig {
	cfg := DefaultRetryConfig()
	switch kind {
	case KindServer:
		cfg.InitialBackoff = 1 * time.Second
		cfg.MaxBackoff = 10 * time.Second
	case KindRateLimited:
		cfg.InitialBackoff = 5 * time.Second
		cfg.MaxBackoff = 60 * time.Second
	case KindNetwork:
		cfg.InitialBackoff = 2 * time.Second
		cfg.MaxBackoff = 30 * time.Second
	}
	if maxAttempts > 0 {
		cfg.MaxAttempts = maxAttempts
	}
	return cfg
}

// retryWithBackoff executes fn with exponential backoff retry logic.
// The backoff profile is chosen from the kind of the last error, so a
// rate-limited response backs off longer than a flaky connection.
// It respects context cancellation and adds jitter to avoid thundering herd.
func retryWithBackoff(ctx context.Context, maxAttempts int, fn func() error) error {
	var lastErr error
	backoff := time.Duration(0)

	if maxAttempts <= 0 {
		maxAttempts = DefaultRetryConfig().MaxAttempts
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err := fn()
		if err == nil {
			if attempt > 1 {
				log.Info().
					Int("attempt", attempt).
					Msg("Request succeeded after retry")
			}
			return nil
		}

		lastErr = err
		kind := errorKind(err)

		if !shouldRetry(kind) {
			return lastErr
		}

		if attempt >= maxAttempts {
			break
		}

		cfg := retryConfigForKind(kind, maxAttempts)
		if backoff == 0 {
			backoff = cfg.InitialBackoff
		}

		apiRetriesTotal.WithLabelValues(string(kind)).Inc()

		// Jitter: ±20% randomness
		jitter := time.Duration(float64(backoff) * (0.8 + rand.Float64()*0.4))
		apiRetryBackoffSeconds.WithLabelValues(string(kind)).Observe(jitter.Seconds())

		log.Debug().
			Str("error_kind", string(kind)).
			Int("attempt", attempt).
			Dur("backoff", jitter).
			Msg("Retrying request after backoff")

		select {
		case <-ctx.Done():
			log.Warn().
				Str("error_kind", string(kind)).
				Int("attempt", attempt).
				Msg("Context cancelled during retry backoff")
			return fmt.Errorf("%w: %v", ErrContextCancelled, ctx.Err())
		case <-time.After(jitter):
		}

		backoff = time.Duration(float64(backoff) * cfg.BackoffMultiplier)
		if backoff > cfg.MaxBackoff {
			backoff = cfg.MaxBackoff
		}
	}

	kind := errorKind(lastErr)
	apiRetryExhaustedTotal.WithLabelValues(string(kind)).Inc()
	log.Warn().
		Str("error_kind", string(kind)).
		Int("max_attempts", maxAttempts).
		Msg("Retry attempts exhausted")

	// Both sentinels stay unwrappable so callers can match either
	// ErrRetryExhausted or the underlying *APIError.
	return fmt.Errorf("%w after %d attempts: %w", ErrRetryExhausted, maxAttempts, lastErr)
}
