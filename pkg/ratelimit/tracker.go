package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Prometheus metrics for rate limit tracking.
var (
	rateLimitBlocksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "yango_rate_limit_blocks_total",
		Help: "Total number of requests blocked by an active cooldown",
	})

	rateLimitCooldownsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "yango_rate_limit_cooldowns_total",
		Help: "Total number of cooldowns recorded after 429 responses",
	})

	rateLimitCooldownSeconds = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "yango_rate_limit_cooldown_seconds",
		Help: "Duration of the most recently recorded cooldown in seconds",
	})
)

// Tracker records and enforces rate-limit cooldowns shared via Redis.
type Tracker struct {
	redis  *redis.Client
	logger zerolog.Logger
}

// NewTracker creates a new cooldown tracker.
func NewTracker(redisClient *redis.Client, logger zerolog.Logger) *Tracker {
	return &Tracker{
		redis:  redisClient,
		logger: logger,
	}
}

// GetState retrieves the current cooldown state from Redis.
// Returns an inactive state when no cooldown is recorded.
func (t *Tracker) GetState(ctx context.Context) (*State, error) {
	untilUnix, err := t.redis.Get(ctx, RedisKeyCooldownUntil).Int64()
	if err != nil {
		if err == redis.Nil {
			return &State{}, nil
		}
		return nil, fmt.Errorf("get cooldown: %w", err)
	}

	until := time.Unix(untilUnix, 0)
	if time.Now().After(until) {
		return &State{}, nil
	}
	return &State{Until: until, Active: true}, nil
}

// ShouldAllowRequest reports whether a request may proceed right now.
// Returns false while a cooldown recorded by any client instance is active.
func (t *Tracker) ShouldAllowRequest(ctx context.Context) (bool, error) {
	state, err := t.GetState(ctx)
	if err != nil {
		return false, err
	}

	if state.Active {
		rateLimitBlocksTotal.Inc()
		t.logger.Warn().
			Dur("remaining", state.Remaining()).
			Msg("Request blocked: rate-limit cooldown active")
		return false, nil
	}
	return true, nil
}

// RecordCooldown stores a cooldown after a 429 response. retryAfter is the
// raw Retry-After header value; an empty or unparsable value falls back to
// DefaultCooldown. The stored value expires on its own via Redis TTL.
func (t *Tracker) RecordCooldown(ctx context.Context, retryAfter string) error {
	cooldown := parseRetryAfter(retryAfter)

	until := time.Now().Add(cooldown)
	if err := t.redis.Set(ctx, RedisKeyCooldownUntil, until.Unix(), cooldown).Err(); err != nil {
		return fmt.Errorf("set cooldown: %w", err)
	}

	rateLimitCooldownsTotal.Inc()
	rateLimitCooldownSeconds.Set(cooldown.Seconds())

	t.logger.Warn().
		Dur("cooldown", cooldown).
		Time("until", until).
		Msg("Rate-limit cooldown recorded")
	return nil
}

// parseRetryAfter converts a Retry-After header value into a bounded
// cooldown duration. Supports the delta-seconds form; the HTTP-date form
// and garbage fall back to DefaultCooldown.
func parseRetryAfter(retryAfter string) time.Duration {
	if retryAfter == "" {
		return DefaultCooldown
	}

	seconds, err := strconv.Atoi(retryAfter)
	if err != nil || seconds <= 0 {
		return DefaultCooldown
	}

	cooldown := time.Duration(seconds) * time.Second
	if cooldown > MaxCooldown {
		return MaxCooldown
	}
	return cooldown
}
