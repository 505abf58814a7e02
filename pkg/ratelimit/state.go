// Package ratelimit implements shared rate-limit cooldown tracking.
// When the B2B API answers 429, the cooldown (from the Retry-After header
// when present) is recorded in Redis so that concurrent tool invocations
// and other client instances back off together instead of hammering the
// API independently.
package ratelimit

import (
	"time"
)

// RedisKeyCooldownUntil stores the unix timestamp until which requests
// are blocked.
const RedisKeyCooldownUntil = "yango:rate_limit:cooldown_until"

// Cooldown bounds.
const (
	// DefaultCooldown applies when a 429 carries no usable Retry-After.
	DefaultCooldown = 30 * time.Second

	// MaxCooldown caps whatever the server asks for.
	MaxCooldown = 5 * time.Minute
)

// State represents the current cooldown state.
type State struct {
	// Until is the time the cooldown expires. Zero when no cooldown is active.
	Until time.Time

	// Active indicates whether requests are currently blocked.
	Active bool
}

// Remaining returns the time left on the cooldown.
// Returns 0 when no cooldown is active or it has already expired.
func (s *State) Remaining() time.Duration {
	if !s.Active {
		return 0
	}
	remaining := time.Until(s.Until)
	if remaining < 0 {
		return 0
	}
	return remaining
}
