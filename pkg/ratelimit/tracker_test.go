package ratelimit

import (
	"testing"
	"time"
)

func TestParseRetryAfter(t *testing.T) {
	tests := []struct {
		name       string
		retryAfter string
		want       time.Duration
	}{
		{"empty falls back to default", "", DefaultCooldown},
		{"delta seconds", "10", 10 * time.Second},
		{"one second", "1", 1 * time.Second},
		{"capped at max", "900", MaxCooldown},
		{"zero falls back to default", "0", DefaultCooldown},
		{"negative falls back to default", "-5", DefaultCooldown},
		{"http date falls back to default", "Fri, 31 Dec 1999 23:59:59 GMT", DefaultCooldown},
		{"garbage falls back to default", "soon", DefaultCooldown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseRetryAfter(tt.retryAfter); got != tt.want {
				t.Errorf("parseRetryAfter(%q) = %v, want %v", tt.retryAfter, got, tt.want)
			}
		})
	}
}

func TestStateRemaining(t *testing.T) {
	inactive := &State{}
	if got := inactive.Remaining(); got != 0 {
		t.Errorf("inactive Remaining() = %v, want 0", got)
	}

	active := &State{Until: time.Now().Add(10 * time.Second), Active: true}
	remaining := active.Remaining()
	if remaining <= 0 || remaining > 10*time.Second {
		t.Errorf("active Remaining() = %v, want (0, 10s]", remaining)
	}

	expired := &State{Until: time.Now().Add(-time.Second), Active: true}
	if got := expired.Remaining(); got != 0 {
		t.Errorf("expired Remaining() = %v, want 0", got)
	}
}
