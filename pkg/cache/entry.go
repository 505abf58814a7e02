package cache

import (
	"time"

	"github.com/retailops/yango-b2b-mcp/pkg/models"
)

// Entry is a cached snapshot of the product catalog.
type Entry struct {
	// Products is the full catalog at the time of the walk.
	Products []models.Product `json:"products"`

	// CachedAt is when the catalog walk completed.
	CachedAt time.Time `json:"cached_at"`

	// Expires is when the snapshot becomes stale.
	Expires time.Time `json:"expires"`
}

// IsExpired returns true if the cache entry has expired.
func (e *Entry) IsExpired() bool {
	return time.Now().After(e.Expires)
}

// TTL returns the time until expiration.
// Returns 0 if already expired.
func (e *Entry) TTL() time.Duration {
	ttl := time.Until(e.Expires)
	if ttl < 0 {
		return 0
	}
	return ttl
}
