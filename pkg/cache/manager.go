package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/retailops/yango-b2b-mcp/pkg/models"
)

var (
	// ErrCacheMiss indicates no valid catalog snapshot is cached
	ErrCacheMiss = errors.New("cache miss")

	// ErrInvalidEntry indicates the cache entry is invalid or corrupted
	ErrInvalidEntry = errors.New("invalid cache entry")
)

// keyPrefix namespaces catalog snapshots in Redis.
const keyPrefix = "yango:catalog"

// Manager handles catalog snapshot storage with a Redis backend.
type Manager struct {
	redis *redis.Client
	key   string
}

// NewManager creates a catalog cache manager. env distinguishes snapshots
// of different API environments (e.g. "production", "test") sharing one
// Redis instance.
func NewManager(redisClient *redis.Client, env string) *Manager {
	if redisClient == nil {
		panic("redis client cannot be nil")
	}
	env = strings.ToLower(strings.TrimSpace(env))
	if env == "" {
		env = "production"
	}
	return &Manager{
		redis: redisClient,
		key:   fmt.Sprintf("%s:%s", keyPrefix, env),
	}
}

// Key returns the Redis key used for the catalog snapshot.
func (m *Manager) Key() string {
	return m.key
}

// Get retrieves the cached catalog snapshot.
// Returns ErrCacheMiss if nothing is cached or the snapshot is expired;
// corrupted entries are deleted and reported as a miss.
func (m *Manager) Get(ctx context.Context) (*Entry, error) {
	data, err := m.redis.Get(ctx, m.key).Bytes()
	if err != nil {
		if err == redis.Nil {
			CacheMisses.Inc()
			return nil, ErrCacheMiss
		}
		CacheErrors.WithLabelValues("get").Inc()
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		CacheErrors.WithLabelValues("get").Inc()
		_ = m.Delete(ctx)
		CacheMisses.Inc()
		return nil, ErrCacheMiss
	}

	if entry.IsExpired() {
		_ = m.Delete(ctx)
		CacheMisses.Inc()
		return nil, ErrCacheMiss
	}

	CacheHits.WithLabelValues("redis").Inc()
	return &entry, nil
}

// Set stores a catalog snapshot with the given TTL. The snapshot is
// removed from Redis automatically when it expires.
func (m *Manager) Set(ctx context.Context, products []models.Product, ttl time.Duration) error {
	if ttl <= 0 {
		return fmt.Errorf("ttl must be positive")
	}

	now := time.Now()
	entry := Entry{
		Products: products,
		CachedAt: now,
		Expires:  now.Add(ttl),
	}

	data, err := json.Marshal(&entry)
	if err != nil {
		CacheErrors.WithLabelValues("set").Inc()
		return fmt.Errorf("marshal cache entry: %w", err)
	}

	if err := m.redis.Set(ctx, m.key, data, ttl).Err(); err != nil {
		CacheErrors.WithLabelValues("set").Inc()
		return fmt.Errorf("redis set: %w", err)
	}

	CatalogSize.Set(float64(len(products)))
	return nil
}

// Delete removes the cached catalog snapshot.
func (m *Manager) Delete(ctx context.Context) error {
	if err := m.redis.Del(ctx, m.key).Err(); err != nil {
		CacheErrors.WithLabelValues("delete").Inc()
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
