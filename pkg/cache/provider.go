package cache

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/retailops/yango-b2b-mcp/pkg/models"
)

// Fetcher walks the remote product catalog. Implemented by the API client.
type Fetcher interface {
	GetAllProducts(ctx context.Context) ([]models.Product, error)
}

// DefaultTTL is how long a catalog snapshot is served before re-walking.
const DefaultTTL = 15 * time.Minute

// Provider serves the product catalog, preferring a cached snapshot over
// a remote walk. With a nil manager every call walks the catalog, which
// is the uncached baseline behavior.
type Provider struct {
	fetcher Fetcher
	manager *Manager
	ttl     time.Duration
	logger  zerolog.Logger
}

// NewProvider creates a catalog provider. manager may be nil to disable
// caching; ttl <= 0 falls back to DefaultTTL.
func NewProvider(fetcher Fetcher, manager *Manager, ttl time.Duration) *Provider {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Provider{
		fetcher: fetcher,
		manager: manager,
		ttl:     ttl,
		logger:  log.With().Str("component", "catalog").Logger(),
	}
}

// Products returns the full product catalog. Cache errors other than a
// miss degrade to a remote walk rather than failing the call; a failed
// walk fails the call with the underlying error.
func (p *Provider) Products(ctx context.Context) ([]models.Product, error) {
	if p.manager != nil {
		entry, err := p.manager.Get(ctx)
		if err == nil {
			p.logger.Debug().
				Int("products", len(entry.Products)).
				Dur("ttl", entry.TTL()).
				Msg("Catalog served from cache")
			return entry.Products, nil
		}
		if err != ErrCacheMiss {
			p.logger.Warn().Err(err).Msg("Catalog cache get failed, walking catalog")
		}
	}

	products, err := p.fetcher.GetAllProducts(ctx)
	if err != nil {
		return nil, err
	}

	if p.manager != nil {
		if err := p.manager.Set(ctx, products, p.ttl); err != nil {
			p.logger.Warn().Err(err).Msg("Failed to cache catalog snapshot")
		} else {
			p.logger.Debug().
				Int("products", len(products)).
				Dur("ttl", p.ttl).
				Msg("Cached catalog snapshot")
		}
	}
	return products, nil
}

// Invalidate drops the cached snapshot so the next call re-walks the
// catalog. A no-op without a manager.
func (p *Provider) Invalidate(ctx context.Context) error {
	if p.manager == nil {
		return nil
	}
	return p.manager.Delete(ctx)
}
