// Package cache provides the optional Redis-backed product catalog cache.
//
// Name enrichment needs the full catalog to build its identifier-to-name
// mapping, and the remote API only supports a full cursor walk. Without a
// cache every enrichment pass re-walks the catalog; with Redis configured
// the walked catalog is stored once and shared across tool invocations and
// client instances until the TTL expires. Semantics are identical either
// way; the cache is purely a cost optimization.
//
// # Basic Usage
//
//	redisClient := redis.NewClient(&redis.Options{
//		Addr: "localhost:6379",
//	})
//
//	manager := cache.NewManager(redisClient, "production")
//	provider := cache.NewProvider(apiClient, manager, 15*time.Minute)
//
//	// Products serves from cache within the TTL, otherwise walks the
//	// catalog and repopulates.
//	products, err := provider.Products(ctx)
//
// # Metrics
//
// The cache exports Prometheus metrics:
//
//   - yango_catalog_cache_hits_total{layer="redis"} - Cache hits
//   - yango_catalog_cache_misses_total - Cache misses
//   - yango_catalog_cache_errors_total{operation} - Cache operation errors
//   - yango_catalog_size_products - Product count of the last cached catalog
package cache
