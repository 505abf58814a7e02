package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CacheHits tracks catalog cache hits by layer (redis)
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "yango_catalog_cache_hits_total",
			Help: "Total number of catalog cache hits",
		},
		[]string{"layer"}, // "redis"
	)

	// CacheMisses tracks catalog cache misses
	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "yango_catalog_cache_misses_total",
			Help: "Total number of catalog cache misses",
		},
	)

	// CatalogSize tracks the product count of the last cached catalog
	CatalogSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "yango_catalog_size_products",
			Help: "Product count of the most recently cached catalog",
		},
	)

	// CacheErrors tracks cache operation errors
	CacheErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "yango_catalog_cache_errors_total",
			Help: "Total number of catalog cache operation errors",
		},
		[]string{"operation"}, // "get", "set", "delete"
	)
)
