// Package metrics provides the centralized Prometheus metrics registry for
// the B2B integration server. All metrics are defined in their respective
// packages (client, cache, ratelimit, enrich) to maintain modularity and
// avoid circular dependencies.
//
// This package provides documentation and reference for all available metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry is the default Prometheus registry used by the server.
// All metrics are automatically registered via promauto in their respective packages.
var Registry = prometheus.DefaultRegisterer

// Metrics Documentation
//
// Request Metrics (pkg/client):
//   - yango_api_requests_total{endpoint, status} (Counter): Total requests by endpoint and HTTP status
//   - yango_api_request_duration_seconds{endpoint} (Histogram): Request duration by endpoint
//   - yango_api_errors_total{kind} (Counter): Errors by kind (network, unauthorized,
//     rate_limited, not_found, server, validation)
//
// Retry Metrics (pkg/client):
//   - yango_api_retries_total{error_kind} (Counter): Retry attempts by error kind
//   - yango_api_retry_backoff_seconds{error_kind} (Histogram): Backoff duration by error kind
//   - yango_api_retry_exhausted_total{error_kind} (Counter): Requests that exhausted max retries
//
// Rate Limit Metrics (pkg/ratelimit):
//   - yango_rate_limit_blocks_total (Counter): Requests blocked by an active cooldown
//   - yango_rate_limit_cooldowns_total (Counter): Cooldowns recorded after 429 responses
//   - yango_rate_limit_cooldown_seconds (Gauge): Duration of the latest cooldown
//
// Catalog Cache Metrics (pkg/cache):
//   - yango_catalog_cache_hits_total{layer="redis"} (Counter): Cache hits by layer
//   - yango_catalog_cache_misses_total (Counter): Cache misses
//   - yango_catalog_size_products (Gauge): Product count of the last cached catalog
//   - yango_catalog_cache_errors_total{operation} (Counter): Cache operation errors
//
// Enrichment Metrics (pkg/enrich):
//   - yango_enrich_records_total (Counter): Records processed by enrichment passes
//   - yango_enrich_unresolved_total (Counter): Records whose product id had no catalog entry
//
// Example Prometheus Queries:
//
//   # Catalog Cache Hit Rate
//   sum(rate(yango_catalog_cache_hits_total[5m])) /
//   (sum(rate(yango_catalog_cache_hits_total[5m])) + sum(rate(yango_catalog_cache_misses_total[5m])))
//
//   # Request Error Rate
//   rate(yango_api_errors_total[5m])
//
//   # P95 Request Latency
//   histogram_quantile(0.95, rate(yango_api_request_duration_seconds_bucket[5m]))
//
//   # Unresolved Enrichment Share
//   rate(yango_enrich_unresolved_total[5m]) / rate(yango_enrich_records_total[5m])
