// Package enrich implements the product-name enrichment engine: joining
// product identifiers referenced by orders and stock records to
// human-readable display names.
package enrich

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"

	"github.com/retailops/yango-b2b-mcp/pkg/models"
)

// UnresolvedName is attached when a product identifier has no catalog
// entry. Enrichment never fails an operation over a missing mapping.
const UnresolvedName = "unknown"

// Prometheus metrics for enrichment passes.
var (
	enrichRecordsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "yango_enrich_records_total",
		Help: "Total records processed by enrichment passes",
	})

	enrichUnresolvedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "yango_enrich_unresolved_total",
		Help: "Total records whose product id had no catalog entry",
	})
)

// NameResolver resolves a set of product identifiers to display names.
// Identifiers absent from the result are treated as unresolved. The
// catalog-walking resolver in this package is the only implementation
// today; a batched-ID resolver can be swapped in without touching callers.
type NameResolver interface {
	ResolveNames(ctx context.Context, ids []string) (map[string]string, error)
}

// Enrich attaches display names to a sequence of records. productID
// extracts the join key from a record; attach returns the record with the
// resolved name applied and must not touch the identifier itself.
//
// Distinct identifiers are collected once across all records, resolved in
// a single resolver call, and applied to every record. Records with an
// unresolvable identifier get UnresolvedName; no record is ever dropped,
// so the output length always equals the input length. A resolver failure
// fails the whole pass.
func Enrich[T any](ctx context.Context, records []T, productID func(T) string, attach func(T, string) T, resolver NameResolver) ([]T, error) {
	if len(records) == 0 {
		return []T{}, nil
	}

	seen := make(map[string]struct{}, len(records))
	ids := make([]string, 0, len(records))
	for _, r := range records {
		id := productID(r)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	names, err := resolver.ResolveNames(ctx, ids)
	if err != nil {
		return nil, err
	}

	unresolved := 0
	out := make([]T, len(records))
	for i, r := range records {
		name, ok := names[productID(r)]
		if !ok || name == "" {
			name = UnresolvedName
			unresolved++
		}
		out[i] = attach(r, name)
	}

	enrichRecordsTotal.Add(float64(len(records)))
	enrichUnresolvedTotal.Add(float64(unresolved))

	if unresolved > 0 {
		log.Debug().
			Int("records", len(records)).
			Int("unresolved", unresolved).
			Msg("Enrichment pass left unresolved product ids")
	}
	return out, nil
}

// Order returns a copy of the order whose cart items carry resolved
// product names. The original order is not mutated.
func Order(ctx context.Context, order *models.Order, resolver NameResolver) (*models.Order, error) {
	items, err := Enrich(ctx, order.Cart.Items,
		func(it models.CartItem) string { return it.ProductID },
		func(it models.CartItem, name string) models.CartItem {
			it.ProductName = name
			return it
		},
		resolver)
	if err != nil {
		return nil, err
	}

	enriched := *order
	enriched.Cart.Items = items
	return &enriched, nil
}

// Stocks attaches resolved product names to stock records.
func Stocks(ctx context.Context, stocks []models.Stock, resolver NameResolver) ([]models.Stock, error) {
	return Enrich(ctx, stocks,
		func(s models.Stock) string { return s.ProductID },
		func(s models.Stock, name string) models.Stock {
			s.ProductName = name
			return s
		},
		resolver)
}
